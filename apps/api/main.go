package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/Yazi0/SmartTuitionManager/apps/api/echo"
	"github.com/Yazi0/SmartTuitionManager/core"
	"github.com/Yazi0/SmartTuitionManager/core/attendance"
	"github.com/Yazi0/SmartTuitionManager/core/class"
	"github.com/Yazi0/SmartTuitionManager/core/payment"
	"github.com/Yazi0/SmartTuitionManager/core/student"
	"github.com/Yazi0/SmartTuitionManager/core/user"
	emailsvc "github.com/Yazi0/SmartTuitionManager/services/email"
	logsvc "github.com/Yazi0/SmartTuitionManager/services/logger"
	qrsvc "github.com/Yazi0/SmartTuitionManager/services/qr"
	smssvc "github.com/Yazi0/SmartTuitionManager/services/sms"
	"github.com/Yazi0/SmartTuitionManager/storage/database"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal(err.Error(), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
	defer func() { _ = db.Close() }()
	if err = database.Migrate(db); err != nil {
		logger.Fatal(err.Error(), err)
	}

	// set up services
	var mailSvc core.EmailService
	var smsSvc core.SMSService
	if conf.Debug || !conf.Twilio.IsConfigured() {
		smsSvc = smssvc.NewConsoleService()
	} else {
		smsSvc = smssvc.NewTwilioService(conf, logger)
	}
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	usrSvc := user.NewService(database.NewUserRepository(db))
	studentSvc := student.NewService(database.NewStudentRepository(db), qrsvc.NewFileService(conf), logger)
	classSvc := class.NewService(database.NewClassRepository(db))
	attendanceSvc := attendance.NewService(database.NewAttendanceRepository(db), studentSvc, smsSvc, logger)
	paymentSvc := payment.NewService(database.NewPaymentRepository(db), studentSvc, smsSvc, mailSvc, logger)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Address:       conf.Server.Address(),
			Conf:          conf,
			Logger:        logger,
			UserSvc:       usrSvc,
			StudentSvc:    studentSvc,
			ClassSvc:      classSvc,
			AttendanceSvc: attendanceSvc,
			PaymentSvc:    paymentSvc,
		},
		shutdown,
	)
	go app.Start()

	<-shutdown
	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		logger.Error("graceful shutdown failed", err)
	}
}
