package dummydb

import (
	"sync"

	"github.com/Yazi0/SmartTuitionManager/core/attendance"
	"github.com/Yazi0/SmartTuitionManager/core/class"
	"github.com/Yazi0/SmartTuitionManager/core/payment"
	"github.com/Yazi0/SmartTuitionManager/core/student"
	"github.com/Yazi0/SmartTuitionManager/core/user"
)

// DB is an in-memory store for tests. A single lock guards all tables since
// query results are hydrated across them.
type DB struct {
	sync.RWMutex

	users       map[int]*user.User
	students    map[int]*student.Student
	classes     map[int]*class.Class
	attendances map[int]*attendance.Attendance
	payments    map[int]*payment.Payment

	userPK       int
	studentPK    int
	classPK      int
	attendancePK int
	paymentPK    int
}

func Open() (*DB, error) {
	db := &DB{
		users:       make(map[int]*user.User),
		students:    make(map[int]*student.Student),
		classes:     make(map[int]*class.Class),
		attendances: make(map[int]*attendance.Attendance),
		payments:    make(map[int]*payment.Payment),
	}
	return db, nil
}
