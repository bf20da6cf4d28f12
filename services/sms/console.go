package smssvc

import (
	"log"
	"sync"

	"github.com/Yazi0/SmartTuitionManager/core"
)

type consoleService struct {
	disableOutput bool
}

var _ core.SMSService = (*consoleService)(nil)

func NewConsoleService() core.SMSService {
	return &consoleService{}
}

func (svc consoleService) Send(toPhone, message string) bool {
	if toPhone == "" {
		return false
	}
	if !svc.disableOutput {
		log.Printf("SMS to %s: %s", toPhone, message)
	}
	return true
}

// SentSMS is one recorded Send call.
type SentSMS struct {
	To      string
	Message string
}

// ServiceMock records every Send call; Fail makes all sends report failure.
type ServiceMock struct {
	consoleService

	mu   sync.Mutex
	Fail bool
	Sent []SentSMS
}

var _ core.SMSService = (*ServiceMock)(nil)

func NewServiceMock() *ServiceMock {
	return &ServiceMock{consoleService: consoleService{disableOutput: true}}
}

func (svc *ServiceMock) Send(toPhone, message string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.Fail {
		return false
	}
	if !svc.consoleService.Send(toPhone, message) {
		return false
	}
	svc.Sent = append(svc.Sent, SentSMS{To: toPhone, Message: message})
	return true
}

// SentCount returns the number of successfully recorded sends.
func (svc *ServiceMock) SentCount() int {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return len(svc.Sent)
}
