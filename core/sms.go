package core

import (
	"fmt"
	"strings"
)

// SMSService is any service that can deliver a text message to a phone number.
//
// Delivery is strictly best-effort: implementations must swallow transport
// errors (logging them internally) and report the outcome as a boolean.
// Callers record the outcome but never fail on it.
type SMSService interface {
	Send(toPhone, message string) bool
}

// Parent-facing message bodies.

func AttendanceSMS(studentName, className string) string {
	return fmt.Sprintf("Your child %s has arrived for %s.", studentName, className)
}

func PaymentSMS(month string, year int) string {
	return fmt.Sprintf("Your child's class fee for %s %d has been received.", strings.Title(month), year)
}
