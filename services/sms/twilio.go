package smssvc

import (
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Yazi0/SmartTuitionManager/core"
)

type twilioService struct {
	client *twilio.RestClient
	from   string
	logger core.Logger
}

var _ core.SMSService = (*twilioService)(nil)

func NewTwilioService(conf *core.Config, logger core.Logger) *twilioService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: conf.Twilio.AccountSID,
		Password: conf.Twilio.AuthToken,
	})
	return &twilioService{
		client: client,
		from:   conf.Twilio.PhoneNumber,
		logger: logger,
	}
}

// Send delivers message to toPhone. Failures are logged and reported as
// false; they never propagate.
func (svc twilioService) Send(toPhone, message string) bool {
	if toPhone == "" {
		return false
	}

	params := new(openapi.CreateMessageParams)
	params.SetTo(toPhone)
	params.SetFrom(svc.from)
	params.SetBody(message)

	if _, err := svc.client.Api.CreateMessage(params); err != nil {
		svc.logger.Error(fmt.Sprintf("sending SMS to %s: %v", toPhone, err), err)
		return false
	}
	return true
}
