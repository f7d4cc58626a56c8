package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/membergate/backend/internal/queue/task"
	"github.com/membergate/backend/internal/worker"
	emailProvider "github.com/membergate/backend/pkg/email"

	"github.com/hibiken/asynq"
)

type sendEmailProcessor struct {
	workers *worker.Workers
}

func NewSendEmailProcessor(workers *worker.Workers) *sendEmailProcessor {
	return &sendEmailProcessor{
		workers: workers,
	}
}

func (p *sendEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendEmail
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send email task json unmarshal failed: %w", err)
	}

	to := emailProvider.Many(data.To)
	sender := p.workers.EmailSender

	switch data.Kind {
	case task.EmailKindWelcome:
		err = sender.SendWelcomeEmail(ctx, to, data.Bindings["name"])
	case task.EmailKindOTP:
		err = sender.SendOTPEmail(ctx, to, data.Bindings["otp"])
	case task.EmailKindCredentials:
		err = sender.SendCredentialsEmail(ctx, to, data.Bindings["username"], data.Bindings["password"])
	case task.EmailKindDecline:
		err = sender.SendDeclineEmail(ctx, to, data.Bindings["name"], data.Bindings["admin_email"])
	case task.EmailKindPaymentNotification:
		err = sender.SendPaymentNotificationEmail(ctx, to, data.Bindings["name"], data.Bindings["email"], data.Bindings["mobile"], data.Bindings["portal_url"])
	default:
		return fmt.Errorf("unknown email kind %q", data.Kind)
	}

	if err != nil {
		return fmt.Errorf("send %s email failed: %w", data.Kind, err)
	}

	return nil
}
