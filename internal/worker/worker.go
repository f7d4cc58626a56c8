package worker

import (
	"context"

	"github.com/membergate/backend/internal/config"
	emailProvider "github.com/membergate/backend/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, to emailProvider.Recipients, name string) error
	SendOTPEmail(ctx context.Context, to emailProvider.Recipients, code string) error
	SendCredentialsEmail(ctx context.Context, to emailProvider.Recipients, username string, password string) error
	SendDeclineEmail(ctx context.Context, to emailProvider.Recipients, name string, adminEmail string) error
	SendPaymentNotificationEmail(ctx context.Context, to emailProvider.Recipients, name string, userEmail string, mobile string, portalURL string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
	}
}
