package worker

import (
	"context"
	"fmt"

	"github.com/membergate/backend/internal/config"
	emailProvider "github.com/membergate/backend/pkg/email"
)

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
	}
}

type welcomeEmailInput struct {
	Name string
}

type otpEmailInput struct {
	OTP string
}

type credentialsEmailInput struct {
	Username string
	Password string
}

type declineEmailInput struct {
	Name       string
	AdminEmail string
}

type paymentNotificationInput struct {
	Name      string
	Email     string
	Mobile    string
	PortalURL string
}

func (s *emailSender) SendWelcomeEmail(ctx context.Context, to emailProvider.Recipients, name string) error {
	return s.send(to, "Welcome to the platform", s.config.Templates.Welcome, welcomeEmailInput{name})
}

func (s *emailSender) SendOTPEmail(ctx context.Context, to emailProvider.Recipients, code string) error {
	return s.send(to, "OTP for Password Reset", s.config.Templates.OTP, otpEmailInput{code})
}

func (s *emailSender) SendCredentialsEmail(ctx context.Context, to emailProvider.Recipients, username string, password string) error {
	return s.send(to, "Your Login Credentials", s.config.Templates.Credentials, credentialsEmailInput{username, password})
}

func (s *emailSender) SendDeclineEmail(ctx context.Context, to emailProvider.Recipients, name string, adminEmail string) error {
	return s.send(to, "Registration Declined", s.config.Templates.Decline, declineEmailInput{name, adminEmail})
}

func (s *emailSender) SendPaymentNotificationEmail(ctx context.Context, to emailProvider.Recipients, name string, userEmail string, mobile string, portalURL string) error {
	return s.send(to, "New Payment Confirmation - Awaiting Approval", s.config.Templates.PaymentNotification, paymentNotificationInput{name, userEmail, mobile, portalURL})
}

func (s *emailSender) send(to emailProvider.Recipients, subject string, templateName string, data interface{}) error {
	// local environments run without a real SMTP account
	if !s.config.Enabled {
		return nil
	}

	sendInput := emailProvider.SendEmailInput{Subject: subject, To: to}

	if err := sendInput.GenerateBodyFromHTML(templateName, data); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
