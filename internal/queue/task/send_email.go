package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendEmailTaskName  = "sendEmailTask"
	SendEmailQueueName = "sendEmailQueue"
)

type EmailKind string

const (
	EmailKindWelcome             EmailKind = "welcome"
	EmailKindOTP                 EmailKind = "otp"
	EmailKindCredentials         EmailKind = "credentials"
	EmailKindDecline             EmailKind = "decline"
	EmailKindPaymentNotification EmailKind = "paymentNotification"
)

// SendEmail is the payload for every outbound mail. Bindings carry the
// template values; the plaintext generated password travels here once
// and is never written anywhere else.
type SendEmail struct {
	Kind     EmailKind         `json:"kind"`
	To       []string          `json:"to"`
	Bindings map[string]string `json:"bindings"`
}

func newSendEmailTask(kind EmailKind, to []string, bindings map[string]string) (*asynq.Task, error) {
	payload, err := json.Marshal(SendEmail{Kind: kind, To: to, Bindings: bindings})
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendEmailQueueName),
	), nil
}

func NewWelcomeEmailTask(to string, name string) (*asynq.Task, error) {
	return newSendEmailTask(EmailKindWelcome, []string{to}, map[string]string{
		"name": name,
	})
}

func NewOTPEmailTask(to string, code string) (*asynq.Task, error) {
	return newSendEmailTask(EmailKindOTP, []string{to}, map[string]string{
		"otp": code,
	})
}

func NewCredentialsEmailTask(to string, username string, password string) (*asynq.Task, error) {
	return newSendEmailTask(EmailKindCredentials, []string{to}, map[string]string{
		"username": username,
		"password": password,
	})
}

func NewDeclineEmailTask(to string, name string, adminEmail string) (*asynq.Task, error) {
	return newSendEmailTask(EmailKindDecline, []string{to}, map[string]string{
		"name":        name,
		"admin_email": adminEmail,
	})
}

func NewPaymentNotificationTask(to string, name string, userEmail string, mobile string, portalURL string) (*asynq.Task, error) {
	return newSendEmailTask(EmailKindPaymentNotification, []string{to}, map[string]string{
		"name":       name,
		"email":      userEmail,
		"mobile":     mobile,
		"portal_url": portalURL,
	})
}
