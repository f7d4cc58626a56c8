package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// Recipients is always carried as a list. Single and Many are the two
// ways a caller may hand addresses in; both normalize here so nothing
// downstream has to guess the shape.
type Recipients []string

func Single(address string) Recipients {
	return Recipients{address}
}

func Many(addresses []string) Recipients {
	out := make(Recipients, 0, len(addresses))
	out = append(out, addresses...)
	return out
}

// Validate rejects empty lists and entries that are not plausible
// addresses.
func (r Recipients) Validate() error {
	if len(r) == 0 {
		return errors.New("no recipients")
	}
	for _, address := range r {
		if !IsEmailValid(address) {
			return fmt.Errorf("invalid recipient %q", address)
		}
	}
	return nil
}

type SendEmailInput struct {
	To      Recipients
	Subject string
	Body    string
}

type Sender interface {
	Send(input SendEmailInput) error
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func IsEmailValid(address string) bool {
	return strings.Contains(address, "@") && emailPattern.MatchString(address)
}

func (e *SendEmailInput) GenerateBodyFromHTML(templateFileName string, data interface{}) error {
	t, err := template.ParseFiles("./templates/" + templateFileName)
	if err != nil {
		return fmt.Errorf("parse file failed: %w", err)
	}

	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		return fmt.Errorf("email data injection failed: %w", err)
	}

	e.Body = buf.String()

	return nil
}

func (e *SendEmailInput) Validate() error {
	if err := e.To.Validate(); err != nil {
		return err
	}

	if e.Subject == "" || e.Body == "" {
		return errors.New("empty subject/body")
	}

	return nil
}
