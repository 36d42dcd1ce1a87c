// Package contact handles the site's contact form.
package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/richmanstudio/studio/internal/apperr"
	"github.com/richmanstudio/studio/internal/logger"
	"github.com/richmanstudio/studio/internal/validate"
)

// Status mirrors the states of the contact form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Message is a contact form submission.
type Message struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
	Body  string `json:"message" validate:"required,max=5000"`
}

func (m Message) normalized() Message {
	return Message{
		Name:  strings.TrimSpace(m.Name),
		Email: strings.TrimSpace(m.Email),
		Body:  strings.TrimSpace(m.Body),
	}
}

// Receipt reports the outcome of a submission.
type Receipt struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

// Service validates submissions and forwards them to the studio inbox.
type Service struct {
	sender    Sender
	validator *validate.Validator
	inbox     string
	studio    string
	log       *logger.Logger
}

// NewService creates a contact service delivering to inbox.
func NewService(sender Sender, v *validate.Validator, inbox, studio string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{sender: sender, validator: v, inbox: inbox, studio: studio, log: log}
}

// Submit validates msg and sends it. Validation failures return an error and
// no receipt; delivery failures return a receipt with StatusError.
func (s *Service) Submit(ctx context.Context, msg Message) (Receipt, error) {
	msg = msg.normalized()
	if err := s.validator.Struct(msg); err != nil {
		return Receipt{}, err
	}

	id := uuid.NewString()
	mail := Mail{
		To:      s.inbox,
		ReplyTo: msg.Email,
		Subject: fmt.Sprintf("[%s] Сообщение с сайта от %s", s.studio, msg.Name),
		Body: fmt.Sprintf("Имя: %s\nEmail: %s\nНомер обращения: %s\n\n%s\n",
			msg.Name, msg.Email, id, msg.Body),
	}

	err := s.sender.Send(ctx, mail)
	s.log.WithContext(ctx).MailEvent("contact", id, err)
	if err != nil {
		return Receipt{ID: id, Status: StatusError}, apperr.Unavailable("message could not be sent, please try again later", err)
	}
	return Receipt{ID: id, Status: StatusSuccess}, nil
}
