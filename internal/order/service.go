package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/richmanstudio/studio/internal/apperr"
	"github.com/richmanstudio/studio/internal/contact"
	"github.com/richmanstudio/studio/internal/logger"
	"github.com/richmanstudio/studio/internal/quote"
	"github.com/richmanstudio/studio/internal/validate"
)

// Pricing is what the service needs to price an attached calculator selection.
type Pricing struct {
	Catalog     quote.Catalog
	PerPageRate decimal.Decimal
	Currency    string
}

// Service validates orders and forwards them to the studio inbox.
type Service struct {
	sender    contact.Sender
	validator *validate.Validator
	pricing   Pricing
	inbox     string
	studio    string
	log       *logger.Logger
}

// NewService creates an order service.
func NewService(sender contact.Sender, pricing Pricing, inbox, studio string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		sender:    sender,
		validator: NewValidator(),
		pricing:   pricing,
		inbox:     inbox,
		studio:    studio,
		log:       log,
	}
}

// ValidateStep checks the fields of a single step.
func (s *Service) ValidateStep(req Request, step Step) error {
	if !step.Valid() {
		return apperr.BadRequest(fmt.Sprintf("unknown step %d", step))
	}
	return ValidateStep(s.validator, req, step)
}

// Submit validates the whole form, prices an attached selection and sends
// the order. An attached estimate travels as a spreadsheet.
func (s *Service) Submit(ctx context.Context, req Request) (contact.Receipt, error) {
	req = req.normalized()
	if err := s.validator.Struct(req); err != nil {
		return contact.Receipt{}, err
	}

	var (
		q           *quote.Quote
		attachments []contact.Attachment
	)
	if req.Quote != nil {
		computed, err := quote.ComputeQuote(*req.Quote, s.pricing.Catalog, s.pricing.PerPageRate)
		if errors.Is(err, quote.ErrInvalidSelection) {
			return contact.Receipt{}, apperr.Wrap(apperr.KindValidation, err.Error(), err).
				WithDetails(map[string]string{"quote": "invalid"})
		}
		if err != nil {
			return contact.Receipt{}, apperr.Internal("pricing failed", err)
		}
		q = &computed

		data, err := quote.ExportXLSX(computed, *req.Quote, s.pricing.Catalog, s.studio)
		if err != nil {
			return contact.Receipt{}, apperr.Internal("estimate export failed", err)
		}
		attachments = append(attachments, contact.Attachment{FileName: "estimate.xlsx", Content: data})
	}

	id := uuid.NewString()
	mail := contact.Mail{
		To:          s.inbox,
		ReplyTo:     req.Email,
		Subject:     fmt.Sprintf("[%s] Новый заказ: %s", s.studio, projectTypeLabel(req.ProjectType)),
		Body:        s.summary(id, req, q),
		Attachments: attachments,
	}

	err := s.sender.Send(ctx, mail)
	s.log.WithContext(ctx).MailEvent("order", id, err)
	if err != nil {
		return contact.Receipt{ID: id, Status: contact.StatusError}, apperr.Unavailable("order could not be sent, please try again later", err)
	}
	return contact.Receipt{ID: id, Status: contact.StatusSuccess}, nil
}

func (s *Service) summary(id string, req Request, q *quote.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Заказ %s\n\n", id)
	fmt.Fprintf(&b, "Имя: %s\nEmail: %s\nТелефон: %s\n", req.Name, req.Email, req.Phone)
	if req.Company != "" {
		fmt.Fprintf(&b, "Компания: %s\n", req.Company)
	}
	if req.Website != "" {
		fmt.Fprintf(&b, "Сайт: %s\n", req.Website)
	}
	fmt.Fprintf(&b, "Тип проекта: %s\nБюджет: %s\n\n%s\n", projectTypeLabel(req.ProjectType), req.Budget, req.Description)

	if q != nil {
		b.WriteString("\nРасчёт калькулятора:\n")
		for _, line := range q.Breakdown {
			fmt.Fprintf(&b, "  %s: %s\n", line.Label, quote.FormatPrice(line.Price, s.pricing.Currency))
		}
		fmt.Fprintf(&b, "Итого: %s\n", quote.FormatPrice(q.Total, s.pricing.Currency))
	}
	return b.String()
}
