package order

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/richmanstudio/studio/internal/quote"
	"github.com/richmanstudio/studio/internal/validate"
)

// DefaultRegion is used to parse phone numbers written without a country code.
const DefaultRegion = "RU"

// Budgets are the brackets offered on the last step.
var Budgets = []string{
	"До 50 000 ₽",
	"50 000–150 000 ₽",
	"150 000–300 000 ₽",
	"300 000+ ₽",
}

// ProjectType is an option of the project type select.
type ProjectType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ProjectTypes lists the selectable project kinds.
var ProjectTypes = []ProjectType{
	{ID: "landing", Label: "Лендинг"},
	{ID: "corporate", Label: "Корпоративный сайт"},
	{ID: "ecommerce", Label: "Интернет-магазин"},
	{ID: "webapp", Label: "Web-приложение"},
}

func projectTypeLabel(id string) string {
	for _, pt := range ProjectTypes {
		if pt.ID == id {
			return pt.Label
		}
	}
	return id
}

// Request is a complete order form submission.
type Request struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Email       string           `json:"email" validate:"required,email,max=254"`
	Phone       string           `json:"phone" validate:"required,phone"`
	Company     string           `json:"company" validate:"max=200"`
	Website     string           `json:"website" validate:"omitempty,url,max=500"`
	ProjectType string           `json:"project_type" validate:"required,oneof=landing corporate ecommerce webapp"`
	Description string           `json:"description" validate:"required,max=5000"`
	Budget      string           `json:"budget" validate:"required,budget"`
	Quote       *quote.Selection `json:"quote,omitempty"`
}

// stepFields are the Request fields shown on each step.
var stepFields = map[Step][]string{
	StepContacts: {"Name", "Email", "Phone"},
	StepCompany:  {"Company", "Website"},
	StepDetails:  {"ProjectType", "Description"},
	StepBudget:   {"Budget"},
}

func (r Request) normalized() Request {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Company = strings.TrimSpace(r.Company)
	r.Website = strings.TrimSpace(r.Website)
	r.Description = strings.TrimSpace(r.Description)
	if p, err := NormalizePhone(r.Phone); err == nil {
		r.Phone = p
	} else {
		r.Phone = strings.TrimSpace(r.Phone)
	}
	return r
}

// NormalizePhone parses raw (default region RU) and formats it as E.164.
func NormalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty phone number")
	}
	number, err := phonenumbers.Parse(trimmed, DefaultRegion)
	if err != nil {
		return "", fmt.Errorf("parsing phone %q: %w", trimmed, err)
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", fmt.Errorf("phone %q is not a valid number", trimmed)
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

// NewValidator returns a validator with the order rules registered.
func NewValidator() *validate.Validator {
	v := validate.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		_, err := NormalizePhone(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("budget", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, b := range Budgets {
			if s == b {
				return true
			}
		}
		return false
	})
	return v
}

// ValidateStep checks only the fields shown on step s.
func ValidateStep(v *validate.Validator, r Request, s Step) error {
	return v.Partial(r.normalized(), stepFields[s]...)
}
