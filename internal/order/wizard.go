// Package order implements the multi-step project order form.
package order

// Step is a page of the order form.
type Step int

const (
	StepContacts Step = iota
	StepCompany
	StepDetails
	StepBudget
)

// StepInfo describes a step for clients rendering the form.
type StepInfo struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Steps lists the form pages in order.
var Steps = []StepInfo{
	{Index: int(StepContacts), ID: "contacts", Label: "Контакты"},
	{Index: int(StepCompany), ID: "company", Label: "Компания"},
	{Index: int(StepDetails), ID: "details", Label: "Детали"},
	{Index: int(StepBudget), ID: "budget", Label: "Бюджет"},
}

const lastStep = StepBudget

// Valid reports whether s names an existing step.
func (s Step) Valid() bool { return s >= StepContacts && s <= lastStep }

func (s Step) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return Steps[s].ID
}

// Wizard tracks the current step. Moves past either end are clamped.
type Wizard struct {
	step Step
}

// WizardAt returns a wizard positioned at s, clamped to the valid range.
func WizardAt(s Step) Wizard {
	return Wizard{step: clamp(s)}
}

func (w Wizard) Step() Step { return w.step }
func (w Wizard) IsFirst() bool { return w.step == StepContacts }
func (w Wizard) IsLast() bool { return w.step == lastStep }

func (w *Wizard) Next() { w.step = clamp(w.step + 1) }
func (w *Wizard) Prev() { w.step = clamp(w.step - 1) }
func (w *Wizard) Reset() { w.step = StepContacts }

// Progress is the share of the form completed, 0 on the first step and 100
// on the last.
func (w Wizard) Progress() int {
	return int(w.step) * 100 / int(lastStep)
}

func clamp(s Step) Step {
	switch {
	case s < StepContacts:
		return StepContacts
	case s > lastStep:
		return lastStep
	}
	return s
}
