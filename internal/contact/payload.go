package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Minimum lengths, counted in runes after trimming surrounding space.
const (
	MinNameLength    = 2
	MinSubjectLength = 5
	MinMessageLength = 10
)

// Field names as they appear in form posts and FieldErrors.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldSubject  = "subject"
	FieldMessage  = "message"
	FieldCompany  = "company"
	FieldBudget   = "budget"
	FieldTimeline = "timeline"
)

// Budgets lists the accepted budget values in display order.
var Budgets = []Choice{
	{Value: "under-5k", Label: "Under $5k"},
	{Value: "5k-10k", Label: "$5k - $10k"},
	{Value: "10k-25k", Label: "$10k - $25k"},
	{Value: "25k-50k", Label: "$25k - $50k"},
	{Value: "50k+", Label: "$50k+"},
	{Value: "not-sure", Label: "Not sure"},
}

// Timelines lists the accepted timeline values in display order.
var Timelines = []Choice{
	{Value: "asap", Label: "ASAP"},
	{Value: "1-month", Label: "Within 1 month"},
	{Value: "2-3-months", Label: "2-3 months"},
	{Value: "3-6-months", Label: "3-6 months"},
	{Value: "6-months+", Label: "6+ months"},
	{Value: "flexible", Label: "Flexible"},
}

// Choice is one option of an enumerated field.
type Choice struct {
	Value string
	Label string
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+'-]+@[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)*\.[A-Za-z]{2,}$`)

// Payload is a single contact form submission.
type Payload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Company  string `json:"company,omitempty"`
	Budget   string `json:"budget,omitempty"`
	Timeline string `json:"timeline,omitempty"`
}

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors holds at most one error per field, in form order.
type FieldErrors []FieldError

// For returns the message for field, or "" when the field is valid.
func (fe FieldErrors) For(field string) string {
	for _, e := range fe {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Map returns the errors keyed by field.
func (fe FieldErrors) Map() map[string]string {
	out := make(map[string]string, len(fe))
	for _, e := range fe {
		out[e.Field] = e.Message
	}
	return out
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// Normalize trims surrounding whitespace from every field.
func (p Payload) Normalize() Payload {
	return Payload{
		Name:     strings.TrimSpace(p.Name),
		Email:    strings.TrimSpace(p.Email),
		Subject:  strings.TrimSpace(p.Subject),
		Message:  strings.TrimSpace(p.Message),
		Company:  strings.TrimSpace(p.Company),
		Budget:   strings.TrimSpace(p.Budget),
		Timeline: strings.TrimSpace(p.Timeline),
	}
}

// Validate checks p and returns one message per invalid field. A nil result
// means the payload is valid.
func Validate(p Payload) FieldErrors {
	p = p.Normalize()

	var errs FieldErrors
	if utf8.RuneCountInString(p.Name) < MinNameLength {
		errs = append(errs, FieldError{Field: FieldName, Message: "Name must be at least 2 characters"})
	}
	if !ValidEmail(p.Email) {
		errs = append(errs, FieldError{Field: FieldEmail, Message: "Invalid email address"})
	}
	if utf8.RuneCountInString(p.Subject) < MinSubjectLength {
		errs = append(errs, FieldError{Field: FieldSubject, Message: "Subject must be at least 5 characters"})
	}
	if utf8.RuneCountInString(p.Message) < MinMessageLength {
		errs = append(errs, FieldError{Field: FieldMessage, Message: "Message must be at least 10 characters"})
	}
	if p.Budget != "" && !validChoice(Budgets, p.Budget) {
		errs = append(errs, FieldError{Field: FieldBudget, Message: "Invalid budget option"})
	}
	if p.Timeline != "" && !validChoice(Timelines, p.Timeline) {
		errs = append(errs, FieldError{Field: FieldTimeline, Message: "Invalid timeline option"})
	}
	return errs
}

// ValidEmail reports whether s looks like a deliverable address.
func ValidEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	return emailPattern.MatchString(s)
}

func validChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
