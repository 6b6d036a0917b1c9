package intake

import "time"

// Step is the wizard's cursor into the ordered step sequence.
type Step int

const (
	StepContact Step = iota + 1
	StepServiceSelect
	StepDetails
	StepDocs
	StepReview
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepContact:
		return "contact"
	case StepServiceSelect:
		return "service_select"
	case StepDetails:
		return "details"
	case StepDocs:
		return "documents"
	case StepReview:
		return "review"
	case StepSuccess:
		return "success"
	}
	return "unknown"
}

// Status is the draft lifecycle. Submitted is terminal.
type Status string

const (
	StatusOpen      Status = "open"
	StatusSubmitted Status = "submitted"
)

// ServiceRef identifies a catalog service.
type ServiceRef struct {
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

// ServiceSelection is one requested service plus its detail payload.
// Cart entries are immutable once appended.
type ServiceSelection struct {
	Category string            `json:"category"`
	Slug     string            `json:"slug"`
	Details  map[string]string `json:"details,omitempty"`
}

// Contact is the step-1 payload.
type Contact struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Location       string `json:"location,omitempty"`
	Urgency        string `json:"urgency,omitempty"`
	ExistingClient bool   `json:"existing_client"`
}

// Fields flattens the contact for catalog validation.
func (c Contact) Fields() map[string]string {
	return map[string]string{
		"full_name": c.FullName,
		"email":     c.Email,
		"phone":     c.Phone,
		"location":  c.Location,
		"urgency":   c.Urgency,
	}
}

// DraftSession is one in-progress intake. The resume token is the only
// value visitors carry in URLs and reminder emails; the id never
// leaves the server.
type DraftSession struct {
	ID          string
	ResumeToken string
	Step        Step
	Status      Status

	Contact *Contact
	Cart    []ServiceSelection
	Pending *ServiceSelection

	// Preselected is the referral-context service captured at draft
	// creation. PreselectSkip records that skip rule A applied, so
	// GoBack knows ServiceSelect was never shown on the first pass.
	Preselected   *ServiceRef
	PreselectSkip bool

	ReminderSentAt *time.Time
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (d *DraftSession) IsSubmitted() bool {
	return d.Status == StatusSubmitted
}
