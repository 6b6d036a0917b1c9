package intake

import "time"

// SubmitContactRequest starts or updates a draft. ResumeToken empty
// means a new draft; Context carries the service preselected by the
// page the visitor came from.
type SubmitContactRequest struct {
	ResumeToken string      `json:"resume_token"`
	Context     *ServiceRef `json:"context"`

	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	Urgency        string `json:"urgency"`
	ExistingClient bool   `json:"existing_client"`
}

func (r SubmitContactRequest) contact() Contact {
	return Contact{
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.Phone,
		Location:       r.Location,
		Urgency:        r.Urgency,
		ExistingClient: r.ExistingClient,
	}
}

// SelectServiceRequest picks a catalog service.
type SelectServiceRequest struct {
	Category string `json:"category" validate:"required"`
	Slug     string `json:"slug" validate:"required"`
}

// SubmitDetailsRequest carries the per-service detail payload.
type SubmitDetailsRequest struct {
	Details map[string]string `json:"details" validate:"required"`
}

// AcknowledgeDocsRequest confirms the visitor holds the required
// documents. Upload happens later, outside this service.
type AcknowledgeDocsRequest struct {
	Acknowledged bool `json:"documents_acknowledged"`
}

// DraftView is the client-facing projection of a draft session.
type DraftView struct {
	ResumeToken string             `json:"resume_token"`
	Step        int                `json:"step"`
	StepName    string             `json:"step_name"`
	Status      Status             `json:"status"`
	Contact     *Contact           `json:"contact,omitempty"`
	Cart        []ServiceSelection `json:"cart"`
	Pending     *ServiceSelection  `json:"pending,omitempty"`
	Preselected *ServiceRef        `json:"preselected,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func NewDraftView(d *DraftSession) DraftView {
	return DraftView{
		ResumeToken: d.ResumeToken,
		Step:        int(d.Step),
		StepName:    d.Step.String(),
		Status:      d.Status,
		Contact:     d.Contact,
		Cart:        d.Cart,
		Pending:     d.Pending,
		Preselected: d.Preselected,
		UpdatedAt:   d.UpdatedAt,
	}
}
