package lead

// SubmitRequest finalizes a draft. The contact fields are optional
// refinements of what step 1 captured.
type SubmitRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
}

func (r SubmitRequest) override() ContactOverride {
	return ContactOverride{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
	}
}
