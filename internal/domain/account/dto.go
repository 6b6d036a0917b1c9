package account

// CreateFromTokenRequest creates an account from an emailed tracking
// token.
type CreateFromTokenRequest struct {
	TrackingToken string `json:"tracking_token" validate:"required"`
	Password      string `json:"password" validate:"required,min=8"`
}
