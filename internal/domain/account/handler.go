package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	jwtsvc "github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/jwt"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/response"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/validator"
)

// Handler exposes account creation over HTTP. The linker returns a
// bare account; issuing the login session from it is this handler's
// concern.
type Handler struct {
	service *Service
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, jwt *jwtsvc.Service) *Handler {
	return &Handler{service: service, jwt: jwt}
}

// CreateFromToken handles POST /account/from-token.
func (h *Handler) CreateFromToken(c *gin.Context) {
	var req CreateFromTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	user, err := h.service.CreateFromToken(c.Request.Context(), req.TrackingToken, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			response.Error(c, http.StatusNotFound, "INVALID_TOKEN", "Unknown or malformed tracking token")
		case errors.Is(err, ErrAlreadyLinked):
			response.Error(c, http.StatusConflict, "ALREADY_LINKED", "This token has already been used")
		case errors.Is(err, ErrAccountExists):
			response.Error(c, http.StatusConflict, "ACCOUNT_EXISTS", "An account already exists for this email; please log in")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		}
		return
	}

	accessToken, err := h.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"account_id":   user.ID,
		"email":        user.Email,
		"access_token": accessToken,
	})
}
