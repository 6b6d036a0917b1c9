package lead

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/intake"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/response"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/validator"
)

// Handler exposes draft submission over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /intake/:token/submit.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	receipt, err := h.service.Submit(c.Request.Context(), c.Param("token"), req.override())
	if err != nil {
		respondSubmitError(c, err)
		return
	}

	response.Success(c, http.StatusOK, receipt)
}

func respondSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, intake.ErrNotFound):
		response.Error(c, http.StatusNotFound, "DRAFT_NOT_FOUND", "Draft not found")
	case errors.Is(err, intake.ErrExpired):
		response.Error(c, http.StatusGone, "DRAFT_EXPIRED", "Draft has expired; please start again")
	case errors.Is(err, intake.ErrVersionConflict):
		response.Error(c, http.StatusConflict, "VERSION_CONFLICT", "Draft was changed elsewhere; review it and submit again")
	case errors.Is(err, ErrEmptyCart):
		response.Error(c, http.StatusUnprocessableEntity, "EMPTY_CART", "Add at least one service before submitting")
	case errors.Is(err, ErrContactMissing):
		response.Error(c, http.StatusUnprocessableEntity, "CONTACT_MISSING", "Complete the contact step before submitting")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
