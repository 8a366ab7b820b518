package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"iwms-citizen.backend/internal/domain/entities"
	domainerrors "iwms-citizen.backend/internal/domain/errors"
	"iwms-citizen.backend/internal/interfaces/http/response"
	"iwms-citizen.backend/internal/usecases"
)

// CitizenHandler handles the citizen identity endpoints
type CitizenHandler struct {
	registrationUsecase *usecases.RegistrationUsecase
	accountUsecase      *usecases.AccountUsecase
}

// NewCitizenHandler creates a new citizen handler
func NewCitizenHandler(registrationUsecase *usecases.RegistrationUsecase, accountUsecase *usecases.AccountUsecase) *CitizenHandler {
	return &CitizenHandler{
		registrationUsecase: registrationUsecase,
		accountUsecase:      accountUsecase,
	}
}

// Register handles citizen registration
// POST /api/v1/citizen/register
func (h *CitizenHandler) Register(c *gin.Context) {
	var input entities.RegisterCitizenInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.registrationUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		var verr *domainerrors.ValidationError
		if errors.As(err, &verr) {
			response.Error(c, domainerrors.BadRequest(verr.Error()))
			return
		}
		// Generic message to the client; the cause is already logged.
		response.ErrorWithDetail(c, http.StatusInternalServerError, "Unable to complete registration", registrationFailureDetail(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status": 1,
		"data": gin.H{
			"user_id":   result.CustomerID,
			"user_name": result.OwnerName,
			"role":      entities.CitizenRole,
		},
		"token": result.Token,
	})
}

// Login handles citizen login
// POST /api/v1/citizen/login
func (h *CitizenHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.accountUsecase.Resolve(c.Request.Context(), input.Phone)
	if err != nil {
		var verr *domainerrors.ValidationError
		switch {
		case errors.As(err, &verr):
			response.Error(c, domainerrors.BadRequest("Phone is required"))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("Citizen not registered"))
		default:
			response.Error(c, domainerrors.InternalError(err))
		}
		return
	}

	response.Success(c, http.StatusOK, lookupPayload(result))
}

// Verify handles citizen verification. A missing profile is not an error here:
// it signals the client to branch to the registration UI.
// POST /api/v1/citizen/verify
func (h *CitizenHandler) Verify(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.accountUsecase.Resolve(c.Request.Context(), input.Phone)
	if err != nil {
		var verr *domainerrors.ValidationError
		switch {
		case errors.As(err, &verr):
			response.Error(c, domainerrors.BadRequest("Phone is required"))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Success(c, http.StatusOK, gin.H{
				"status":  2,
				"message": "NEW_USER",
			})
		default:
			response.Error(c, domainerrors.InternalError(err))
		}
		return
	}

	response.Success(c, http.StatusOK, lookupPayload(result))
}

// RequestOTP is the retired OTP flow
// POST /api/v1/citizen/request-otp
func (h *CitizenHandler) RequestOTP(c *gin.Context) {
	c.JSON(http.StatusGone, gin.H{
		"status": 0,
		"error":  "OTP flow has been disabled. Use direct registration/login endpoints.",
	})
}

func lookupPayload(result *entities.AccountLookupResult) gin.H {
	return gin.H{
		"status": 1,
		"data": gin.H{
			"user_id":      result.CustomerID,
			"user_name":    result.OwnerName,
			"role":         entities.CitizenRole,
			"propertyName": result.PropertyName,
		},
		"token": result.Token,
	}
}

// registrationFailureDetail maps an internal failure to a non-sensitive
// diagnostic string; raw store errors are never echoed to the client.
func registrationFailureDetail(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrAllocationFailed):
		return "could not allocate unique customer id"
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return "identity was registered concurrently"
	case errors.Is(err, domainerrors.ErrStoreUnavailable):
		return "storage unavailable"
	default:
		return "storage failure"
	}
}
