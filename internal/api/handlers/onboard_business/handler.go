package onboard_business

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TenantService/internal/api/handlers"
	onboardBusiness "github.com/m04kA/SMC-TenantService/internal/usecase/onboard_business"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	useCase OnboardBusinessUseCase
	logger  Logger
}

func NewHandler(useCase OnboardBusinessUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/onboarding
//
// Тело ответа при ошибке сохраняет ту же форму {success, errors,
// warnings}, что и при успехе: вызывающему не нужно различать
// валидационный отказ и конфликт структурно.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req OnboardBusinessRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /onboarding - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, onboardBusiness.ErrInvalidInput):
			h.logger.Warn("POST /onboarding - Invalid input: %d errors", len(result.Errors))
			handlers.RespondJSON(w, http.StatusBadRequest, result)

		case errors.Is(err, onboardBusiness.ErrValidationFailed):
			h.logger.Warn("POST /onboarding - Config rejected: %d errors", len(result.Errors))
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, result)

		case errors.Is(err, onboardBusiness.ErrSubdomainTaken):
			h.logger.Warn("POST /onboarding - Subdomain taken")
			handlers.RespondJSON(w, http.StatusConflict, result)

		case errors.Is(err, onboardBusiness.ErrBusinessSuspended):
			h.logger.Warn("POST /onboarding - Subdomain belongs to suspended business")
			handlers.RespondJSON(w, http.StatusConflict, result)

		case errors.Is(err, onboardBusiness.ErrRoleConflict):
			h.logger.Warn("POST /onboarding - Owner role conflict")
			handlers.RespondJSON(w, http.StatusConflict, result)

		default:
			h.logger.Error("POST /onboarding - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /onboarding - Business provisioned: subdomain=%s, business_id=%s",
		result.Subdomain, result.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
