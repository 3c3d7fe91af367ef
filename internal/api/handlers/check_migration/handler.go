package check_migration

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TenantService/internal/api/handlers"
	checkMigration "github.com/m04kA/SMC-TenantService/internal/usecase/check_migration"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	useCase CheckMigrationUseCase
	logger  Logger
}

func NewHandler(useCase CheckMigrationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/config/check-migration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckMigrationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /config/check-migration - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(checkMigration.Request{
		CurrentText:  req.Current,
		ProposedText: req.Proposed,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkMigration.ErrInvalidInput):
			h.logger.Warn("POST /config/check-migration - Invalid input: %d errors", len(result.Errors))
			handlers.RespondJSON(w, http.StatusBadRequest, fromUseCaseResult(result))

		case errors.Is(err, checkMigration.ErrValidationFailed):
			h.logger.Warn("POST /config/check-migration - Validation failed: %d errors", len(result.Errors))
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, fromUseCaseResult(result))

		default:
			h.logger.Error("POST /config/check-migration - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /config/check-migration - safe=%t, breaking=%d", result.Safe, len(result.BreakingChanges))
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResult(result))
}

func fromUseCaseResult(result *checkMigration.Result) CheckMigrationResponse {
	resp := CheckMigrationResponse{
		Safe:            result.Safe,
		BreakingChanges: result.BreakingChanges,
		Errors:          result.Errors,
		Warnings:        result.Warnings,
	}
	if resp.BreakingChanges == nil {
		resp.BreakingChanges = []string{}
	}
	return resp
}
