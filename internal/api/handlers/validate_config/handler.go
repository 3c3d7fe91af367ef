package validate_config

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-TenantService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingSource      = "не передан документ конфигурации"
)

type Handler struct {
	parser ConfigParser
	logger Logger
}

func NewHandler(parser ConfigParser, logger Logger) *Handler {
	return &Handler{
		parser: parser,
		logger: logger,
	}
}

// Handle POST /api/v1/config/validate
//
// Результат всегда отдаётся со статусом 200: невалидный документ -
// это нормальный ответ сухого прогона, а не ошибка запроса.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /config/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.Source) == "" {
		handlers.RespondBadRequest(w, msgMissingSource)
		return
	}

	result := h.parser.Parse(req.Source)

	h.logger.Info("POST /config/validate - success=%t, errors=%d, warnings=%d",
		result.Success, len(result.Errors), len(result.Warnings))
	handlers.RespondJSON(w, http.StatusOK, ValidateConfigResponse{
		Success:  result.Success,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	})
}
