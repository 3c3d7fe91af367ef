package get_tenant_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TenantService/internal/api/handlers"
	"github.com/m04kA/SMC-TenantService/internal/service/loader"
)

const (
	msgMissingTenantKey  = "не указан ключ тенанта"
	msgTenantNotFound    = "тенант не найден"
	msgConfigUnavailable = "конфигурация тенанта временно недоступна"
)

type Handler struct {
	resolver TenantResolver
	logger   Logger
}

func NewHandler(resolver TenantResolver, logger Logger) *Handler {
	return &Handler{
		resolver: resolver,
		logger:   logger,
	}
}

// Handle GET /api/v1/tenants/{tenantKey}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantKey := mux.Vars(r)["tenantKey"]
	if tenantKey == "" {
		handlers.RespondBadRequest(w, msgMissingTenantKey)
		return
	}

	result, err := h.resolver.Resolve(r.Context(), tenantKey)
	if err != nil {
		switch {
		case errors.Is(err, loader.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{key}/config - Tenant not found: key=%s", tenantKey)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, loader.ErrConfigUnavailable):
			h.logger.Error("GET /tenants/{key}/config - Config unavailable: key=%s, error=%v", tenantKey, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgConfigUnavailable)

		default:
			h.logger.Error("GET /tenants/{key}/config - Failed to resolve tenant: key=%s, error=%v", tenantKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{key}/config - Resolved: key=%s, source=%s", tenantKey, result.Source)
	handlers.RespondJSON(w, http.StatusOK, FromLoaderResult(result))
}
