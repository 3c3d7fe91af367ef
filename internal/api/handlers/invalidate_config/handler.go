package invalidate_config

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TenantService/internal/api/handlers"
	"github.com/m04kA/SMC-TenantService/internal/api/middleware"
)

const (
	msgMissingTenantKey = "не указан ключ тенанта"
	msgMissingUserID    = "не удалось определить пользователя"
)

type Handler struct {
	cache  CacheInvalidator
	logger Logger
}

func NewHandler(cache CacheInvalidator, logger Logger) *Handler {
	return &Handler{
		cache:  cache,
		logger: logger,
	}
}

// Handle POST /api/v1/tenants/{tenantKey}/config/invalidate
//
// Следующий резолв тенанта пройдёт мимо кэша к авторитетному источнику.
// Инвалидация по несуществующему ключу безвредна и тоже отвечает 204.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantKey := mux.Vars(r)["tenantKey"]
	if tenantKey == "" {
		handlers.RespondBadRequest(w, msgMissingTenantKey)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /tenants/{key}/config/invalidate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	h.cache.Invalidate(tenantKey)

	h.logger.Info("POST /tenants/{key}/config/invalidate - Invalidated: key=%s, user_id=%s", tenantKey, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
