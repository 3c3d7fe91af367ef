package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-TenantService/internal/api/handlers"
)

// HeaderUserID заголовок с идентификатором пользователя.
// Аутентификацию выполняет внешний гейтвей, сервис доверяет заголовку.
const HeaderUserID = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

const msgMissingUserID = "отсутствует заголовок X-User-ID"

// Auth требует наличия заголовка X-User-ID и кладёт его значение в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает идентификатор пользователя из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
