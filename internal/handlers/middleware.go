package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/senyabanana/solosphere/internal/models"
	"github.com/senyabanana/solosphere/internal/services"
)

type ctxKey struct{}

// RequireSession пропускает запрос дальше только с действительным сессионным cookie
// и кладёт личность пользователя в контекст запроса.
func RequireSession(session *services.SessionService, logger *log.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(services.SessionCookie); err == nil {
				token = c.Value
			}

			identity, err := session.Verify(token)
			if err != nil {
				sendError(w, logger, err, "unauthorized access")
				return
			}
			next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, identity)))
		}
	}
}

// IdentityFromContext возвращает личность, проверенную RequireSession.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(models.Identity)
	return identity, ok
}
