package middleware

import (
	"net/http"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/internal/sessions"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// Auth validates the session token and seeds the request context with the
// user id. Stale sessions are swept opportunistically before validation, so
// cleanup regularity tracks request traffic.
func Auth(svc sessions.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			svc.CleanupExpired(ctx)

			userID, err := svc.Validate(ctx, r.Header.Get("Authorization"))
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = WithUserID(ctx, userID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
