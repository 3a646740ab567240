package middleware

import (
	"net/http"
	"strings"

	"avialog/backend/internal/auth"
	"avialog/backend/internal/common"
)

// AuthMiddleware resolves the caller identity from either a bearer JWT or
// an X-Session-Id header and stores it in the request context. Requests
// without a resolvable identity are rejected.
func AuthMiddleware(sessionSvc *common.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			sessionID := r.Header.Get("X-Session-Id")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				token := strings.TrimPrefix(authHeader, "Bearer ")
				parsed, err := auth.ParseToken(token)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				claims = parsed

			case sessionID != "":
				session, err := sessionSvc.GetSession(r.Context(), sessionID)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid session", http.StatusUnauthorized)
					return
				}
				claims = &auth.SessionClaims{
					UserUUID:  session.UserID,
					UserEmail: session.Email,
					SessionID: session.SessionID,
				}

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
