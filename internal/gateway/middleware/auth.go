package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/saransh1220/circle-notify/internal/shared/utils"
	apperrors "github.com/saransh1220/circle-notify/pkg/errors"
)

type contextKey string

const (
	ContextKeyUserId contextKey = "user_id"
	ContextKeyRole   contextKey = "role"
)

type AuthMiddleWare struct {
	jwtSecret string
}

// NewAuthMiddleware returns middleware that validates HS256 bearer tokens
// signed with jwtSecret.
func NewAuthMiddleware(jwtSecret string) *AuthMiddleWare {
	return &AuthMiddleWare{jwtSecret: jwtSecret}
}

// RequireAuth rejects requests without a valid bearer token with
// UNAUTHENTICATED and injects the caller's id and role into the context.
// Websocket clients may pass the token as the "token" query parameter.
func (m *AuthMiddleWare) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			tokenStr = r.URL.Query().Get("token")
		}

		if tokenStr == "" {
			utils.WriteCallableError(w, apperrors.ErrUnauthenticated)
			return
		}

		claims, err := utils.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			utils.WriteCallableError(w, apperrors.ErrUnauthenticated.WithMessage(err.Error()))
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserId, claims.UserID)
		ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run after RequireAuth. Callers with another role get
// PERMISSION_DENIED.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got, _ := r.Context().Value(ContextKeyRole).(string); got != role {
				utils.WriteCallableError(w, apperrors.ErrPermissionDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserID returns the authenticated caller's id.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyUserId).(string)
	return id, ok && id != ""
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
