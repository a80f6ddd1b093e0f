package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

type contextKey int

const subjectKey contextKey = iota

const bearerPrefix = "Bearer "

// Middleware извлекает bearer-токен, проверяет его и кладет субъекта в контекст.
// Отсутствующий, искаженный или просроченный токен - всегда 401 без подробностей.
func Middleware(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}

			subject, err := tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}

func WithSubject(ctx context.Context, subject uuid.UUID) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

func SubjectFromContext(ctx context.Context) (uuid.UUID, bool) {
	subject, ok := ctx.Value(subjectKey).(uuid.UUID)
	return subject, ok
}
