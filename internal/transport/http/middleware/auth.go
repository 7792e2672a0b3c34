package middleware

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dkrasnovsky/gamenext-auth/internal/errors"
)

type ctxKey string

const ctxEmailKey ctxKey = "auth_email"

// TokenVerifier — контракт проверки access-токена (реализуется service.Service).
type TokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

// RequireAuth — гейт перед защищёнными операциями.
//
// Ожидает заголовок Authorization в форме "Bearer <token>":
//   - заголовка нет — 400 missing_auth, без какого-либо парсинга;
//   - заголовок есть, но форма не та, либо токен не проходит проверку
//     подписи/срока — 403 forbidden, обработчик не вызывается.
//
// При успехе email из проверенных claims кладётся в контекст запроса;
// обработчики берут его через CallerEmail и обязаны ограничивать выдачу
// данными вызывающего. Сам гейт побочных эффектов не имеет.
func RequireAuth(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				apierrors.WriteCode(w, r, http.StatusBadRequest, "missing_auth", "authorization header required")
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) || len(auth) == len(prefix) {
				apierrors.WriteCode(w, r, http.StatusForbidden, "forbidden", "bad token")
				return
			}

			token := strings.TrimSpace(auth[len(prefix):])

			email, err := verifier.VerifyAccessToken(token)
			if err != nil {
				apierrors.WriteCode(w, r, http.StatusForbidden, "forbidden", "bad token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerEmail возвращает email вызывающего, положенный RequireAuth.
func CallerEmail(ctx context.Context) (string, bool) {
	v := ctx.Value(ctxEmailKey)
	if v == nil {
		return "", false
	}

	email, ok := v.(string)
	return email, ok && email != ""
}
