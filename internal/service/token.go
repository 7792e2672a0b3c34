package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims — полезная нагрузка обоих токенов: только идентичность (email).
// Access- и refresh-токены имеют одинаковую форму, но подписываются РАЗНЫМИ
// секретами, поэтому предъявить один вместо другого нельзя.
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// issueToken подписывает claim {email} секретом secret со сроком жизни ttl.
// Чистая функция от (email, secret, ttl, now) — никакого I/O.
func issueToken(email string, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	const op = "service.token.issueToken"

	claims := accessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// verifyToken проверяет подпись и срок действия токена секретом secret и
// возвращает email из claims. Битый формат, чужая подпись и просрочка
// неразличимы для вызывающего: всегда ErrInvalidToken.
func verifyToken(tokenStr string, secret []byte) (string, error) {
	const op = "service.token.verifyToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.Email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims.Email, nil
}

func (s *Service) issueAccessToken(email string, now time.Time) (string, error) {
	return issueToken(email, []byte(s.cfg.AccessSecret), s.cfg.AccessTokenTTL, now)
}

func (s *Service) issueRefreshToken(email string, now time.Time) (string, error) {
	return issueToken(email, []byte(s.cfg.RefreshSecret), s.cfg.RefreshTokenTTL, now)
}

// VerifyAccessToken валидирует access-токен и возвращает email из claims.
// Используется auth-мидлваром перед защищёнными операциями.
func (s *Service) VerifyAccessToken(tokenStr string) (string, error) {
	return verifyToken(tokenStr, []byte(s.cfg.AccessSecret))
}

func (s *Service) verifyRefreshToken(tokenStr string) (string, error) {
	return verifyToken(tokenStr, []byte(s.cfg.RefreshSecret))
}
