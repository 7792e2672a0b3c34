// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимает доменную ошибку (сентинел из пакета service), а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Ни одна внутренняя ошибка (текст SQL, детали хранилища) наружу не уходит:
// незнакомые ошибки схлопываются в 500/internal.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkrasnovsky/gamenext-auth/internal/service"
)

// APIError — единый формат ошибки для клиента.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует доменную ошибку в HTTP-статус и унифицированный ответ.
//
// Маппинг:
//   - ErrValidation -> 400 invalid_argument;
//   - ErrInvalidCredentials -> 401 invalid_credentials (единый ответ и для
//     «нет такого email», и для «неверный пароль»);
//   - ErrInvalidToken -> 401 invalid_token;
//   - ErrUnknownSession -> 401 unknown_session;
//   - ErrRegistrationFailed -> 409 registration_failed;
//   - ErrNotFound -> 404 not_found;
//   - всё прочее (включая ErrProfileLookup) -> 500 internal.
func ToHTTP(err error) (int, ErrorResponse) {
	code, feCode, msg := base(err)

	return code, ErrorResponse{
		Error: APIError{
			Code:    feCode,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id, чтобы клиент мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteCode пишет ответ с явными статусом/кодом — для ошибок, которые не
// выражаются доменными сентинелами (missing_auth, forbidden на auth-гейте).
func WriteCode(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	resp := ErrorResponse{Error: APIError{Code: code, Message: msg}}

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func base(err error) (int, string, string) {
	switch {
	case err == nil:
		// Программная ошибка вызова: не маскируем баг ответом «200 с телом ошибки».
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, "invalid_argument", "missing required field"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid credentials"
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid_token", "invalid token"
	case errors.Is(err, service.ErrUnknownSession):
		return http.StatusUnauthorized, "unknown_session", "unknown session"
	case errors.Is(err, service.ErrRegistrationFailed):
		return http.StatusConflict, "registration_failed", "unable to register"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
