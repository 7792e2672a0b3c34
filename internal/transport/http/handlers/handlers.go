// handlers содержит HTTP-обработчики REST-поверхности auth-сервиса.
// Обработчики тонкие: декодируют вход, зовут сервисный слой и сериализуют
// ответ; вся доменная логика и маппинг ошибок живут ниже.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dkrasnovsky/gamenext-auth/internal/service"
)

// Handlers агрегирует зависимости (сервисный слой).
type Handlers struct {
	service *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{service: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
