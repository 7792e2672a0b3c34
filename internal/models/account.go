// models содержит доменные сущности auth-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import "time"

// Account — учётная запись (credential record), ключ — email.
//
// RefreshToken хранит ТЕКУЩИЙ действующий refresh-токен пользователя либо nil,
// если активной сессии нет. Инвариант: не более одной живой сессии на email —
// выпуск нового refresh-токена перезаписывает (и тем самым отзывает) прежний.
type Account struct {
	Email        string
	PasswordHash string
	RefreshToken *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSession сообщает, есть ли у учётной записи активная сессия.
func (a *Account) HasSession() bool {
	return a.RefreshToken != nil && *a.RefreshToken != ""
}
