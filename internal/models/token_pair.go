package models

import "time"

// TokenPair — пара токенов, которую получает клиент после успешного логина.
// RefreshToken здесь — ровно то значение, которое сохранено в хранилище
// (read-after-write), а не то, что было выпущено в памяти.
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}
