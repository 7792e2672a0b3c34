package models

import "time"

// Profile — профиль пользователя, создаётся атомарно вместе с Account
// при регистрации. Поля Log/Image/Completion — непрозрачные для ядра
// пользовательские данные (журнал прохождения, картинки, прогресс).
type Profile struct {
	Email      string
	Name       string
	Log        []string
	Image      []string
	Completion []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
