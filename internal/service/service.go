// service содержит бизнес-логику auth-сервиса: регистрацию и аутентификацию
// по паролю, выпуск/проверку пары access/refresh токенов, обновление access-
// токена по refresh-токену и завершение сессий. Хранилище подключается через
// интерфейсы пакета storage.
//
// Основные аспекты:
//   - Service не хранит состояние запроса; экземпляр безопасен для
//     конкурентного использования из разных горутин при условии, что
//     переданное хранилище (storage.Storage) потокобезопасно.
//   - Секреты подписи копируются при конструировании и далее неизменны.
//   - Ошибки возвращаются сентинелами и маппятся транспортом на HTTP-статусы
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/dkrasnovsky/gamenext-auth/internal/cache"
	"github.com/dkrasnovsky/gamenext-auth/internal/config"
	"github.com/dkrasnovsky/gamenext-auth/internal/storage"
)

var (
	// ErrValidation — отсутствует обязательное поле запроса.
	// Транспорт: 400.
	ErrValidation = errors.New("missing required field")

	// ErrInvalidCredentials — пара email/пароль неверна ИЛИ пользователь не
	// найден. Намеренно один сентинел на оба случая, чтобы по ответу нельзя
	// было перечислять зарегистрированные email. Транспорт: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен некорректен по формату/подписи или просрочен.
	// Один сентинел на все три случая. Транспорт: 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnknownSession — предъявленный refresh-токен не совпадает ни с одним
	// сохранённым значением (сессии нет: logout, перелогин или токен чужой).
	// Транспорт: 401.
	ErrUnknownSession = errors.New("unknown session")

	// ErrRegistrationFailed — регистрация не удалась (наиболее вероятно —
	// занятый email); частичного состояния после неё не остаётся.
	// Транспорт: 409.
	ErrRegistrationFailed = errors.New("registration failed")

	// ErrProfileLookup — у прошедшей парольную проверку учётки нет профиля.
	// Аномалия консистентности: регистрация пишет обе строки атомарно.
	// Транспорт: 500.
	ErrProfileLookup = errors.New("profile lookup failed")

	// ErrNotFound — целевая запись отсутствует (административное удаление,
	// чтение профиля). Транспорт: 404.
	ErrNotFound = errors.New("not found")
)

// Service описывает бизнес-логику auth-сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	scache  cache.SessionCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetSessionCache устанавливает кэш refresh-токенов (опционально).
func (s *Service) SetSessionCache(c cache.SessionCache) {
	s.scache = c
}
