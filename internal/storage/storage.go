// storage задаёт контракт постоянного хранилища (credential store):
// учётные записи с password-hash и текущим refresh-токеном плюс профили.
// Конкретные реализации — в подпакетах (postgres).
package storage

import (
	"context"
	"errors"

	"github.com/dkrasnovsky/gamenext-auth/internal/models"
)

var (
	// ErrNotFound — запись не найдена (учётка/профиль/refresh-токен).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
)

// ProfileUpdate — частичное обновление профиля: непустые pointer-поля
// перезаписывают соответствующие колонки, nil-поля не трогаются.
type ProfileUpdate struct {
	Log        *[]string
	Image      *[]string
	Completion *[]string
}

// AccountStorage выполняет операции над учётными записями.
type AccountStorage interface {
	// CreateAccount атомарно создаёт учётную запись и её профиль:
	// либо обе строки записаны, либо ни одной.
	CreateAccount(ctx context.Context, account *models.Account, profile *models.Profile) (*models.Profile, error)
	// AccountByEmail находит учётную запись по email.
	AccountByEmail(ctx context.Context, email string) (*models.Account, error)
	// AccountByRefreshToken находит учётную запись, у которой сохранён
	// ровно такой refresh-токен (поиск по значению, не по email).
	AccountByRefreshToken(ctx context.Context, token string) (*models.Account, error)
	// UpdateRefreshToken перезаписывает refresh-токен учётной записи и
	// возвращает значение, которое фактически сохранено (read-after-write).
	UpdateRefreshToken(ctx context.Context, email, token string) (string, error)
	// ClearRefreshToken обнуляет refresh-токен. Отсутствие строки или уже
	// пустой токен ошибкой не считаются (идемпотентность logout).
	ClearRefreshToken(ctx context.Context, email string) error
	// DeleteAccount удаляет учётную запись и возвращает удалённую строку.
	DeleteAccount(ctx context.Context, email string) (*models.Account, error)
}

// ProfileStorage выполняет операции над профилями.
type ProfileStorage interface {
	// ProfileByEmail находит профиль по email.
	ProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	// UpdateProfile выполняет частичный апдейт профиля.
	UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (*models.Profile, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	AccountStorage
	ProfileStorage
	Close()
}
