package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dkrasnovsky/gamenext-auth/internal/models"
	"github.com/dkrasnovsky/gamenext-auth/internal/storage"
)

// profileColumns — единый список колонок таблицы profiles,
// используемый в SELECT/RETURNING, чтобы гарантировать одинаковый порядок сканирования.
const profileColumns = `
email, name, log, image, completion, created_at, updated_at
`

// scanProfile сканирует одну строку профиля из результата запроса.
func scanProfile(row pgx.Row) (*models.Profile, error) {
	var profile models.Profile

	if err := row.Scan(
		&profile.Email,
		&profile.Name,
		&profile.Log,
		&profile.Image,
		&profile.Completion,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &profile, nil
}

// ProfileByEmail возвращает профиль по email.
// Ошибки: storage.ErrNotFound, либо ошибка выполнения запроса.
func (s *Storage) ProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	const op = "storage.postgres.ProfileByEmail"

	q := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`

	result, err := scanProfile(s.db.QueryRow(ctx, q, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// UpdateProfile выполняет частичный апдейт: обновляет только поля,
// указанные непустыми pointer-полями, и всегда сдвигает updated_at = now().
// Ошибки: storage.ErrNotFound при отсутствии записи.
func (s *Storage) UpdateProfile(ctx context.Context, email string, update storage.ProfileUpdate) (*models.Profile, error) {
	const op = "storage.postgres.UpdateProfile"

	sets := []string{"updated_at = now()"}
	args := make([]any, 0, 4)
	count := 0

	if update.Log != nil {
		count++
		sets = append(sets, fmt.Sprintf("log = $%d", count))
		args = append(args, *update.Log)
	}

	if update.Image != nil {
		count++
		sets = append(sets, fmt.Sprintf("image = $%d", count))
		args = append(args, *update.Image)
	}

	if update.Completion != nil {
		count++
		sets = append(sets, fmt.Sprintf("completion = $%d", count))
		args = append(args, *update.Completion)
	}

	count++
	args = append(args, email)

	q := fmt.Sprintf(`UPDATE profiles SET %s WHERE email = $%d RETURNING %s`,
		strings.Join(sets, ", "), count, profileColumns)

	result, err := scanProfile(s.db.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
