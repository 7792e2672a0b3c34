package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dkrasnovsky/gamenext-auth/internal/models"
	"github.com/dkrasnovsky/gamenext-auth/internal/storage"
)

const accountColumns = `
email, password_hash, refresh_token, created_at, updated_at
`

// scanAccount сканирует одну строку учётной записи в доменную модель.
func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account

	if err := row.Scan(
		&account.Email,
		&account.PasswordHash,
		&account.RefreshToken,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &account, nil
}

// CreateAccount атомарно создаёт учётную запись и профиль в одной транзакции.
// Частичное состояние (учётка без профиля) не должно быть наблюдаемым,
// поэтому оба INSERT выполняются внутри pgx.BeginFunc.
// Ошибки: storage.ErrAlreadyExists при конфликте уникальности email.
func (s *Storage) CreateAccount(ctx context.Context, account *models.Account, profile *models.Profile) (*models.Profile, error) {
	const op = "storage.postgres.CreateAccount"

	const insertAccount = `
		INSERT INTO accounts(email, password_hash, refresh_token)
		VALUES ($1, $2, NULL)
	`

	const insertProfile = `
		INSERT INTO profiles(email, name, log, image, completion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING email, name, log, image, completion, created_at, updated_at
	`

	var created *models.Profile

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertAccount, account.Email, account.PasswordHash); err != nil {
			return err
		}

		row := tx.QueryRow(ctx, insertProfile,
			profile.Email,
			profile.Name,
			profile.Log,
			profile.Image,
			profile.Completion,
		)

		p, err := scanProfile(row)
		if err != nil {
			return err
		}

		created = p
		return nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// AccountByEmail находит учётную запись по email.
func (s *Storage) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.postgres.AccountByEmail"

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account, err := scanAccount(s.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return account, nil
}

// AccountByRefreshToken находит учётную запись по сохранённому значению
// refresh-токена. Вызывающий при refresh не обязан знать свой email,
// поэтому поиск идёт по самому токену.
func (s *Storage) AccountByRefreshToken(ctx context.Context, token string) (*models.Account, error) {
	const op = "storage.postgres.AccountByRefreshToken"

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE refresh_token = $1`

	account, err := scanAccount(s.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return account, nil
}

// UpdateRefreshToken перезаписывает refresh-токен учётной записи.
// Возвращается значение из RETURNING — ровно то, что сохранено в БД,
// чтобы вызывающий отдал клиенту каноническое значение.
func (s *Storage) UpdateRefreshToken(ctx context.Context, email, token string) (string, error) {
	const op = "storage.postgres.UpdateRefreshToken"

	query := `
		UPDATE accounts
		SET refresh_token = $2, updated_at = now()
		WHERE email = $1
		RETURNING refresh_token
	`

	var stored string
	err := s.db.QueryRow(ctx, query, email, token).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return stored, nil
}

// ClearRefreshToken обнуляет refresh-токен учётной записи.
// Отсутствие строки не считается ошибкой: logout идемпотентен.
func (s *Storage) ClearRefreshToken(ctx context.Context, email string) error {
	const op = "storage.postgres.ClearRefreshToken"

	query := `
		UPDATE accounts
		SET refresh_token = NULL, updated_at = now()
		WHERE email = $1
	`

	if _, err := s.db.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteAccount удаляет учётную запись и возвращает удалённую строку.
// Ошибки: storage.ErrNotFound, если записи не было.
func (s *Storage) DeleteAccount(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.postgres.DeleteAccount"

	query := `
		DELETE FROM accounts
		WHERE email = $1
		RETURNING ` + accountColumns

	account, err := scanAccount(s.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return account, nil
}
