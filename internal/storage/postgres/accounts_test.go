package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dkrasnovsky/gamenext-auth/internal/models"
	"github.com/dkrasnovsky/gamenext-auth/internal/storage"
)

// Файл интеграционных тестов для пакета postgres (репозиторий accounts.go):
// - поднимает реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// - применяет миграции из ./migrations;
// - проверяет атомарность регистрации, перезапись refresh-токена, поиск по значению
//   токена, идемпотентность ClearRefreshToken и удаление учётной записи.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — определяет корень репозитория относительно текущего файла тестов.
// Используется для поиска SQL-миграций в каталоге ./migrations независимо от текущего рабочего каталога.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает содержимое SQL-миграции из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	root := repoRootFromThisFile()
	path := filepath.Join(root, "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres — поднимает временный экземпляр PostgreSQL через testcontainers-go,
// применяет миграции и возвращает инициализированное хранилище и функцию очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	// применяем миграции.
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, readMigration(t, "1_init_accounts.up.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, readMigration(t, "2_init_profiles.up.sql"))
	require.NoError(t, err)

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

func testAccount(email string) (*models.Account, *models.Profile) {
	return &models.Account{Email: email, PasswordHash: "hash"},
		&models.Profile{Email: email, Name: "Alice", Log: []string{}, Image: []string{}, Completion: []string{}}
}

// TestIntegration_CreateAccount_And_Lookup_OK — happy-path: регистрация создаёт
// обе строки, refresh_token изначально NULL, email регистронезависим (CITEXT).
func TestIntegration_CreateAccount_And_Lookup_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	account, profile := testAccount("User@Example.Com")

	created, err := st.CreateAccount(context.Background(), account, profile)
	require.NoError(t, err)
	require.Equal(t, "User@Example.Com", created.Email)
	require.Empty(t, created.Log)

	got, err := st.AccountByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.Equal(t, "hash", got.PasswordHash)
	require.Nil(t, got.RefreshToken)
	require.False(t, got.HasSession())

	p, err := st.ProfileByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.Equal(t, "Alice", p.Name)
}

// TestIntegration_CreateAccount_Duplicate — повторная регистрация того же email
// (в том числе в другом регистре) завершается storage.ErrAlreadyExists.
func TestIntegration_CreateAccount_Duplicate(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	account, profile := testAccount("user@example.com")
	_, err := st.CreateAccount(context.Background(), account, profile)
	require.NoError(t, err)

	dupAccount, dupProfile := testAccount("USER@EXAMPLE.COM")
	_, err = st.CreateAccount(context.Background(), dupAccount, dupProfile)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

// TestIntegration_CreateAccount_Atomicity — при конфликте на второй вставке
// (профиль уже существует) транзакция откатывается целиком: учётки тоже нет.
func TestIntegration_CreateAccount_Atomicity(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	// Заранее создаём профиль-сироту: вставка профиля при регистрации упадёт.
	_, err := st.db.Exec(ctx, `INSERT INTO profiles(email, name) VALUES ($1, $2)`, "taken@example.com", "Ghost")
	require.NoError(t, err)

	account, profile := testAccount("taken@example.com")
	_, err = st.CreateAccount(ctx, account, profile)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	// Учётная запись не появилась: откат был полным.
	_, err = st.AccountByEmail(ctx, "taken@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_UpdateRefreshToken_OverwriteAndLookupByValue — перезапись
// refresh-токена и поиск учётки по значению токена.
func TestIntegration_UpdateRefreshToken_OverwriteAndLookupByValue(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	account, profile := testAccount("user@example.com")
	_, err := st.CreateAccount(ctx, account, profile)
	require.NoError(t, err)

	stored, err := st.UpdateRefreshToken(ctx, "user@example.com", "token-1")
	require.NoError(t, err)
	require.Equal(t, "token-1", stored)

	got, err := st.AccountByRefreshToken(ctx, "token-1")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", got.Email)

	// Новый логин перезаписывает токен: прежний больше не находится.
	stored, err = st.UpdateRefreshToken(ctx, "user@example.com", "token-2")
	require.NoError(t, err)
	require.Equal(t, "token-2", stored)

	_, err = st.AccountByRefreshToken(ctx, "token-1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	got, err = st.AccountByRefreshToken(ctx, "token-2")
	require.NoError(t, err)
	require.True(t, got.HasSession())
}

// TestIntegration_UpdateRefreshToken_UnknownEmail — обновление токена
// несуществующей учётки даёт storage.ErrNotFound.
func TestIntegration_UpdateRefreshToken_UnknownEmail(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.UpdateRefreshToken(context.Background(), "absent@example.com", "token")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_ClearRefreshToken_Idempotent — обнуление токена работает
// повторно и для несуществующего email без ошибок.
func TestIntegration_ClearRefreshToken_Idempotent(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	account, profile := testAccount("user@example.com")
	_, err := st.CreateAccount(ctx, account, profile)
	require.NoError(t, err)

	_, err = st.UpdateRefreshToken(ctx, "user@example.com", "token-1")
	require.NoError(t, err)

	require.NoError(t, st.ClearRefreshToken(ctx, "user@example.com"))

	got, err := st.AccountByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.Nil(t, got.RefreshToken)

	// Повтор и несуществующий email — тоже без ошибок.
	require.NoError(t, st.ClearRefreshToken(ctx, "user@example.com"))
	require.NoError(t, st.ClearRefreshToken(ctx, "absent@example.com"))
}

// TestIntegration_DeleteAccount — удаление возвращает удалённую строку;
// профиль намеренно остаётся (между таблицами нет FK).
func TestIntegration_DeleteAccount(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	account, profile := testAccount("user@example.com")
	_, err := st.CreateAccount(ctx, account, profile)
	require.NoError(t, err)

	deleted, err := st.DeleteAccount(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", deleted.Email)

	_, err = st.AccountByEmail(ctx, "user@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Профиль пережил удаление учётки.
	_, err = st.ProfileByEmail(ctx, "user@example.com")
	require.NoError(t, err)

	// Повторное удаление — ErrNotFound.
	_, err = st.DeleteAccount(ctx, "user@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_AccountQueries_ContextCanceled — отменённый контекст
// «просачивается» в ошибки чтения как context.Canceled.
func TestIntegration_AccountQueries_ContextCanceled(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // отменяем заранее

	_, err := st.AccountByEmail(ctx, "user@example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)

	_, err = st.AccountByRefreshToken(ctx, "token")
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}
