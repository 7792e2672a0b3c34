package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dkrasnovsky/gamenext-auth/internal/models"
	"github.com/dkrasnovsky/gamenext-auth/internal/pkg/log"
	"github.com/dkrasnovsky/gamenext-auth/internal/pkg/redact"
	"github.com/dkrasnovsky/gamenext-auth/internal/storage"
)

// Register регистрирует нового пользователя: хэширует пароль и атомарно
// создаёт учётную запись (refresh_token = NULL) вместе с профилем.
// Любая причина отказа хранилища (прежде всего занятый email) схлопывается
// в ErrRegistrationFailed; частичного состояния после отказа не остаётся.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.Profile, error) {
	const op = "service.auth.Register"

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrValidation)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: hash,
	}

	profile := &models.Profile{
		Email:      email,
		Name:       name,
		Log:        []string{},
		Image:      []string{},
		Completion: []string{},
	}

	created, err := s.storage.CreateAccount(ctx, account, profile)
	if err != nil {
		log.From(ctx).Warn("register_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(email)),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrRegistrationFailed)
	}

	return created, nil
}

// Login выполняет вход по email+пароль и выпускает новую пару токенов.
//
// «Нет такого email» и «неверный пароль» дают один и тот же
// ErrInvalidCredentials — ответ не раскрывает, существует ли учётка.
// Новый refresh-токен ПЕРЕЗАПИСЫВАЕТ прежний: старая сессия (если была)
// перестаёт действовать, активной остаётся ровно одна. Клиенту возвращается
// значение, прочитанное из RETURNING, т.е. ровно то, что сохранено.
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	const op = "service.auth.Login"

	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrValidation)
	}

	account, err := s.storage.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(account.PasswordHash, password) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	// Профиль обязан существовать: регистрация пишет обе строки атомарно.
	if _, err := s.storage.ProfileByEmail(ctx, email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.From(ctx).Error("profile_missing_for_account",
				slog.String("op", op),
				slog.String("email", redact.Email(email)),
			)

			return nil, fmt.Errorf("%s: %w", op, ErrProfileLookup)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	accessToken, err := s.issueAccessToken(email, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.issueRefreshToken(email, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := s.storage.UpdateRefreshToken(ctx, email, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cacheReplace(ctx, account.RefreshToken, stored, email)

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    stored,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// Refresh обменивает действующий refresh-токен на новый access-токен.
//
// Учётка ищется по ЗНАЧЕНИЮ предъявленного токена (вызывающий не обязан
// знать свой email); отсутствие совпадения — ErrUnknownSession. Далее
// верифицируется СОХРАНЁННЫЙ токен (равный предъявленному по построению
// поиска); битая подпись/просрочка — ErrInvalidToken. Сам refresh-токен
// не ротируется и не переписывается: он действует до конца своего срока
// либо до logout/перелогина.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "service.auth.Refresh"

	if refreshToken == "" {
		return "", fmt.Errorf("%s: %w", op, ErrUnknownSession)
	}

	account, err := s.lookupSession(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	email, err := s.verifyRefreshToken(*account.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	accessToken, err := s.issueAccessToken(email, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return accessToken, nil
}

// Logout отзывает сессию: refresh-токен учётной записи обнуляется.
// Идемпотентен — повторный вызов и вызов для несуществующего email
// одинаково успешны с точки зрения вызывающего.
func (s *Service) Logout(ctx context.Context, email string) error {
	const op = "service.auth.Logout"

	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}

	// Лучшее из возможного для кэша: узнать прежний токен, чтобы снять ключ.
	if s.scache != nil {
		if account, err := s.storage.AccountByEmail(ctx, email); err == nil && account.HasSession() {
			s.cacheDelete(ctx, *account.RefreshToken)
		}
	}

	if err := s.storage.ClearRefreshToken(ctx, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteAccount — административное удаление учётной записи целиком.
// Возвращает удалённую запись либо ErrNotFound. Профиль намеренно
// не трогается (см. миграции).
func (s *Service) DeleteAccount(ctx context.Context, email string) (*models.Account, error) {
	const op = "service.auth.DeleteAccount"

	account, err := s.storage.DeleteAccount(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if account.HasSession() {
		s.cacheDelete(ctx, *account.RefreshToken)
	}

	return account, nil
}

// lookupSession находит учётку по значению refresh-токена: сперва через кэш
// (token -> email, затем сверка с БД), при промахе — запросом по значению.
// Источник истины всегда БД, кэш может только ускорить, но не изменить ответ.
func (s *Service) lookupSession(ctx context.Context, refreshToken string) (*models.Account, error) {
	if s.scache != nil {
		email, ok, err := s.scache.Get(ctx, refreshToken)
		if err != nil {
			log.From(ctx).Warn("session_cache_get_failed", slog.String("err", err.Error()))
		} else if ok {
			account, err := s.storage.AccountByEmail(ctx, email)
			if err == nil && account.HasSession() && *account.RefreshToken == refreshToken {
				return account, nil
			}
			// Кэш устарел (logout/перелогин/удаление) — ключ больше не нужен.
			s.cacheDelete(ctx, refreshToken)

			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return nil, err
			}

			return nil, ErrUnknownSession
		}
	}

	account, err := s.storage.AccountByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnknownSession
		}

		return nil, err
	}

	return account, nil
}

// cacheReplace снимает ключ прежнего токена и кладёт новый. Кэш — best effort:
// ошибки только логируются и на результат операции не влияют.
func (s *Service) cacheReplace(ctx context.Context, old *string, token, email string) {
	if s.scache == nil {
		return
	}

	if old != nil && *old != "" && *old != token {
		s.cacheDelete(ctx, *old)
	}

	if err := s.scache.Set(ctx, token, email, s.cfg.RefreshTokenTTL); err != nil {
		log.From(ctx).Warn("session_cache_set_failed", slog.String("err", err.Error()))
	}
}

func (s *Service) cacheDelete(ctx context.Context, token string) {
	if s.scache == nil {
		return
	}

	if err := s.scache.Delete(ctx, token); err != nil {
		log.From(ctx).Warn("session_cache_del_failed", slog.String("err", err.Error()))
	}
}
