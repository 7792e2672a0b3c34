package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkrasnovsky/gamenext-auth/internal/models"
	"github.com/dkrasnovsky/gamenext-auth/internal/storage"
)

// Profile возвращает профиль вызывающего. Email берётся транспортом из
// проверенного access-токена, поэтому чужой профиль прочитать нельзя.
func (s *Service) Profile(ctx context.Context, email string) (*models.Profile, error) {
	const op = "service.profile.Profile"

	profile, err := s.storage.ProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return profile, nil
}

// UpdateProfile выполняет частичный апдейт непрозрачных полей профиля
// (log/image/completion) вызывающего.
func (s *Service) UpdateProfile(ctx context.Context, email string, update storage.ProfileUpdate) (*models.Profile, error) {
	const op = "service.profile.UpdateProfile"

	profile, err := s.storage.UpdateProfile(ctx, email, update)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return profile, nil
}
