// Входные/выходные модели REST-поверхности.
package handlers

import "github.com/dkrasnovsky/gamenext-auth/internal/models"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
	AccessExpiresAt int64  `json:"access_expires_at"` // Unix UTC
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

type logoutRequest struct {
	Email string `json:"email"`
}

type okResponse struct {
	Ok bool `json:"ok"`
}

type deleteAccountRequest struct {
	Email string `json:"email"`
}

// deletedAccountResponse намеренно без password_hash и refresh_token:
// секреты не покидают сервис даже в административных ответах.
type deletedAccountResponse struct {
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"` // Unix UTC
	UpdatedAt int64  `json:"updated_at"` // Unix UTC
}

type profileResponse struct {
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Log        []string `json:"log"`
	Image      []string `json:"image"`
	Completion []string `json:"completion"`
	CreatedAt  int64    `json:"created_at"` // Unix UTC
	UpdatedAt  int64    `json:"updated_at"` // Unix UTC
}

// updateProfileRequest — частичное обновление: nil-поле означает «не трогать»,
// пустой срез — «очистить».
type updateProfileRequest struct {
	Log        *[]string `json:"log,omitempty"`
	Image      *[]string `json:"image,omitempty"`
	Completion *[]string `json:"completion,omitempty"`
}

func profileToResponse(p *models.Profile) profileResponse {
	return profileResponse{
		Email:      p.Email,
		Name:       p.Name,
		Log:        p.Log,
		Image:      p.Image,
		Completion: p.Completion,
		CreatedAt:  p.CreatedAt.Unix(),
		UpdatedAt:  p.UpdatedAt.Unix(),
	}
}
