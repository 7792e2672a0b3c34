package handlers

import (
	"net/http"

	apierrors "github.com/dkrasnovsky/gamenext-auth/internal/errors"
	"github.com/dkrasnovsky/gamenext-auth/internal/service"
)

// Register — POST /auth/register.
// Создаёт учётную запись и профиль атомарно; отвечает созданным профилем.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrValidation)
		return
	}

	profile, err := h.service.Register(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, profileToResponse(profile))
}

// Login — POST /auth/login.
// Отвечает парой токенов; refresh в ответе — ровно сохранённое значение.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrValidation)
		return
	}

	pair, err := h.service.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresAt: pair.AccessExpiresAt.Unix(),
	})
}

// Refresh — POST /auth/refresh.
// Обменивает действующий refresh-токен на новый access-токен;
// сам refresh-токен при этом не меняется.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrUnknownSession)
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{AccessToken: accessToken})
}

// Logout — POST /auth/logout. Идемпотентен.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var in logoutRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrValidation)
		return
	}

	if err := h.service.Logout(r.Context(), in.Email); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse{Ok: true})
}

// DeleteAccount — DELETE /auth/account (административная операция).
// Отвечает удалённой записью без секретных полей.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var in deleteAccountRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrValidation)
		return
	}

	account, err := h.service.DeleteAccount(r.Context(), in.Email)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deletedAccountResponse{
		Email:     account.Email,
		CreatedAt: account.CreatedAt.Unix(),
		UpdatedAt: account.UpdatedAt.Unix(),
	})
}
