package handlers

import (
	"net/http"

	apierrors "github.com/dkrasnovsky/gamenext-auth/internal/errors"
	"github.com/dkrasnovsky/gamenext-auth/internal/service"
	"github.com/dkrasnovsky/gamenext-auth/internal/storage"
	"github.com/dkrasnovsky/gamenext-auth/internal/transport/http/middleware"
)

// Profile — GET /profiles/me (защищённый).
// Email берётся из проверенного access-токена, не из запроса:
// вызывающий видит только собственный профиль.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.CallerEmail(r.Context())
	if !ok {
		apierrors.WriteCode(w, r, http.StatusForbidden, "forbidden", "bad token")
		return
	}

	profile, err := h.service.Profile(r.Context(), email)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileToResponse(profile))
}

// UpdateProfile — PUT /profiles/me (защищённый).
// Частичное обновление пользовательских полей; ключ — email вызывающего.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.CallerEmail(r.Context())
	if !ok {
		apierrors.WriteCode(w, r, http.StatusForbidden, "forbidden", "bad token")
		return
	}

	var in updateProfileRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrValidation)
		return
	}

	update := storage.ProfileUpdate{
		Log:        in.Log,
		Image:      in.Image,
		Completion: in.Completion,
	}

	profile, err := h.service.UpdateProfile(r.Context(), email, update)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileToResponse(profile))
}
