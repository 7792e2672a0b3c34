package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkrasnovsky/gamenext-auth/internal/storage"
)

// TestIntegration_UpdateProfile_Partial — обновляются только указанные поля,
// остальные сохраняют прежние значения, updated_at сдвигается.
func TestIntegration_UpdateProfile_Partial(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	account, profile := testAccount("user@example.com")
	profile.Log = []string{"game-1"}
	profile.Image = []string{"img-1"}

	_, err := st.CreateAccount(ctx, account, profile)
	require.NoError(t, err)

	newLog := []string{"game-1", "game-2"}
	updated, err := st.UpdateProfile(ctx, "user@example.com", storage.ProfileUpdate{Log: &newLog})
	require.NoError(t, err)

	require.Equal(t, newLog, updated.Log)
	require.Equal(t, []string{"img-1"}, updated.Image)
	require.Empty(t, updated.Completion)
	require.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

// TestIntegration_UpdateProfile_AllFields — одновременное обновление всех
// пользовательских полей, включая очистку пустым срезом.
func TestIntegration_UpdateProfile_AllFields(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	account, profile := testAccount("user@example.com")
	profile.Log = []string{"old"}

	_, err := st.CreateAccount(ctx, account, profile)
	require.NoError(t, err)

	log := []string{}
	image := []string{"i1", "i2"}
	completion := []string{"c1"}

	updated, err := st.UpdateProfile(ctx, "user@example.com", storage.ProfileUpdate{
		Log:        &log,
		Image:      &image,
		Completion: &completion,
	})
	require.NoError(t, err)

	require.Empty(t, updated.Log)
	require.Equal(t, image, updated.Image)
	require.Equal(t, completion, updated.Completion)
}

// TestIntegration_UpdateProfile_NoFields — апдейт без полей валиден:
// сдвигается только updated_at.
func TestIntegration_UpdateProfile_NoFields(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	account, profile := testAccount("user@example.com")
	profile.Log = []string{"keep"}

	_, err := st.CreateAccount(ctx, account, profile)
	require.NoError(t, err)

	updated, err := st.UpdateProfile(ctx, "user@example.com", storage.ProfileUpdate{})
	require.NoError(t, err)
	require.Equal(t, []string{"keep"}, updated.Log)
}

// TestIntegration_UpdateProfile_NotFound — storage.ErrNotFound для
// несуществующего email.
func TestIntegration_UpdateProfile_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.UpdateProfile(context.Background(), "absent@example.com", storage.ProfileUpdate{})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_ProfileByEmail_NotFound — storage.ErrNotFound для
// отсутствующего профиля.
func TestIntegration_ProfileByEmail_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.ProfileByEmail(context.Background(), "absent@example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
