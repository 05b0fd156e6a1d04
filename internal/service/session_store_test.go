package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadready/dsm-admin-gateway/internal/models"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
)

func TestMemoryStoreSaveAndGet(t *testing.T) {
	store := NewMemorySessionStore()
	session := &models.RescheduleSession{ID: "sess-1", EnrollmentID: "enr-1", State: models.WizardStateAwaitingPick}

	require.NoError(t, store.Save(context.Background(), session, time.Minute))

	loaded, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "enr-1", loaded.EnrollmentID)

	byEnrollment, err := store.FindByEnrollment(context.Background(), "enr-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", byEnrollment.ID)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemorySessionStore()
	session := &models.RescheduleSession{ID: "sess-1", EnrollmentID: "enr-1", Cursor: 0}
	require.NoError(t, store.Save(context.Background(), session, time.Minute))

	loaded, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	loaded.Cursor = 9

	again, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Cursor)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	session := &models.RescheduleSession{ID: "sess-1", EnrollmentID: "enr-1"}
	require.NoError(t, store.Save(context.Background(), session, -time.Second))

	_, err := store.Get(context.Background(), "sess-1")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionNotFound.Code, appErrors.FromError(err).Code)

	_, err = store.FindByEnrollment(context.Background(), "enr-1")
	require.Error(t, err)
}

func TestMemoryStoreRestartReplacesSession(t *testing.T) {
	store := NewMemorySessionStore()
	first := &models.RescheduleSession{ID: "sess-1", EnrollmentID: "enr-1"}
	second := &models.RescheduleSession{ID: "sess-2", EnrollmentID: "enr-1"}

	require.NoError(t, store.Save(context.Background(), first, time.Minute))
	require.NoError(t, store.Save(context.Background(), second, time.Minute))

	_, err := store.Get(context.Background(), "sess-1")
	require.Error(t, err)

	byEnrollment, err := store.FindByEnrollment(context.Background(), "enr-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-2", byEnrollment.ID)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemorySessionStore()
	session := &models.RescheduleSession{ID: "sess-1", EnrollmentID: "enr-1"}
	require.NoError(t, store.Save(context.Background(), session, time.Minute))

	require.NoError(t, store.Delete(context.Background(), "sess-1"))

	_, err := store.Get(context.Background(), "sess-1")
	require.Error(t, err)
	_, err = store.FindByEnrollment(context.Background(), "enr-1")
	require.Error(t, err)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(context.Background(), "sess-1"))
}
