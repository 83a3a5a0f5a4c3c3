package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/store"
	"github.com/MKhiriev/go-mutual-friends/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHistory_Enrollments(t *testing.T) {
	m := newPhaseMocks(t)
	items := []models.Enrollment{
		{BundleID: bobBundleID.String(), Profile: crypto.ProfileDev, Identifiers: 4, CreatedAt: fixedNow},
		{BundleID: aliceBundleID.String(), Profile: crypto.ProfileDev, Identifiers: 2, CreatedAt: fixedNow.Add(-time.Hour)},
	}
	m.journal.EXPECT().Enrollments(gomock.Any(), uint64(historyLimit)).Return(items, nil)

	got, err := NewHistoryService(m.journal, logger.Nop()).Enrollments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestHistory_JournalError(t *testing.T) {
	m := newPhaseMocks(t)
	m.journal.EXPECT().Enrollments(gomock.Any(), gomock.Any()).
		Return(nil, errors.Join(store.ErrExecutingQuery, errors.New("disk I/O error")))

	_, err := NewHistoryService(m.journal, logger.Nop()).Enrollments(context.Background())
	require.ErrorIs(t, err, store.ErrExecutingQuery)
	assert.Contains(t, err.Error(), "history")
}

func TestHistory_JournalOff(t *testing.T) {
	storages, err := store.NewStorages(context.Background(), testConfig(t.TempDir(), crypto.ProfileDev).Storage, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	got, err := NewHistoryService(storages.Journal, logger.Nop()).Enrollments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
