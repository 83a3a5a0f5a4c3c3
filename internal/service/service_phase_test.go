// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/MKhiriev/go-mutual-friends/internal/identifier"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/mock"
	"github.com/MKhiriev/go-mutual-friends/internal/store"
	"github.com/MKhiriev/go-mutual-friends/internal/workers"
	"github.com/MKhiriev/go-mutual-friends/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	aliceBundleID = uuid.MustParse("0190a1b2-0000-7000-8000-00000000000a")
	bobBundleID   = uuid.MustParse("0190a1b2-0000-7000-8000-00000000000b")
	resultID      = uuid.MustParse("0190a1b2-0000-7000-8000-0000000000ff")

	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

type phaseMocks struct {
	bundles *mock.MockBundleStorage
	journal *mock.MockJournal
}

func newPhaseMocks(t *testing.T) phaseMocks {
	ctrl := gomock.NewController(t)
	return phaseMocks{
		bundles: mock.NewMockBundleStorage(ctrl),
		journal: mock.NewMockJournal(ctrl),
	}
}

func fixedOptions(ids ...uuid.UUID) []Option {
	return []Option{
		WithIDGenerator(&fixedIDs{ids: ids}),
		WithClock(func() time.Time { return fixedNow }),
	}
}

// computeResult runs the calc phase on mocks and returns the written result
// bundle. The remote side is enrolled under the shared dev keys with
// aliceBundleID.
func computeResult(t *testing.T, codec *bundle.Codec, remote, local []uint64) []byte {
	t.Helper()
	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)

	var written []byte
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.RemotePublicPath).
		Return(encodedPublic(t, codec, aliceBundleID, remote...), nil)
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.SecretPath).
		Return(encodedPrivate(t, codec, bobBundleID, local...), nil)
	m.bundles.EXPECT().Write(gomock.Any(), cfg.Storage.Files.ResultPath, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte) error {
			written = data
			return nil
		})
	m.journal.EXPECT().RecordComputation(gomock.Any(), gomock.Any()).Return(nil)

	svc := NewComputeService(m.bundles, m.journal, codec, workers.Sequential{}, cfg, logger.Nop(), fixedOptions(resultID)...)
	_, err := svc.Compute(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, written)
	return written
}

// ── Enroll ────────────────────────────────────────────────────────────────────

func TestEnroll_EmptyInput(t *testing.T) {
	// ни одного вызова хранилища: gomock упадёт на любом неожиданном вызове
	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)
	svc := NewEnrollService(m.bundles, m.journal, newCodec(t), workers.Sequential{}, cfg, logger.Nop())

	for _, friends := range [][]string{nil, {}} {
		_, err := svc.Enroll(context.Background(), friends)
		require.ErrorIs(t, err, ErrEmptyInput)
	}
}

func TestEnroll_InvalidFormat(t *testing.T) {
	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)
	svc := NewEnrollService(m.bundles, m.journal, newCodec(t), workers.Sequential{}, cfg, logger.Nop())

	_, err := svc.Enroll(context.Background(), []string{userID(1), "not-an-identifier"})
	require.ErrorIs(t, err, identifier.ErrInvalidFormat)
}

func TestEnroll_RejectsBundleAboveDecodedLimit(t *testing.T) {
	// файл, который вторая сторона не сможет прочитать, не записывается
	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)
	codec := newLimitedCodec(t, 4<<20)
	svc := NewEnrollService(m.bundles, m.journal, codec, workers.Sequential{}, cfg, logger.Nop())

	_, err := svc.Enroll(context.Background(), userIDs(1, 2))
	require.ErrorIs(t, err, crypto.ErrCapacityExceeded)
	kind, _ := Describe(err)
	assert.Equal(t, "CapacityExceeded", kind)
}

func TestEnroll_RejectsListAboveCapacity(t *testing.T) {
	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)
	svc := NewEnrollService(m.bundles, m.journal, newCodec(t), workers.Sequential{}, cfg, logger.Nop())

	s, err := crypto.SchemeFor(crypto.ProfileDev)
	require.NoError(t, err)
	friends := make([]string, s.Capacity()+1)
	for i := range friends {
		friends[i] = userID(uint64(i) + 1)
	}

	_, err = svc.Enroll(context.Background(), friends)
	require.ErrorIs(t, err, crypto.ErrCapacityExceeded)
}

func TestEnroll_WritesPairAndJournals(t *testing.T) {
	m := newPhaseMocks(t)
	codec := newCodec(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)

	var priv, pub []byte
	m.bundles.EXPECT().WritePair(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, first, second store.File) error {
			assert.Equal(t, cfg.Storage.Files.SecretPath, first.Path)
			assert.Equal(t, cfg.Storage.Files.PublicPath, second.Path)
			priv, pub = first.Data, second.Data
			return nil
		})
	m.journal.EXPECT().RecordEnrollment(gomock.Any(), models.Enrollment{
		BundleID:    aliceBundleID.String(),
		Profile:     crypto.ProfileDev,
		Identifiers: 3,
		PrivatePath: cfg.Storage.Files.SecretPath,
		PublicPath:  cfg.Storage.Files.PublicPath,
		CreatedAt:   fixedNow,
	}).Return(nil)

	svc := NewEnrollService(m.bundles, m.journal, codec, workers.Sequential{}, cfg, logger.Nop(), fixedOptions(aliceBundleID)...)
	enrollment, err := svc.Enroll(context.Background(), userIDs(7, 8, 9))
	require.NoError(t, err)
	assert.Equal(t, aliceBundleID.String(), enrollment.BundleID)

	public, err := codec.DecodePublic(pub)
	require.NoError(t, err)
	assert.Equal(t, aliceBundleID, public.ID)
	assert.Len(t, public.Ciphertexts, 3)

	private, err := codec.DecodePrivate(priv)
	require.NoError(t, err)
	assert.Equal(t, aliceBundleID, private.ID)
	assert.Equal(t, []identifier.ID{{Lo: 7}, {Lo: 8}, {Lo: 9}}, private.Identifiers)
}

func TestEnroll_WritePairFailure(t *testing.T) {
	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)
	writeErr := fmt.Errorf("%w: disk full", store.ErrIO)

	m.bundles.EXPECT().WritePair(gomock.Any(), gomock.Any(), gomock.Any()).Return(writeErr)
	// journal must stay untouched

	svc := NewEnrollService(m.bundles, m.journal, newCodec(t), workers.Sequential{}, cfg, logger.Nop())
	_, err := svc.Enroll(context.Background(), userIDs(1))
	require.ErrorIs(t, err, store.ErrIO)
}

func TestEnroll_JournalFailureIsNotFatal(t *testing.T) {
	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)

	m.bundles.EXPECT().WritePair(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.journal.EXPECT().RecordEnrollment(gomock.Any(), gomock.Any()).Return(errors.New("database is locked"))

	svc := NewEnrollService(m.bundles, m.journal, newCodec(t), workers.Sequential{}, cfg, logger.Nop())
	enrollment, err := svc.Enroll(context.Background(), userIDs(1, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, enrollment.Identifiers)
}

// ── Compute ───────────────────────────────────────────────────────────────────

func TestCompute_WritesResultInRemoteOrder(t *testing.T) {
	codec := newCodec(t)
	data := computeResult(t, codec, []uint64{9, 42, 5}, []uint64{5, 9})

	result, err := codec.DecodeResult(data)
	require.NoError(t, err)
	assert.Equal(t, resultID, result.ID)
	assert.Equal(t, aliceBundleID, result.SourceID)
	assert.Equal(t, crypto.ProfileDev, result.Profile)
	assert.Len(t, result.Bits, 3)
}

func TestCompute_Rejections(t *testing.T) {
	codec := newCodec(t)

	tests := []struct {
		name    string
		profile string
		remote  func(t *testing.T) ([]byte, error)
		local   func(t *testing.T) ([]byte, error)
		want    error
	}{
		{
			name:    "profile mismatch",
			profile: crypto.ProfileDevDeep,
			remote:  func(t *testing.T) ([]byte, error) { return encodedPublic(t, codec, aliceBundleID, 1, 2), nil },
			local:   func(t *testing.T) ([]byte, error) { return encodedPrivate(t, codec, bobBundleID, 2), nil },
			want:    crypto.ErrCryptoConfigMismatch,
		},
		{
			name:    "empty remote",
			profile: crypto.ProfileDev,
			remote:  func(t *testing.T) ([]byte, error) { return encodedPublic(t, codec, aliceBundleID), nil },
			local:   func(t *testing.T) ([]byte, error) { return encodedPrivate(t, codec, bobBundleID, 2), nil },
			want:    ErrEmptyInput,
		},
		{
			name:    "empty local",
			profile: crypto.ProfileDev,
			remote:  func(t *testing.T) ([]byte, error) { return encodedPublic(t, codec, aliceBundleID, 1), nil },
			local:   func(t *testing.T) ([]byte, error) { return encodedPrivate(t, codec, bobBundleID), nil },
			want:    ErrEmptyInput,
		},
		{
			name:    "corrupted remote",
			profile: crypto.ProfileDev,
			remote:  func(*testing.T) ([]byte, error) { return []byte("definitely not zstd"), nil },
			want:    bundle.ErrDecompression,
		},
		{
			name:    "missing remote",
			profile: crypto.ProfileDev,
			remote:  func(*testing.T) ([]byte, error) { return nil, store.ErrBundleNotFound },
			want:    store.ErrBundleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newPhaseMocks(t)
			cfg := testConfig(t.TempDir(), tt.profile)

			m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.RemotePublicPath).Return(tt.remote(t))
			if tt.local != nil {
				m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.SecretPath).Return(tt.local(t))
			}
			// no Write and no journal entry expected

			svc := NewComputeService(m.bundles, m.journal, codec, workers.Sequential{}, cfg, logger.Nop())
			_, err := svc.Compute(context.Background())
			require.ErrorIs(t, err, tt.want)
		})
	}
}

// TestCompute_TruncatedRemoteFailsBeforeMatrix puts a truncated ciphertext
// at the last remote index: the phase must fail before any local block is
// encrypted or any row compared.
func TestCompute_TruncatedRemoteFailsBeforeMatrix(t *testing.T) {
	m := newPhaseMocks(t)
	codec := newCodec(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)

	remote, err := codec.DecodePublic(encodedPublic(t, codec, aliceBundleID, 1, 2, 3))
	require.NoError(t, err)
	last := len(remote.Ciphertexts) - 1
	raw, err := codec.Compression().Decompress(remote.Ciphertexts[last])
	require.NoError(t, err)
	remote.Ciphertexts[last] = codec.Compression().Compress(raw[:len(raw)/2])
	data, err := codec.EncodePublic(remote)
	require.NoError(t, err)

	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.RemotePublicPath).Return(data, nil)
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.SecretPath).
		Return(encodedPrivate(t, codec, bobBundleID, 1), nil)

	var (
		mu     sync.Mutex
		stages = map[string]bool{}
	)
	sink := WithProgressSink(func(stage string, _, _ int64) {
		mu.Lock()
		defer mu.Unlock()
		stages[stage] = true
	})

	svc := NewComputeService(m.bundles, m.journal, codec, workers.Sequential{}, cfg, logger.Nop(), sink)
	_, err = svc.Compute(context.Background())
	require.ErrorIs(t, err, bundle.ErrDeserialization)
	assert.Contains(t, err.Error(), "ciphertext #2")

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, stages["check-remote"])
	assert.False(t, stages["encrypt-local"])
	assert.False(t, stages["compare"])
}

func TestCompute_WriteFailure(t *testing.T) {
	m := newPhaseMocks(t)
	codec := newCodec(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)

	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.RemotePublicPath).
		Return(encodedPublic(t, codec, aliceBundleID, 1), nil)
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.SecretPath).
		Return(encodedPrivate(t, codec, bobBundleID, 1), nil)
	m.bundles.EXPECT().Write(gomock.Any(), cfg.Storage.Files.ResultPath, gomock.Any()).
		Return(fmt.Errorf("%w: read-only file system", store.ErrIO))

	svc := NewComputeService(m.bundles, m.journal, codec, workers.Sequential{}, cfg, logger.Nop())
	_, err := svc.Compute(context.Background())
	require.ErrorIs(t, err, store.ErrIO)
}

// ── Reveal ────────────────────────────────────────────────────────────────────

func TestReveal_Success(t *testing.T) {
	codec := newCodec(t)
	result := computeResult(t, codec, []uint64{9, 42}, []uint64{5, 9})

	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.SecretPath).
		Return(encodedPrivate(t, codec, aliceBundleID, 9, 42), nil)
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.RemoteResultPath).Return(result, nil)
	enrolled := models.Enrollment{
		BundleID:    aliceBundleID.String(),
		Profile:     crypto.ProfileDev,
		Identifiers: 2,
		PrivatePath: cfg.Storage.Files.SecretPath,
		PublicPath:  cfg.Storage.Files.PublicPath,
		CreatedAt:   fixedNow.Add(-time.Hour),
	}
	m.journal.EXPECT().Enrollment(gomock.Any(), aliceBundleID.String()).Return(enrolled, nil)
	m.journal.EXPECT().RecordReveal(gomock.Any(), models.Reveal{
		ResultID:  resultID.String(),
		SourceID:  aliceBundleID.String(),
		Total:     2,
		Mutual:    1,
		CreatedAt: fixedNow,
	}).Return(nil)

	svc := NewRevealService(m.bundles, m.journal, codec, workers.Sequential{}, cfg, logger.Nop(), fixedOptions()...)
	report, err := svc.Reveal(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.RevealEntry{
		{Index: 0, Identifier: userID(9), Mutual: true},
		{Index: 1, Identifier: userID(42), Mutual: false},
	}, report.Entries)
	require.NotNil(t, report.Enrollment)
	assert.Equal(t, enrolled, *report.Enrollment)
}

func TestReveal_EnrollmentNotJournaled(t *testing.T) {
	codec := newCodec(t)
	result := computeResult(t, codec, []uint64{9}, []uint64{9})

	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.SecretPath).
		Return(encodedPrivate(t, codec, aliceBundleID, 9), nil)
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.RemoteResultPath).Return(result, nil)
	m.journal.EXPECT().Enrollment(gomock.Any(), aliceBundleID.String()).
		Return(models.Enrollment{}, fmt.Errorf("enrollment: %w", store.ErrNotJournaled))
	m.journal.EXPECT().RecordReveal(gomock.Any(), gomock.Any()).Return(nil)

	svc := NewRevealService(m.bundles, m.journal, codec, workers.Sequential{}, cfg, logger.Nop(), fixedOptions()...)
	report, err := svc.Reveal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, report.Bits())
	// отчёт строится и без записи в журнале
	assert.Nil(t, report.Enrollment)
}

func TestReveal_WrongEnrollment(t *testing.T) {
	codec := newCodec(t)
	result := computeResult(t, codec, []uint64{9, 42}, []uint64{5, 9})

	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)
	// result was computed for alice's bundle, the private bundle is bob's
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.SecretPath).
		Return(encodedPrivate(t, codec, bobBundleID, 9, 42), nil)
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.RemoteResultPath).Return(result, nil)

	svc := NewRevealService(m.bundles, m.journal, codec, workers.Sequential{}, cfg, logger.Nop())
	_, err := svc.Reveal(context.Background())
	require.ErrorIs(t, err, bundle.ErrBundleMismatch)
}

func TestReveal_SealedWithoutPassphrase(t *testing.T) {
	codec := newCodec(t)
	sealing := bundle.NewCodec(codec.Compression(), bundle.WithPassphrase(crypto.NewKeyChain(), "correct horse"))

	m := newPhaseMocks(t)
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)
	m.bundles.EXPECT().Read(gomock.Any(), cfg.Storage.Files.SecretPath).
		Return(encodedPrivate(t, sealing, aliceBundleID, 1), nil)

	svc := NewRevealService(m.bundles, m.journal, codec, workers.Sequential{}, cfg, logger.Nop())
	_, err := svc.Reveal(context.Background())
	require.ErrorIs(t, err, bundle.ErrPassphraseRequired)

	kind, _ := Describe(err)
	assert.Equal(t, "PassphraseRequired", kind)
}

// ── NewServices ───────────────────────────────────────────────────────────────

func TestNewServices_UnknownStrategy(t *testing.T) {
	cfg := testConfig(t.TempDir(), crypto.ProfileDev)
	cfg.Workers = config.Workers{Strategy: "gpu", Count: 1}

	_, err := NewServices(&store.Storages{}, newCodec(t), nil, cfg, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.Error(t, err)
}
