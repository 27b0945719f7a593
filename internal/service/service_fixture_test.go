package service

import (
	"context"
	"testing"
	"time"

	"ai-music-be/internal/dto"
	"ai-music-be/internal/pkg/clock"
	"ai-music-be/internal/pkg/keylock"
	"ai-music-be/internal/pkg/logger"
	"ai-music-be/internal/repository/memory"
	"ai-music-be/pkg/predictor"
	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fixture wires the services against the in-memory repositories. The
// fixed clock starts on a Tuesday afternoon so no default predictive
// rule fires unless a test steers the clock into one.
type fixture struct {
	factory    *memory.Factory
	cache      *memory.DocumentCache
	locks      *keylock.KeyLock
	clk        *clock.Fixed
	prefs      IPreferenceService
	triggers   ITriggerService
	composites ICompositeService
	predictive IPredictiveService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	factory := memory.NewFactory()
	cache := memory.NewDocumentCache()
	locks := keylock.New(2 * time.Second)
	clk := clock.NewFixed(time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC))
	log := logger.NewNopLogger()

	rules, err := predictor.NewDefaultRuleTable()
	require.NoError(t, err)

	fields := preference.DefaultFieldTable
	return &fixture{
		factory:    factory,
		cache:      cache,
		locks:      locks,
		clk:        clk,
		prefs:      NewPreferenceService(factory, locks, cache, fields, nil, clk, log, 100),
		triggers:   NewTriggerService(factory, locks, cache, fields, nil, clk, log),
		composites: NewCompositeService(factory, locks, cache, fields, nil, clk, log),
		predictive: NewPredictiveService(factory, locks, cache, rules, nil, clk, log, 10),
	}
}

// seedUser writes an initial document and advances the clock so later
// mutations get distinct timestamps.
func (f *fixture) seedUser(t *testing.T, userId uuid.UUID, doc preference.Document) {
	t.Helper()
	_, err := f.prefs.Set(context.Background(), userId, &dto.UpdatePreferenceRequest{Document: doc})
	require.NoError(t, err)
	f.clk.Advance(time.Minute)
}

func (f *fixture) document(t *testing.T, userId uuid.UUID) preference.Document {
	t.Helper()
	resp, err := f.prefs.Get(context.Background(), userId)
	require.NoError(t, err)
	return resp.Document
}

func (f *fixture) history(t *testing.T, userId uuid.UUID) []*dto.ChangeRecordResponse {
	t.Helper()
	records, err := f.prefs.History(context.Background(), userId, &dto.HistoryRequest{})
	require.NoError(t, err)
	return records
}
