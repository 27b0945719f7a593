package service

import (
	"context"
	"testing"
	"time"

	"ai-music-be/internal/constant"
	"ai-music-be/internal/dto"
	"ai-music-be/internal/entity"
	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateTriggerUnknownType(t *testing.T) {
	f := newFixture(t)
	_, err := f.triggers.Create(context.Background(), uuid.New(), &dto.CreateTriggerRequest{
		TriggerType: "quantum_playback",
	})
	require.ErrorIs(t, err, ErrUnsupportedTrigger)
}

func TestCreateTriggerUsesCatalogDefaults(t *testing.T) {
	f := newFixture(t)
	resp, err := f.triggers.Create(context.Background(), uuid.New(), &dto.CreateTriggerRequest{
		TriggerType: constant.TriggerMarathonPlayback,
	})
	require.NoError(t, err)
	require.Equal(t, 6*3600, resp.LifetimeSeconds)
	require.True(t, resp.Overlay.Equal(constant.TriggerCatalog[constant.TriggerMarathonPlayback].Overlay))
	require.False(t, resp.IsActive)
}

func TestActivateMergesOverlayAndSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	base := preference.Document{"audio": {"volume": preference.Number(50)}}
	f.seedUser(t, userId, base)

	trigger, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType: constant.TriggerMarathonPlayback,
		Overlay:     preference.Document{"audio": {"crossfade": preference.Number(5)}},
	})
	require.NoError(t, err)

	activated, err := f.triggers.Activate(ctx, userId, trigger.Id)
	require.NoError(t, err)
	require.True(t, activated.IsActive)

	doc := f.document(t, userId)
	require.Equal(t, float64(50), doc["audio"]["volume"].Num)
	require.Equal(t, float64(5), doc["audio"]["crossfade"].Num)

	records := f.history(t, userId)
	require.Equal(t, string(entity.SourceEphemeral), records[0].Source)
	require.NotNil(t, records[0].TriggerId)
	require.Equal(t, trigger.Id, *records[0].TriggerId)
}

func TestActivateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	f.seedUser(t, userId, preference.Document{"audio": {"volume": preference.Number(50)}})
	trigger, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType: constant.TriggerEditing,
	})
	require.NoError(t, err)

	_, err = f.triggers.Activate(ctx, userId, trigger.Id)
	require.NoError(t, err)
	f.clk.Advance(time.Minute)
	after := f.document(t, userId)
	historyLen := len(f.history(t, userId))

	_, err = f.triggers.Activate(ctx, userId, trigger.Id)
	require.NoError(t, err)
	require.True(t, f.document(t, userId).Equal(after))
	require.Len(t, f.history(t, userId), historyLen)
}

func TestDeactivateRestoresSnapshotVerbatim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	base := preference.Document{"audio": {"volume": preference.Number(50)}}
	f.seedUser(t, userId, base)

	trigger, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType: constant.TriggerLateNight,
	})
	require.NoError(t, err)
	_, err = f.triggers.Activate(ctx, userId, trigger.Id)
	require.NoError(t, err)
	f.clk.Advance(time.Minute)

	// A manual edit made while the overlay is active is discarded by the
	// snapshot restore.
	_, err = f.prefs.Set(ctx, userId, &dto.UpdatePreferenceRequest{
		Document: preference.Document{"audio": {"volume": preference.Number(95)}},
	})
	require.NoError(t, err)
	f.clk.Advance(time.Minute)

	deactivated, err := f.triggers.Deactivate(ctx, userId, trigger.Id)
	require.NoError(t, err)
	require.False(t, deactivated.IsActive)
	require.True(t, f.document(t, userId).Equal(base))
}

func TestActivateDeactivateRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	base := preference.Document{
		"audio":     {"volume": preference.Number(50), "quality": preference.Categorical("high")},
		"interface": {"theme": preference.Categorical("light")},
	}
	f.seedUser(t, userId, base)

	trigger, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType: constant.TriggerLiveMixing,
	})
	require.NoError(t, err)

	_, err = f.triggers.Activate(ctx, userId, trigger.Id)
	require.NoError(t, err)
	f.clk.Advance(time.Minute)
	_, err = f.triggers.Deactivate(ctx, userId, trigger.Id)
	require.NoError(t, err)

	require.True(t, f.document(t, userId).Equal(base))

	// Deactivating again is a no-op.
	historyLen := len(f.history(t, userId))
	_, err = f.triggers.Deactivate(ctx, userId, trigger.Id)
	require.NoError(t, err)
	require.Len(t, f.history(t, userId), historyLen)
}

func TestActivateMissingTrigger(t *testing.T) {
	f := newFixture(t)
	_, err := f.triggers.Activate(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCleanupStaleDeactivatesExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	base := preference.Document{"audio": {"volume": preference.Number(50)}}
	f.seedUser(t, userId, base)

	short, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType:     constant.TriggerLiveMixing,
		LifetimeSeconds: 600,
	})
	require.NoError(t, err)
	_, err = f.triggers.Activate(ctx, userId, short.Id)
	require.NoError(t, err)
	f.clk.Advance(time.Minute)

	long, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType: constant.TriggerMarathonPlayback,
	})
	require.NoError(t, err)
	_, err = f.triggers.Activate(ctx, userId, long.Id)
	require.NoError(t, err)

	f.clk.Advance(30 * time.Minute)
	cleaned, err := f.triggers.CleanupStale(ctx, userId)
	require.NoError(t, err)
	require.Equal(t, 1, cleaned)

	listed, err := f.triggers.List(ctx, userId)
	require.NoError(t, err)
	byId := make(map[uuid.UUID]*dto.TriggerResponse, len(listed))
	for _, tr := range listed {
		byId[tr.Id] = tr
	}
	require.False(t, byId[short.Id].IsActive)
	require.True(t, byId[long.Id].IsActive)
}

func TestDeleteActiveTriggerRestoresFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	base := preference.Document{"audio": {"volume": preference.Number(50)}}
	f.seedUser(t, userId, base)

	trigger, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType: constant.TriggerLateNight,
	})
	require.NoError(t, err)
	_, err = f.triggers.Activate(ctx, userId, trigger.Id)
	require.NoError(t, err)
	f.clk.Advance(time.Minute)

	require.NoError(t, f.triggers.Delete(ctx, userId, trigger.Id))
	require.True(t, f.document(t, userId).Equal(base))

	listed, err := f.triggers.List(ctx, userId)
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestActivateRejectsSecondTriggerOfSameType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	f.seedUser(t, userId, preference.Document{"audio": {"volume": preference.Number(50)}})

	first, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType: constant.TriggerEditing,
	})
	require.NoError(t, err)
	second, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType: constant.TriggerEditing,
	})
	require.NoError(t, err)

	_, err = f.triggers.Activate(ctx, userId, first.Id)
	require.NoError(t, err)
	docAfterFirst := f.document(t, userId)
	recordsAfterFirst := len(f.history(t, userId))

	_, err = f.triggers.Activate(ctx, userId, second.Id)
	require.ErrorIs(t, err, ErrTriggerTypeActive)

	// Rejection leaves the document and the ledger untouched.
	require.True(t, f.document(t, userId).Equal(docAfterFirst))
	require.Equal(t, recordsAfterFirst, len(f.history(t, userId)))

	// A different type may still activate alongside.
	other, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType: constant.TriggerLateNight,
	})
	require.NoError(t, err)
	_, err = f.triggers.Activate(ctx, userId, other.Id)
	require.NoError(t, err)

	// Once the holder deactivates, the blocked trigger may take over.
	_, err = f.triggers.Deactivate(ctx, userId, first.Id)
	require.NoError(t, err)
	activated, err := f.triggers.Activate(ctx, userId, second.Id)
	require.NoError(t, err)
	require.True(t, activated.IsActive)
}
