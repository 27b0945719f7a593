package service

import (
	"context"
	"testing"
	"time"

	"ai-music-be/internal/dto"
	"ai-music-be/internal/entity"
	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	doc := preference.Document{
		"audio": {
			"volume": preference.Number(50),
			"mute":   preference.Boolean(false),
		},
	}
	resp, err := f.prefs.Set(ctx, userId, &dto.UpdatePreferenceRequest{Document: doc})
	require.NoError(t, err)
	require.True(t, resp.Document.Equal(doc))

	got := f.document(t, userId)
	require.True(t, got.Equal(doc))

	records := f.history(t, userId)
	require.Len(t, records, 1)
	require.Equal(t, string(entity.SourceManual), records[0].Source)
	require.True(t, records[0].PreviousState.IsEmpty())
	require.True(t, records[0].NewState.Equal(doc))
}

func TestSetRejectsInvalidDocument(t *testing.T) {
	f := newFixture(t)
	userId := uuid.New()

	doc := preference.Document{
		"audio": {
			"quality": preference.Categorical("ultra"),
		},
	}
	_, err := f.prefs.Set(context.Background(), userId, &dto.UpdatePreferenceRequest{Document: doc})
	require.ErrorIs(t, err, preference.ErrInvalidDocument)
}

func TestGetSeedsEmptyDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	resp, err := f.prefs.Get(ctx, userId)
	require.NoError(t, err)
	require.True(t, resp.Document.IsEmpty())

	uow := f.factory.NewUnitOfWork(ctx)
	exists, err := uow.UserPreferenceRepository().Exists(ctx, userId)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestHistoryFiltering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	uow := f.factory.NewUnitOfWork(ctx)

	base := f.clk.Now()
	sources := []entity.ChangeSource{
		entity.SourceManual,
		entity.SourceEphemeral,
		entity.SourceComposite,
		entity.SourceMLDriven,
		entity.SourceManual,
	}
	for i, source := range sources {
		err := uow.PreferenceChangeRepository().Create(ctx, &entity.PreferenceChange{
			Id:        uuid.New(),
			UserId:    userId,
			Source:    source,
			NewState:  preference.Document{},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	all := f.history(t, userId)
	require.Len(t, all, 5)
	// Newest first.
	require.Equal(t, base.Add(4*time.Hour), all[0].CreatedAt)

	noDerived, err := f.prefs.History(ctx, userId, &dto.HistoryRequest{
		ExcludeEphemeral: true,
		ExcludeComposite: true,
	})
	require.NoError(t, err)
	require.Len(t, noDerived, 3)
	for _, record := range noDerived {
		require.NotEqual(t, string(entity.SourceEphemeral), record.Source)
		require.NotEqual(t, string(entity.SourceComposite), record.Source)
	}

	manualOnly, err := f.prefs.History(ctx, userId, &dto.HistoryRequest{
		Sources: []string{string(entity.SourceManual)},
	})
	require.NoError(t, err)
	require.Len(t, manualOnly, 2)

	from := base.Add(90 * time.Minute)
	to := base.Add(210 * time.Minute)
	windowed, err := f.prefs.History(ctx, userId, &dto.HistoryRequest{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, windowed, 2)

	paged, err := f.prefs.History(ctx, userId, &dto.HistoryRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 2)
	require.Equal(t, base.Add(3*time.Hour), paged[0].CreatedAt)
}

func TestRollbackRestoresVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	v1 := preference.Document{"audio": {"volume": preference.Number(40)}}
	v2 := preference.Document{"audio": {"volume": preference.Number(60)}}
	v3 := preference.Document{"audio": {"volume": preference.Number(80)}}
	f.seedUser(t, userId, v1)
	f.seedUser(t, userId, v2)
	f.seedUser(t, userId, v3)

	records := f.history(t, userId)
	require.Len(t, records, 3)
	target := records[2] // oldest, the v1 write

	resp, err := f.prefs.RollbackTo(ctx, userId, &dto.RollbackRequest{VersionId: target.Id})
	require.NoError(t, err)
	require.True(t, resp.Document.Equal(v1))
	require.True(t, f.document(t, userId).Equal(v1))

	records = f.history(t, userId)
	require.Len(t, records, 4)
	require.Equal(t, string(entity.SourceRollback), records[0].Source)
	require.Equal(t, target.Id.String(), records[0].Metadata["rollback_to"])
}

func TestRollbackPreserveEphemeral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	base := preference.Document{
		"audio":     {"volume": preference.Number(50)},
		"interface": {"theme": preference.Categorical("light")},
	}
	f.seedUser(t, userId, base)
	targetId := f.history(t, userId)[0].Id

	louder := preference.Document{
		"audio":     {"volume": preference.Number(90)},
		"interface": {"theme": preference.Categorical("light")},
	}
	f.seedUser(t, userId, louder)

	trigger, err := f.triggers.Create(ctx, userId, &dto.CreateTriggerRequest{
		TriggerType: "late_night",
	})
	require.NoError(t, err)
	_, err = f.triggers.Activate(ctx, userId, trigger.Id)
	require.NoError(t, err)
	f.clk.Advance(time.Minute)

	// Preserving keeps the late night overlay on top of the restored state.
	resp, err := f.prefs.RollbackTo(ctx, userId, &dto.RollbackRequest{
		VersionId:         targetId,
		PreserveEphemeral: true,
	})
	require.NoError(t, err)
	require.Equal(t, float64(30), resp.Document["audio"]["volume"].Num)
	require.Equal(t, "dark", resp.Document["interface"]["theme"].Str)

	// Without preservation the restore is verbatim.
	resp, err = f.prefs.RollbackTo(ctx, userId, &dto.RollbackRequest{VersionId: targetId})
	require.NoError(t, err)
	require.True(t, resp.Document.Equal(base))
}

func TestRollbackUnknownVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	other := uuid.New()

	f.seedUser(t, userId, preference.Document{"audio": {"volume": preference.Number(50)}})
	foreign := f.history(t, userId)[0].Id

	_, err := f.prefs.RollbackTo(ctx, userId, &dto.RollbackRequest{VersionId: uuid.New()})
	require.ErrorIs(t, err, ErrNotFound)

	// A version id belonging to another user is invisible.
	_, err = f.prefs.RollbackTo(ctx, other, &dto.RollbackRequest{VersionId: foreign})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePreset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	uow := f.factory.NewUnitOfWork(ctx)

	preset := &entity.PersonalPreset{
		Id:       uuid.New(),
		UserId:   userId,
		Name:     "weekend mix",
		Document: preference.Document{"audio": {"volume": preference.Number(70)}},
	}
	require.NoError(t, uow.PersonalPresetRepository().Create(ctx, preset))

	presets, err := f.prefs.Presets(ctx, userId)
	require.NoError(t, err)
	require.Len(t, presets, 1)

	// Another user cannot delete it.
	require.ErrorIs(t, f.prefs.DeletePreset(ctx, uuid.New(), preset.Id), ErrNotFound)

	require.NoError(t, f.prefs.DeletePreset(ctx, userId, preset.Id))
	presets, err = f.prefs.Presets(ctx, userId)
	require.NoError(t, err)
	require.Empty(t, presets)
}
