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

func TestApplyMatchesRule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	f.seedUser(t, userId, preference.Document{"audio": {"volume": preference.Number(70)}})

	// Move into late night territory.
	f.clk.Current = time.Date(2026, 3, 3, 23, 15, 0, 0, time.UTC)
	event, applied, err := f.predictive.Apply(ctx, userId, &dto.PredictiveApplyRequest{
		SessionDurationSeconds: 600,
		InteractionCount:       4,
	})
	require.NoError(t, err)
	require.True(t, applied)
	require.Equal(t, "rule:late_night_wind_down", event.ReasonCode)
	require.True(t, event.IsActive)

	doc := f.document(t, userId)
	require.Equal(t, float64(35), doc["audio"]["volume"].Num)
	require.Equal(t, "dark", doc["interface"]["theme"].Str)

	records := f.history(t, userId)
	require.Equal(t, string(entity.SourceMLDriven), records[0].Source)
	require.Equal(t, event.Id.String(), records[0].Metadata["event_id"])
}

func TestApplyNoMatchWithoutModel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	f.seedUser(t, userId, preference.Document{"audio": {"volume": preference.Number(70)}})

	event, applied, err := f.predictive.Apply(ctx, userId, &dto.PredictiveApplyRequest{
		SessionDurationSeconds: 600,
		InteractionCount:       4,
	})
	require.NoError(t, err)
	require.False(t, applied)
	require.Nil(t, event)

	events, err := f.predictive.Events(ctx, userId)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestAcceptLabelsEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	f.seedUser(t, userId, preference.Document{"audio": {"volume": preference.Number(70)}})
	f.clk.Current = time.Date(2026, 3, 3, 23, 0, 0, 0, time.UTC)
	event, _, err := f.predictive.Apply(ctx, userId, &dto.PredictiveApplyRequest{SessionDurationSeconds: 600})
	require.NoError(t, err)

	accepted, err := f.predictive.Accept(ctx, userId, event.Id)
	require.NoError(t, err)
	require.NotNil(t, accepted.UserAccepted)
	require.True(t, *accepted.UserAccepted)

	_, err = f.predictive.Accept(ctx, uuid.New(), event.Id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRevertRestoresOriginal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	base := preference.Document{"audio": {"volume": preference.Number(70)}}
	f.seedUser(t, userId, base)

	f.clk.Current = time.Date(2026, 3, 3, 23, 0, 0, 0, time.UTC)
	event, _, err := f.predictive.Apply(ctx, userId, &dto.PredictiveApplyRequest{SessionDurationSeconds: 600})
	require.NoError(t, err)
	f.clk.Advance(time.Minute)

	resp, err := f.predictive.Revert(ctx, userId, event.Id)
	require.NoError(t, err)
	require.True(t, resp.Document.Equal(base))

	events, err := f.predictive.Events(ctx, userId)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.False(t, events[0].IsActive)
	require.NotNil(t, events[0].UserAccepted)
	require.False(t, *events[0].UserAccepted)

	// A second revert leaves the document alone.
	historyLen := len(f.history(t, userId))
	resp, err = f.predictive.Revert(ctx, userId, event.Id)
	require.NoError(t, err)
	require.True(t, resp.Document.Equal(base))
	require.Len(t, f.history(t, userId), historyLen)
}

func TestTrainWithoutLabeledEvents(t *testing.T) {
	f := newFixture(t)
	_, err := f.predictive.Train(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrInsufficientData)
}

func seedLabeledEvents(t *testing.T, f *fixture, userId uuid.UUID, accepted bool, overlay preference.Document, count int) {
	t.Helper()
	ctx := context.Background()
	uow := f.factory.NewUnitOfWork(ctx)
	for i := 0; i < count; i++ {
		label := accepted
		err := uow.PredictiveEventRepository().Create(ctx, &entity.PredictiveEvent{
			Id:     uuid.New(),
			UserId: userId,
			ContextSnapshot: entity.ContextSnapshot{
				Time:                   f.clk.Now(),
				SessionDurationSeconds: 1200,
				InteractionCount:       10,
				MinutesSinceLastChange: 15,
			},
			AppliedPreferences: overlay,
			ReasonCode:         "rule:late_night_wind_down",
			UserAccepted:       &label,
			CreatedAt:          f.clk.Now().Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestModelFallbackReplaysAcceptedOverlay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	base := preference.Document{"audio": {"volume": preference.Number(70)}}
	f.seedUser(t, userId, base)

	overlay := preference.Document{"audio": {"normalize": preference.Boolean(true)}}
	seedLabeledEvents(t, f, userId, true, overlay, 5)

	trained, err := f.predictive.Train(ctx, userId)
	require.NoError(t, err)
	require.Equal(t, 5, trained.TrainingSize)

	// Tuesday afternoon hits no rule; the all-accepting model fires and
	// replays the accepted overlay.
	event, applied, err := f.predictive.Apply(ctx, userId, &dto.PredictiveApplyRequest{
		SessionDurationSeconds: 1200,
		InteractionCount:       10,
	})
	require.NoError(t, err)
	require.True(t, applied)
	require.Equal(t, "model:logistic", event.ReasonCode)
	require.True(t, f.document(t, userId)["audio"]["normalize"].Bool)
}

func TestModelFallbackDeclines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	f.seedUser(t, userId, preference.Document{"audio": {"volume": preference.Number(70)}})
	overlay := preference.Document{"audio": {"normalize": preference.Boolean(true)}}
	seedLabeledEvents(t, f, userId, false, overlay, 5)

	_, err := f.predictive.Train(ctx, userId)
	require.NoError(t, err)

	_, applied, err := f.predictive.Apply(ctx, userId, &dto.PredictiveApplyRequest{
		SessionDurationSeconds: 1200,
		InteractionCount:       10,
	})
	require.NoError(t, err)
	require.False(t, applied)
}

func TestNeedsRetraining(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	status, err := f.predictive.NeedsRetraining(ctx, userId)
	require.NoError(t, err)
	require.False(t, status.NeedsRetraining)

	overlay := preference.Document{"audio": {"normalize": preference.Boolean(true)}}
	seedLabeledEvents(t, f, userId, true, overlay, 3)

	// Events but no model yet.
	status, err = f.predictive.NeedsRetraining(ctx, userId)
	require.NoError(t, err)
	require.True(t, status.NeedsRetraining)

	f.clk.Advance(time.Hour)
	_, err = f.predictive.Train(ctx, userId)
	require.NoError(t, err)

	status, err = f.predictive.NeedsRetraining(ctx, userId)
	require.NoError(t, err)
	require.False(t, status.NeedsRetraining)

	// Nine fresh events stay under the threshold of ten.
	seedLabeledEvents(t, f, userId, true, overlay, 9)
	status, err = f.predictive.NeedsRetraining(ctx, userId)
	require.NoError(t, err)
	require.False(t, status.NeedsRetraining)
	require.Equal(t, 9, status.NewEvents)

	seedLabeledEvents(t, f, userId, false, overlay, 1)
	status, err = f.predictive.NeedsRetraining(ctx, userId)
	require.NoError(t, err)
	require.True(t, status.NeedsRetraining)
}
