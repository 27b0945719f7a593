package main

import (
	"context"
	"log"
	"os"
	"time"

	"ai-music-be/internal/constant"
	"ai-music-be/internal/entity"
	"ai-music-be/internal/repository/unitofwork"
	"ai-music-be/pkg/database"
	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds two demo listeners with starter documents and an inactive
// marathon trigger, enough to exercise the API by hand.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	now := time.Now()

	seeds := []struct {
		userId   uuid.UUID
		document preference.Document
	}{
		{
			userId: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			document: preference.Document{
				"audio": {
					"volume":  preference.Number(65),
					"quality": preference.Categorical("high"),
					"mute":    preference.Boolean(false),
				},
				"interface": {
					"theme": preference.Categorical("dark"),
				},
			},
		},
		{
			userId: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			document: preference.Document{
				"audio": {
					"volume":    preference.Number(40),
					"crossfade": preference.Number(3),
					"quality":   preference.Categorical("lossless"),
				},
				"generation": {
					"model_quality": preference.Categorical("studio"),
				},
			},
		},
	}

	for _, seed := range seeds {
		err := uow.UserPreferenceRepository().Save(ctx, &entity.UserPreference{
			UserId:    seed.userId,
			Document:  seed.document,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			log.Fatalf("Error: Failed to seed preferences for %s: %v", seed.userId, err)
		}

		err = uow.PreferenceChangeRepository().Create(ctx, &entity.PreferenceChange{
			Id:            uuid.New(),
			UserId:        seed.userId,
			PreviousState: preference.Document{},
			NewState:      seed.document,
			Source:        entity.SourceSystem,
			Metadata:      map[string]interface{}{"seeded": true},
			CreatedAt:     now,
		})
		if err != nil {
			log.Fatalf("Error: Failed to seed history for %s: %v", seed.userId, err)
		}
	}

	preset := constant.TriggerCatalog[constant.TriggerMarathonPlayback]
	err = uow.TriggerRepository().Create(ctx, &entity.PreferenceTrigger{
		Id:              uuid.New(),
		UserId:          seeds[0].userId,
		TriggerType:     constant.TriggerMarathonPlayback,
		Overlay:         preset.Overlay.Clone(),
		LifetimeSeconds: preset.LifetimeSeconds,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		log.Fatalf("Error: Failed to seed trigger: %v", err)
	}

	log.Println("✅ Success: Seeded demo preference data.")
}
