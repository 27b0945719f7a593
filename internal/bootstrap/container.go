package bootstrap

import (
	"log"
	"time"

	"ai-music-be/internal/config"
	"ai-music-be/internal/controller"
	"ai-music-be/internal/pkg/clock"
	"ai-music-be/internal/pkg/keylock"
	"ai-music-be/internal/pkg/logger"
	"ai-music-be/internal/repository/memory"
	"ai-music-be/internal/repository/unitofwork"
	"ai-music-be/internal/service"
	"ai-music-be/pkg/predictor"
	"ai-music-be/pkg/preference"

	pktNats "ai-music-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const preferenceChangedTopic = "preference.changed"

type Container struct {
	// Controllers
	PreferenceController controller.IPreferenceController
	TriggerController    controller.ITriggerController
	CompositeController  controller.ICompositeController
	PredictiveController controller.IPredictiveController

	// Background Services (Exposed for main.go to run)
	ConsumerService    service.IConsumerService
	MaintenanceService service.IMaintenanceService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	sysClock := clock.System()
	locks := keylock.New(time.Duration(cfg.Preference.LockWaitSeconds) * time.Second)
	documentCache := memory.NewDocumentCache()
	fields := preference.DefaultFieldTable

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	publisherService := service.NewPublisherService(pubSub, preferenceChangedTopic)
	consumerService := service.NewConsumerService(pubSub, preferenceChangedTopic, natsPub)

	// 3. Predictive rule table
	rules, err := predictor.NewDefaultRuleTable()
	if err != nil {
		log.Fatalf("[FATAL] Failed to compile predictive rules: %v", err)
	}

	// 4. Services
	preferenceService := service.NewPreferenceService(
		uowFactory,
		locks,
		documentCache,
		fields,
		publisherService,
		sysClock,
		sysLogger,
		cfg.Preference.HistoryDefaultLimit,
	)
	triggerService := service.NewTriggerService(
		uowFactory,
		locks,
		documentCache,
		fields,
		publisherService,
		sysClock,
		sysLogger,
	)
	compositeService := service.NewCompositeService(
		uowFactory,
		locks,
		documentCache,
		fields,
		publisherService,
		sysClock,
		sysLogger,
	)
	predictiveService := service.NewPredictiveService(
		uowFactory,
		locks,
		documentCache,
		rules,
		publisherService,
		sysClock,
		sysLogger,
		cfg.Preference.RetrainThreshold,
	)
	maintenanceService := service.NewMaintenanceService(
		uowFactory,
		triggerService,
		sysLogger,
		time.Duration(cfg.Preference.SweepIntervalSeconds)*time.Second,
	)

	// 5. Controllers
	return &Container{
		PreferenceController: controller.NewPreferenceController(preferenceService),
		TriggerController:    controller.NewTriggerController(triggerService),
		CompositeController:  controller.NewCompositeController(compositeService),
		PredictiveController: controller.NewPredictiveController(predictiveService),

		ConsumerService:    consumerService,
		MaintenanceService: maintenanceService,
	}
}
