package main

import (
	adminhandler "aquavalle/internal/admin/handler"
	adminrepository "aquavalle/internal/admin/repository"
	adminservice "aquavalle/internal/admin/service"
	availabilityhandler "aquavalle/internal/availability/handler"
	availabilityservice "aquavalle/internal/availability/service"
	blocksrepository "aquavalle/internal/blocks/repository"
	blocksservice "aquavalle/internal/blocks/service"
	reservationshandler "aquavalle/internal/reservations/handler"
	reservationsrepository "aquavalle/internal/reservations/repository"
	reservationsservice "aquavalle/internal/reservations/service"
	reservationsvalidator "aquavalle/internal/reservations/validator"
	roomshandler "aquavalle/internal/rooms/handler"
	roomsrepository "aquavalle/internal/rooms/repository"
	roomsservice "aquavalle/internal/rooms/service"

	"aquavalle/pkg/app"
	"aquavalle/pkg/auth"
	"aquavalle/pkg/config"
	"aquavalle/pkg/kafka"

	"github.com/joho/godotenv"
)

const ServiceName = "server"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting AquaValle booking server")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	producer := initProducer(cfg)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	roomRepo := roomsrepository.NewMongoRoomRepository(cfg)
	roomService := roomsservice.NewRoomService(roomRepo, cfg)

	blockRepo := blocksrepository.NewMongoBlockRepository(cfg)
	blockService := blocksservice.NewBlockService(blockRepo, roomService, cfg)

	reservationRepo := reservationsrepository.NewMongoReservationRepository(cfg)
	lockRepo := reservationsrepository.NewReservationLockRepository(cfg)
	clientRepo := reservationsrepository.NewMongoClientRepository(cfg)
	reservationValidator := reservationsvalidator.NewReservationValidator(cfg.Log)
	reservationService := reservationsservice.NewReservationService(
		reservationRepo,
		lockRepo,
		clientRepo,
		roomRepo,
		blockRepo,
		reservationValidator,
		producerOrNil(producer),
		cfg,
	)

	availabilityService := availabilityservice.NewAvailabilityService(reservationRepo, blockRepo, roomRepo, cfg)

	adminRepo := adminrepository.NewMongoAdminRepository(cfg)
	resetCodeRepo := adminrepository.NewMongoResetCodeRepository(cfg)
	authService := adminservice.NewAuthService(adminRepo, resetCodeRepo, tokens, adminPublisherOrNil(producer), cfg)
	statsService := adminservice.NewStatsService(reservationRepo, cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		roomshandler.NewRoomHandler(roomService, cfg.Log),
		reservationshandler.NewReservationHandler(reservationService, cfg),
		availabilityhandler.NewAvailabilityHandler(availabilityService, cfg),
		adminhandler.NewAdminHandler(authService, statsService, reservationService, blockService, tokens, cfg),
	)
	if producer != nil {
		serverApp.OnShutdown(func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		})
	}

	cfg.Log.Info("All services initialized", "database", cfg.MongoDatabaseName)
	serverApp.Run()
}

// initProducer builds the event producer. The API stays up without Kafka;
// events are simply not published.
func initProducer(cfg *config.Config) *kafka.Producer {
	tuning, err := kafka.LoadTuning(cfg.KafkaBrokers)
	if err != nil {
		cfg.Log.Warn("Invalid Kafka tuning, events disabled", "error", err)
		return nil
	}

	producer, err := kafka.NewProducer(tuning, cfg.ReservationsTopic, cfg.ReservationsDLQ)
	if err != nil {
		cfg.Log.Warn("Failed to create Kafka producer, events disabled", "error", err)
		return nil
	}

	producer.Use(kafka.LoggingProducerMiddleware(cfg.Log))
	return producer
}

// A nil *kafka.Producer stored in a non-nil interface would dodge the
// publisher == nil checks, so convert explicitly.
func producerOrNil(p *kafka.Producer) reservationsservice.Publisher {
	if p == nil {
		return nil
	}
	return p
}

func adminPublisherOrNil(p *kafka.Producer) adminservice.Publisher {
	if p == nil {
		return nil
	}
	return p
}
