package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/simplyfly/api"
	"github.com/Domenick1991/simplyfly/config"
	"github.com/Domenick1991/simplyfly/internal/auth"
	"github.com/Domenick1991/simplyfly/internal/bootstrap"
	"github.com/Domenick1991/simplyfly/internal/cache"
	"github.com/Domenick1991/simplyfly/internal/kafka"
	"github.com/Domenick1991/simplyfly/internal/logger"
	"github.com/Domenick1991/simplyfly/internal/repository"
	"github.com/Domenick1991/simplyfly/internal/service/booking"
	"github.com/Domenick1991/simplyfly/internal/service/flights"
	"github.com/Domenick1991/simplyfly/internal/service/identity"
	"github.com/Domenick1991/simplyfly/internal/service/owners"
	"github.com/Domenick1991/simplyfly/internal/service/passengers"
	"github.com/Domenick1991/simplyfly/internal/service/reviews"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Log)
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("connect postgres")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.WithError(err).Fatal("ping postgres")
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.FlightsCache())
	defer redisCache.Close()
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := redisCache.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("redis unavailable, running without cache and seat holds")
	}
	cancel()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()
	checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := producer.CheckConnection(checkCtx); err != nil {
		log.WithError(err).Warn("kafka unavailable, booking events will be dropped")
	}
	cancel()

	userRepo := repository.NewUserRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	ownerRepo := repository.NewOwnerRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	identityService := identity.NewIdentityService(userRepo, tokens, auth.NewPasswordHasher(cfg.Auth.BcryptCost), log)
	flightService := flights.NewFlightService(flightRepo, redisCache, cfg.Booking.DefaultAirline, log)
	bookingService := booking.NewBookingService(
		bookingRepo,
		passengerRepo,
		ownerRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		cfg.Booking.SeatHold(),
		log,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithDefaultAirline(cfg.Booking.DefaultAirline),
		booking.WithRefundScope(cfg.Booking.ScopeRefundsToOwner),
	)
	passengerService := passengers.NewPassengerService(passengerRepo, bookingRepo, log)
	reviewService := reviews.NewReviewService(reviewRepo, bookingRepo, log)
	ownerService := owners.NewOwnerService(ownerRepo, flightRepo, log)

	flightHandler := api.NewFlightHandler(flightService)
	router := api.NewRouter(api.RouterDeps{
		Auth:       api.NewAuthHandler(identityService),
		Flights:    flightHandler,
		Bookings:   api.NewBookingHandler(bookingService),
		Passengers: api.NewPassengerHandler(passengerService),
		Reviews:    api.NewReviewHandler(reviewService),
		Admin:      api.NewAdminHandler(flightHandler, identityService, bookingService),
		Owners:     api.NewOwnerHandler(ownerService, bookingService),
		Tokens:     tokens,
		Limiter:    redisCache,
		RateLimit:  cfg.RateLimit,
		SwaggerDir: cfg.HTTP.SwaggerDir,
		Log:        log,
	})

	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router, log); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
