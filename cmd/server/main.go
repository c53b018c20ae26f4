package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-room-reservation/internal/config"
	"github.com/iliyamo/hotel-room-reservation/internal/database"
	"github.com/iliyamo/hotel-room-reservation/internal/handler"
	"github.com/iliyamo/hotel-room-reservation/internal/middleware"
	"github.com/iliyamo/hotel-room-reservation/internal/queue"
	"github.com/iliyamo/hotel-room-reservation/internal/reconciler"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
	"github.com/iliyamo/hotel-room-reservation/internal/router"
	"github.com/iliyamo/hotel-room-reservation/internal/validation"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache, rate limiting and password reset disabled")
	}

	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	resetCodes := repository.NewResetCodeStore(rdb, 0)

	rec := reconciler.New(rooms, bookings, cfg.ReconcileInterval, cfg.ReconcileTimeout)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	resetH := handler.NewPasswordResetHandler(cfg, users, tokens, resetCodes)
	bookingH := handler.NewBookingHandler(rooms, bookings)
	adminBookingH := handler.NewAdminBookingHandler(rooms, bookings)
	adminRoomH := handler.NewAdminRoomHandler(rooms, rec)
	staffRoomH := handler.NewStaffRoomHandler(rooms)
	publicRoomH := handler.NewPublicRoomHandler(rooms, bookings, rec)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, resetH, cfg.JWTSecret)
	router.RegisterPublic(e, publicRoomH, cacheMW)
	router.RegisterGuest(e, bookingH, cfg.JWTSecret)
	router.RegisterStaff(e, staffRoomH, adminBookingH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminRoomH, adminBookingH, cfg.JWTSecret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rec.Run(ctx)
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
