package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rezervacija/sala-backend/internal/config"
	"github.com/rezervacija/sala-backend/internal/database"
	"github.com/rezervacija/sala-backend/internal/handler"
	"github.com/rezervacija/sala-backend/internal/middleware"
	"github.com/rezervacija/sala-backend/internal/queue"
	"github.com/rezervacija/sala-backend/internal/repository"
	"github.com/rezervacija/sala-backend/internal/router"
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

	// Redis backs the response cache and the rate limiter.  A nil
	// client disables both and the server still works.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	recommendationRepo := repository.NewRecommendationRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	roomHandler := handler.NewRoomHandler(roomRepo, reservationRepo)
	reservationHandler := handler.NewReservationHandler(roomRepo, reservationRepo)
	recommendationHandler := handler.NewRecommendationHandler(roomRepo, recommendationRepo)
	dashboardHandler := handler.NewDashboardHandler(userRepo, roomRepo, reservationRepo)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, roomHandler, cache)
	router.RegisterUser(e, reservationHandler, recommendationHandler, cfg.JWTSecret)
	router.RegisterStaff(e, roomHandler, reservationHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, dashboardHandler, cfg.JWTSecret, cache)

	// Background consumer for reservation.created events.  Runs a
	// reconnect loop of its own; failures never take the API down.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
