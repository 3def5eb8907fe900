package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/frocha1012/travel-reservation/internal/config"
	"github.com/frocha1012/travel-reservation/internal/database"
	"github.com/frocha1012/travel-reservation/internal/engine"
	"github.com/frocha1012/travel-reservation/internal/handler"
	"github.com/frocha1012/travel-reservation/internal/middleware"
	"github.com/frocha1012/travel-reservation/internal/queue"
	"github.com/frocha1012/travel-reservation/internal/repository"
	"github.com/frocha1012/travel-reservation/internal/router"
	"github.com/frocha1012/travel-reservation/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; containers set the environment directly
	cfg := config.Load()

	// The engine's working set lives in flat files under DataDir.
	// MySQL only holds accounts and refresh tokens.
	fs, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("open data dir: %v", err)
	}
	eng, err := engine.New(fs)
	if err != nil {
		log.Fatalf("load reservation engine: %v", err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("connect auth database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := handler.NewPublicHandler(eng)
	customerHandler := handler.NewCustomerHandler(eng)
	adminInventory := handler.NewAdminInventoryHandler(eng)
	adminReservation := handler.NewAdminReservationHandler(eng)
	adminUser := handler.NewAdminUserHandler(userRepo, tokenRepo)

	e := echo.New()
	e.HideBanner = true

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler)
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminInventory, adminReservation, adminUser, cfg.JWTSecret)

	// Background consumer appends reservation events to logs/reservations.log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, data=%s)", addr, cfg.Env, cfg.DataDir)

	go func() {
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	// A clean exit always leaves the data files consistent.
	if err := eng.Flush(); err != nil {
		log.Printf("final flush: %v", err)
	}
	log.Printf("shutdown complete")
}
