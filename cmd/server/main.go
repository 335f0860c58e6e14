package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/config"
	"github.com/iliyamo/cricket-ticket-booking/internal/database"
	"github.com/iliyamo/cricket-ticket-booking/internal/handler"
	appmw "github.com/iliyamo/cricket-ticket-booking/internal/middleware"
	"github.com/iliyamo/cricket-ticket-booking/internal/queue"
	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
	"github.com/iliyamo/cricket-ticket-booking/internal/router"
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.SeedAdmin(ctx, db, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("seed admin: %v", err)
	}
	if cfg.SeedDemoData {
		if err := database.SeedDemoData(ctx, db); err != nil {
			cancel()
			log.Fatalf("seed demo data: %v", err)
		}
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis: unavailable, cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	teamRepo := repository.NewTeamRepo(db)
	stadiumRepo := repository.NewStadiumRepo(db)
	matchRepo := repository.NewMatchRepo(db)
	seatRepo := repository.NewMatchSeatRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	browseHandler := handler.NewBrowseHandler(teamRepo, stadiumRepo, matchRepo, seatRepo)
	adminHandler := handler.NewAdminHandler(teamRepo, stadiumRepo, matchRepo, seatRepo, ticketRepo)
	bookingHandler := handler.NewBookingHandler(matchRepo, seatRepo, ticketRepo, paymentRepo)

	e := echo.New()
	e.HideBanner = true

	e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, browseHandler, cacheMW)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)
	router.RegisterCustomer(e, bookingHandler, cfg.JWTSecret)

	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("booking-consumer: stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
