package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the process environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/hitechmekong/eventProject/internal/config"   // Internal config loader
	"github.com/hitechmekong/eventProject/internal/database" // MySQL connection pool
	"github.com/hitechmekong/eventProject/internal/handler"
	"github.com/hitechmekong/eventProject/internal/queue" // Audit trail consumer
	"github.com/hitechmekong/eventProject/internal/repository"
	"github.com/hitechmekong/eventProject/internal/router" // Internal router setup
	qp "github.com/hitechmekong/eventProject/internal/service"
	"github.com/hitechmekong/eventProject/internal/ws" // Broadcast hub for welcome screens
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client turns the rate limiter into a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, check-in rate limiting disabled")
	}

	guests := repository.NewGuestRepo(db)
	events := repository.NewEventRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	// One hub instance for the whole process; every websocket session and
	// every check-in broadcast goes through it.
	hub := ws.NewHub()

	checkin := handler.NewCheckinHandler(guests, hub, qp.PublishCheckinLogged)
	auth := handler.NewAuthHandler(cfg, users, tokens)
	eventH := handler.NewEventHandler(events)
	guestH := handler.NewGuestHandler(cfg, guests, events)
	userH := handler.NewUserHandler(cfg, users, events)

	// The audit consumer owns its own connection and reconnect loop.
	go func() {
		if err := queue.StartCheckinConsumer(); err != nil {
			log.Printf("checkin-consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterCheckin(e, checkin, hub, rdb)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterManagement(e, eventH, guestH, userH, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
