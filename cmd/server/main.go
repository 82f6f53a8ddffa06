package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hospitality-suite/internal/config"
	"github.com/iliyamo/hospitality-suite/internal/database"
	"github.com/iliyamo/hospitality-suite/internal/handler"
	"github.com/iliyamo/hospitality-suite/internal/queue"
	"github.com/iliyamo/hospitality-suite/internal/repository"
	"github.com/iliyamo/hospitality-suite/internal/router"
	"github.com/iliyamo/hospitality-suite/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()

	publisher := queue.NewPublisher(cfg.AMQPURL)
	go queue.StartOrderConsumer(cfg.AMQPURL)

	store := repository.NewSQLStore(db)
	orders := repository.NewOrderRepo(db)
	bookings := repository.NewBookingRepo(db)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, repository.NewUserRepo(db)),
		Tables:    handler.NewTableHandler(repository.NewTableRepo(db)),
		Venues:    handler.NewVenueHandler(repository.NewVenueRepo(db)),
		Menu:      handler.NewMenuItemHandler(repository.NewMenuItemRepo(db)),
		Orders:    handler.NewOrderHandler(service.NewOrderService(store, publisher), orders),
		Bookings:  handler.NewBookingHandler(service.NewBookingService(store), bookings),
		Guests:    handler.NewGuestHandler(repository.NewGuestRepo(db)),
		Inventory: handler.NewInventoryHandler(repository.NewInventoryRepo(db)),
		Employees: handler.NewEmployeeHandler(repository.NewEmployeeRepo(db)),
		Rooms:     handler.NewRoomHandler(repository.NewRoomRepo(db)),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
