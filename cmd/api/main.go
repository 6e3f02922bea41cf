package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"b200/internal/config"
	"b200/internal/modules/admin"
	"b200/internal/modules/calendar"
	"b200/internal/modules/reservation"
	jwtsvc "b200/internal/pkg/jwt"
	"b200/internal/platform/broker"
	"b200/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	publisher, err := broker.New(broker.Options{
		Kind:         cfg.Broker,
		AMQPURL:      cfg.AMQPURL,
		Exchange:     broker.DefaultExchange,
		KafkaBrokers: cfg.KafkaBrokers,
		KafkaTopic:   cfg.KafkaTopic,
	})
	if err != nil {
		log.Fatalf("broker: %v", err)
	}
	defer publisher.Close()

	hub := calendar.NewHub()
	defer hub.Close()

	reservationService := reservation.NewService(store, reservation.SettingsFromConfig(cfg), publisher)
	reservationService.SetNotifier(hub)

	j := jwtsvc.New(cfg.JWTSecret, cfg.AdminTokenTTL)
	adminService, err := admin.NewService(reservationService, j, cfg.AdminPassword, cfg.AdminTokenTTL)
	if err != nil {
		log.Fatalf("admin: %v", err)
	}
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD is empty, admin login disabled")
	}

	r := newRouter(routerDeps{
		cfg:          cfg,
		jwt:          j,
		hub:          hub,
		reservations: reservationService,
		calendar:     calendar.NewService(reservationService),
		admin:        adminService,
	})

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
