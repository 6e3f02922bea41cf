package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"b200/internal/config"
	"b200/internal/modules/reservation"
	"b200/internal/platform/broker"
	"b200/internal/repository"
)

var (
	names  = []string{"Kim Minji", "Lee Jiwoo", "Park Seoyeon", "Choi Hyun", "Jung Yuna", "Kang Doyun"}
	phones = []string{"010-1111-2222", "010-2222-3333", "010-3333-4444", "010-4444-5555", "010-5555-6666", "010-6666-7777"}
)

func main() {
	count := flag.Int("n", 20, "number of bookings to create")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	svc := reservation.NewService(store, reservation.SettingsFromConfig(cfg), broker.NopPublisher{})
	rng := rand.New(rand.NewSource(*seed))

	created := 0
	for i := 0; i < *count; i++ {
		req := demoRequest(rng, cfg.Booking, i)
		_, err := svc.Submit(ctx, req)
		if err != nil {
			var verr *reservation.ValidationError
			if errors.As(err, &verr) {
				log.Printf("seed_skip index=%d error=%q", i, err.Error())
				continue
			}
			log.Fatalf("seed failed at %d: %v", i, err)
		}
		created++
	}

	log.Printf("seed completed: bookings=%d requested=%d", created, *count)
}

func demoRequest(rng *rand.Rand, window config.BookingWindow, i int) reservation.SubmitRequest {
	days := int(window.CloseDate.Sub(window.OpenDate).Hours()/24) + 1
	start := window.OpenDate.AddDate(0, 0, rng.Intn(days))
	span := rng.Intn(3)
	end := start.AddDate(0, 0, span)
	if end.After(window.CloseDate) {
		end = window.CloseDate
	}

	who := i % len(names)
	req := reservation.SubmitRequest{
		Name:             names[who],
		Email:            fmt.Sprintf("guest%d@example.com", i+1),
		Phone:            phones[who],
		StartDate:        start.Format("2006-01-02"),
		EndDate:          end.Format("2006-01-02"),
		Tickets:          1 + rng.Intn(8),
		DepositConfirmed: true,
	}
	if rng.Intn(2) == 0 {
		req.StartTime, req.EndTime = "10:00", "17:00"
	}
	return req
}
