package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort          = "8080"
	defaultStoreBackend  = "db"
	defaultDatabaseURL   = "b200.db"
	defaultCSVPath       = "reservations.csv"
	defaultWorksheet     = "reservations"
	defaultOpenDate      = "2025-10-01"
	defaultCloseDate     = "2025-10-29"
	defaultLowMax        = "22"
	defaultMidMax        = "32"
	defaultZeroIsAmple   = "true"
	defaultSubmitAtomic  = "false"
	defaultTimezone      = "Asia/Seoul"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultAdminTokenTTL = "12h"
	defaultBroker        = "log"
	defaultKafkaTopic    = "reservations"
)

const (
	BackendDB     = "db"
	BackendCSV    = "csv"
	BackendSheets = "sheets"
)

type Config struct {
	AppEnv string
	Port   string

	StoreBackend          string
	DatabaseURL           string
	CSVPath               string
	SheetsSpreadsheetID   string
	SheetsCredentialsFile string
	SheetsWorksheet       string

	Booking    BookingWindow
	Thresholds Thresholds
	// SubmitAtomic sends a multi-day submission as one batch when the store supports it.
	SubmitAtomic bool
	Location     *time.Location

	AdminPassword string
	JWTSecret     string
	AdminTokenTTL time.Duration

	CORSAllowedOrigins []string

	Broker       string
	AMQPURL      string
	KafkaBrokers []string
	KafkaTopic   string
}

// BookingWindow bounds the dates a user may pick, inclusive on both ends.
type BookingWindow struct {
	OpenDate  time.Time
	CloseDate time.Time
}

// Contains reports whether day falls inside the window. Only the calendar date is compared.
func (w BookingWindow) Contains(day time.Time) bool {
	d := truncateDay(day)
	return !d.Before(truncateDay(w.OpenDate)) && !d.After(truncateDay(w.CloseDate))
}

type Thresholds struct {
	LowMax      int
	MidMax      int
	ZeroIsAmple bool
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)
	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", defaultStoreBackend)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.CSVPath = strings.TrimSpace(getEnv("CSV_PATH", defaultCSVPath))
	cfg.SheetsSpreadsheetID = strings.TrimSpace(os.Getenv("SHEETS_SPREADSHEET_ID"))
	cfg.SheetsCredentialsFile = strings.TrimSpace(os.Getenv("SHEETS_CREDENTIALS_FILE"))
	cfg.SheetsWorksheet = strings.TrimSpace(getEnv("SHEETS_WORKSHEET", defaultWorksheet))

	var err error
	cfg.Location, err = time.LoadLocation(strings.TrimSpace(getEnv("TIMEZONE", defaultTimezone)))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg.Booking.OpenDate, err = parseDateEnv("OPEN_DATE", defaultOpenDate, cfg.Location)
	if err != nil {
		return nil, err
	}
	cfg.Booking.CloseDate, err = parseDateEnv("CLOSE_DATE", defaultCloseDate, cfg.Location)
	if err != nil {
		return nil, err
	}

	cfg.Thresholds.LowMax, err = parseIntEnv("LOW_MAX", defaultLowMax)
	if err != nil {
		return nil, err
	}
	cfg.Thresholds.MidMax, err = parseIntEnv("MID_MAX", defaultMidMax)
	if err != nil {
		return nil, err
	}
	cfg.Thresholds.ZeroIsAmple = parseBoolEnv("ZERO_IS_AMPLE", defaultZeroIsAmple)
	cfg.SubmitAtomic = parseBoolEnv("SUBMIT_ATOMIC", defaultSubmitAtomic)

	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.AdminTokenTTL, err = parseDurationEnv("ADMIN_TOKEN_TTL", defaultAdminTokenTTL)
	if err != nil {
		return nil, err
	}

	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	cfg.Broker = strings.ToLower(strings.TrimSpace(getEnv("BROKER", defaultBroker)))
	cfg.AMQPURL = strings.TrimSpace(os.Getenv("AMQP_URL"))
	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.KafkaTopic = strings.TrimSpace(getEnv("KAFKA_TOPIC", defaultKafkaTopic))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s store=%s window=%s..%s thresholds=%d/%d zero_is_ample=%t broker=%s",
		cfg.AppEnv, cfg.StoreBackend,
		cfg.Booking.OpenDate.Format("2006-01-02"), cfg.Booking.CloseDate.Format("2006-01-02"),
		cfg.Thresholds.LowMax, cfg.Thresholds.MidMax, cfg.Thresholds.ZeroIsAmple, cfg.Broker)

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.StoreBackend {
	case BackendDB:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must not be empty for STORE_BACKEND=db")
		}
	case BackendCSV:
		if cfg.CSVPath == "" {
			return fmt.Errorf("CSV_PATH must not be empty for STORE_BACKEND=csv")
		}
	case BackendSheets:
		if cfg.SheetsSpreadsheetID == "" || cfg.SheetsCredentialsFile == "" {
			return fmt.Errorf("SHEETS_SPREADSHEET_ID and SHEETS_CREDENTIALS_FILE are required for STORE_BACKEND=sheets")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of: db, csv, sheets")
	}

	if cfg.Booking.CloseDate.Before(cfg.Booking.OpenDate) {
		return fmt.Errorf("CLOSE_DATE must not be before OPEN_DATE")
	}
	if cfg.Thresholds.LowMax < 0 {
		return fmt.Errorf("LOW_MAX must be >= 0")
	}
	if cfg.Thresholds.MidMax < cfg.Thresholds.LowMax {
		return fmt.Errorf("MID_MAX must be >= LOW_MAX")
	}
	if cfg.AdminTokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be > 0")
	}

	switch cfg.Broker {
	case "log", "none":
	case "rabbitmq":
		if cfg.AMQPURL == "" {
			return fmt.Errorf("AMQP_URL is required for BROKER=rabbitmq")
		}
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 || cfg.KafkaTopic == "" {
			return fmt.Errorf("KAFKA_BROKERS and KAFKA_TOPIC are required for BROKER=kafka")
		}
	default:
		return fmt.Errorf("BROKER must be one of: log, none, rabbitmq, kafka")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if strings.TrimSpace(cfg.AdminPassword) == "" {
			return fmt.Errorf("in prod/release ADMIN_PASSWORD must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDateEnv(name, fallback string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
