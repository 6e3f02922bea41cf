package repository

import (
	"context"
	"fmt"

	"b200/internal/config"
	"b200/internal/database"
	"b200/internal/domain"

	"google.golang.org/api/option"
)

// Store is the row store contract every backend here satisfies.
type Store interface {
	LoadAll(ctx context.Context) ([]domain.Record, error)
	Append(ctx context.Context, rec domain.Record) error
	AppendAll(ctx context.Context, recs []domain.Record) error
}

var (
	_ Store = (*ReservationRowRepository)(nil)
	_ Store = (*CSVStore)(nil)
	_ Store = (*SheetsStore)(nil)
)

// Open connects the backend named by cfg.StoreBackend and makes sure its
// table, file or worksheet has the expected columns.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendDB:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		repo := NewReservationRowRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	case config.BackendCSV:
		store := NewCSVStore(cfg.CSVPath)
		if err := store.EnsureHeader(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendSheets:
		store, err := NewSheetsStore(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsWorksheet,
			option.WithCredentialsFile(cfg.SheetsCredentialsFile))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureWorksheet(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
