package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"b200/internal/domain"

	"gorm.io/gorm"
)

// ReservationRowRepository keeps reservation rows in a plain SQL table.
// Row order is insertion order (auto-increment id).
type ReservationRowRepository struct {
	db *gorm.DB
}

func NewReservationRowRepository(db *gorm.DB) *ReservationRowRepository {
	return &ReservationRowRepository{db: db}
}

type reservationRowModel struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string    `gorm:"column:name"`
	Email           string    `gorm:"column:email"`
	Phone           string    `gorm:"column:phone;index"`
	Date            string    `gorm:"column:date;index"`
	Tickets         int       `gorm:"column:tickets"`
	StartTime       string    `gorm:"column:start_time"`
	EndTime         string    `gorm:"column:end_time"`
	ReservationTime string    `gorm:"column:reservation_time"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (reservationRowModel) TableName() string { return "reservations" }

func toRecord(m reservationRowModel) domain.Record {
	return domain.Record{
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		Date:            m.Date,
		Tickets:         strconv.Itoa(m.Tickets),
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		ReservationTime: m.ReservationTime,
	}
}

func toRowModel(r domain.Record) reservationRowModel {
	tickets, _ := strconv.Atoi(strings.TrimSpace(r.Tickets))
	return reservationRowModel{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Date:            r.Date,
		Tickets:         tickets,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		ReservationTime: r.ReservationTime,
	}
}

// Migrate creates or updates the reservations table.
func (r *ReservationRowRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&reservationRowModel{}); err != nil {
		return storeError("migrate", err)
	}
	return nil
}

func (r *ReservationRowRepository) LoadAll(ctx context.Context) ([]domain.Record, error) {
	var rows []reservationRowModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, storeError("load", err)
	}

	out := make([]domain.Record, 0, len(rows))
	for _, m := range rows {
		out = append(out, toRecord(m))
	}
	return out, nil
}

func (r *ReservationRowRepository) Append(ctx context.Context, rec domain.Record) error {
	m := toRowModel(rec)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return storeError("append", err)
	}
	return nil
}

// AppendAll inserts every record in one transaction.
func (r *ReservationRowRepository) AppendAll(ctx context.Context, recs []domain.Record) error {
	if len(recs) == 0 {
		return nil
	}
	models := make([]reservationRowModel, 0, len(recs))
	for _, rec := range recs {
		models = append(models, toRowModel(rec))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&models).Error
	})
	if err != nil {
		return storeError("append batch", err)
	}
	return nil
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
}
