package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"
	"sync"

	"b200/internal/domain"
)

// CSVStore keeps reservation rows in a flat CSV file with a header row.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// EnsureHeader creates the file when missing and rewrites it when the header
// does not match domain.Columns. Existing rows are re-keyed by their old header.
func (s *CSVStore) EnsureHeader(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, rows, err := s.readAll()
	if err != nil {
		return storeError("csv header", err)
	}
	if slices.Equal(header, domain.Columns) {
		return nil
	}

	if header != nil {
		log.Printf("csv_store header_repair path=%s old=%q", s.path, strings.Join(header, ","))
	}
	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(header, row))
	}
	if err := s.rewrite(records); err != nil {
		return storeError("csv header", err)
	}
	return nil
}

func (s *CSVStore) LoadAll(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeError("csv load", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	header, rows, err := s.readAll()
	if err != nil {
		return nil, storeError("csv load", err)
	}
	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, recordFromRow(header, row))
	}
	return out, nil
}

func (s *CSVStore) Append(ctx context.Context, rec domain.Record) error {
	return s.AppendAll(ctx, []domain.Record{rec})
}

// AppendAll writes all records with a single write and sync.
func (s *CSVStore) AppendAll(ctx context.Context, recs []domain.Record) error {
	if err := ctx.Err(); err != nil {
		return storeError("csv append", err)
	}
	if len(recs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return storeError("csv append", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return storeError("csv append", err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if info.Size() == 0 {
		_ = w.Write(domain.Columns)
	}
	for _, rec := range recs {
		_ = w.Write(rec.Values())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return storeError("csv append", err)
	}

	if _, err := f.WriteString(sb.String()); err != nil {
		return storeError("csv append", err)
	}
	if err := f.Sync(); err != nil {
		return storeError("csv append", err)
	}
	return nil
}

func (s *CSVStore) readAll() ([]string, [][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	return header, rows, nil
}

func (s *CSVStore) rewrite(recs []domain.Record) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	_ = w.Write(domain.Columns)
	for _, rec := range recs {
		_ = w.Write(rec.Values())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func recordFromRow(header, row []string) domain.Record {
	m := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(row) {
			m[name] = row[i]
		}
	}
	return domain.RecordFromMap(m)
}
