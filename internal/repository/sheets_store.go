package repository

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"

	"b200/internal/domain"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore keeps reservation rows in one worksheet of a Google spreadsheet.
type SheetsStore struct {
	srv           *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewSheetsStore builds the client. Pass option.WithCredentialsFile for a service account.
func NewSheetsStore(ctx context.Context, spreadsheetID, worksheet string, opts ...option.ClientOption) (*SheetsStore, error) {
	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, storeError("sheets client", err)
	}
	return &SheetsStore{srv: srv, spreadsheetID: spreadsheetID, worksheet: worksheet}, nil
}

// EnsureWorksheet adds the worksheet when missing and rewrites the header row
// when it does not match domain.Columns.
func (s *SheetsStore) EnsureWorksheet(ctx context.Context) error {
	ss, err := s.srv.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return storeError("sheets open", err)
	}

	found := false
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.worksheet {
			found = true
			break
		}
	}

	if !found {
		log.Printf("sheets_store add_worksheet title=%s", s.worksheet)
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: s.worksheet},
				},
			}},
		}
		if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return storeError("sheets add worksheet", err)
		}
		return s.writeHeader(ctx)
	}

	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, s.worksheet+"!1:1").Context(ctx).Do()
	if err != nil {
		return storeError("sheets header", err)
	}
	var header []string
	if len(resp.Values) > 0 {
		header = cellsToStrings(resp.Values[0])
	}
	if !slices.Equal(header, domain.Columns) {
		return s.writeHeader(ctx)
	}
	return nil
}

func (s *SheetsStore) writeHeader(ctx context.Context) error {
	row := make([]interface{}, 0, len(domain.Columns))
	for _, c := range domain.Columns {
		row = append(row, c)
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	if _, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, s.worksheet+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return storeError("sheets header", err)
	}
	return nil
}

// LoadAll reads unformatted values so phones and timestamps come back as the
// strings that were written. Rows typed into the sheet by hand still render
// their date-time cells in the sheet's locale.
func (s *SheetsStore) LoadAll(ctx context.Context) ([]domain.Record, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, s.worksheet).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, storeError("sheets load", err)
	}
	if len(resp.Values) == 0 {
		return []domain.Record{}, nil
	}

	header := cellsToStrings(resp.Values[0])
	out := make([]domain.Record, 0, len(resp.Values)-1)
	for _, cells := range resp.Values[1:] {
		row := cellsToStrings(cells)
		if isBlankRow(row) {
			continue
		}
		out = append(out, recordFromRow(header, row))
	}
	return out, nil
}

func (s *SheetsStore) Append(ctx context.Context, rec domain.Record) error {
	return s.AppendAll(ctx, []domain.Record{rec})
}

// AppendAll sends every record in a single append request. Values go in RAW so
// the sheet does not turn phones into numbers or timestamps into dates.
func (s *SheetsStore) AppendAll(ctx context.Context, recs []domain.Record) error {
	if len(recs) == 0 {
		return nil
	}
	values := make([][]interface{}, 0, len(recs))
	for _, rec := range recs {
		values = append(values, recordCells(rec))
	}

	vr := &sheets.ValueRange{Values: values}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, s.worksheet+"!A1", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return storeError("sheets append", err)
	}
	return nil
}

// recordCells keeps tickets numeric so sheet formulas can sum the column.
func recordCells(rec domain.Record) []interface{} {
	cells := make([]interface{}, 0, len(domain.Columns))
	for i, v := range rec.Values() {
		if domain.Columns[i] == "tickets" {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				cells = append(cells, n)
				continue
			}
		}
		cells = append(cells, v)
	}
	return cells
}

func cellsToStrings(cells []interface{}) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		switch v := c.(type) {
		case nil:
			out = append(out, "")
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			out = append(out, strings.TrimSpace(fmt.Sprint(v)))
		}
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
