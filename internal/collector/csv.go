package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/golstats/match-predictor/internal/models"
)

// RecordSink persists scraped match records.
type RecordSink interface {
	Write(ctx context.Context, records []models.MatchRecord) error
}

// CsvAppender appends match records to the dataset CSV. Existing rows are
// never rewritten.
type CsvAppender struct {
	path    string
	columns []string
}

// NewCsvAppender writes rows in columns order. A nil columns uses
// models.MatchColumns.
func NewCsvAppender(path string, columns []string) *CsvAppender {
	if columns == nil {
		columns = models.MatchColumns
	}
	return &CsvAppender{path: path, columns: columns}
}

// EnsureHeader writes the header row if the file does not exist yet.
func (a *CsvAppender) EnsureHeader() error {
	if _, err := os.Stat(a.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", a.path, err)
	}
	return a.writeRows(os.O_CREATE|os.O_WRONLY|os.O_EXCL, [][]string{a.columns})
}

// Append writes one row per record.
func (a *CsvAppender) Append(records []models.MatchRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([][]string, len(records))
	for i := range records {
		rows[i] = records[i].Row(a.columns)
	}
	return a.writeRows(os.O_APPEND|os.O_CREATE|os.O_WRONLY, rows)
}

// Write implements RecordSink.
func (a *CsvAppender) Write(_ context.Context, records []models.MatchRecord) error {
	if err := a.EnsureHeader(); err != nil {
		return err
	}
	return a.Append(records)
}

func (a *CsvAppender) writeRows(flag int, rows [][]string) error {
	f, err := os.OpenFile(a.path, flag, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", a.path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", a.path, err)
	}
	return f.Close()
}

// WriteTeamStatsCSV overwrites path with the team stats header and rows.
func WriteTeamStatsCSV(path string, rows []models.TeamSeasonStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, models.TeamStatsColumns)
	for _, r := range rows {
		records = append(records, r.Values)
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
