package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/golstats/match-predictor/internal/golgg"
	"github.com/golstats/match-predictor/internal/models"
)

var (
	gamesScraped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golstats_games_scraped_total",
		Help: "Total number of games scraped into match records",
	})

	gamesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golstats_games_skipped_total",
		Help: "Total number of games skipped, by reason",
	}, []string{"reason"})

	recordsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golstats_records_saved_total",
		Help: "Total number of match records written to every sink",
	})
)

// StatsScraper scrapes games into an in-memory buffer that Save drains into
// the configured sinks.
type StatsScraper struct {
	fetcher Fetcher
	baseURL string
	ledger  *IDLedger
	sinks   []RecordSink
	logger  *zap.SugaredLogger

	buffer []models.MatchRecord
	// written[i] counts the buffered records sinks[i] already holds.
	written []int
}

// NewStatsScraper creates a scraper. sinks are written in order on Save.
func NewStatsScraper(fetcher Fetcher, baseURL string, ledger *IDLedger, logger *zap.SugaredLogger, sinks ...RecordSink) *StatsScraper {
	return &StatsScraper{
		fetcher: fetcher,
		baseURL: baseURL,
		ledger:  ledger,
		sinks:   sinks,
		logger:  logger,
		written: make([]int, len(sinks)),
	}
}

// ScrapeGame buffers the ten records of one game and records its id in the
// ledger. It returns false without touching the network when the id is
// already in the ledger, and false when the page has no usable stats table.
func (s *StatsScraper) ScrapeGame(ctx context.Context, gameID int) (bool, error) {
	if s.ledger.Has(gameID) {
		s.logger.Debugw("Game already scraped", "gameID", gameID)
		return false, nil
	}

	gameDoc, err := s.fetcher.Fetch(ctx, golgg.GamePageURL(s.baseURL, gameID))
	if err != nil {
		return false, fmt.Errorf("game %d page: %w", gameID, err)
	}
	summary := golgg.ParseGameSummary(gameDoc)

	statsDoc, err := s.fetcher.Fetch(ctx, golgg.FullStatsURL(s.baseURL, gameID))
	if err != nil {
		return false, fmt.Errorf("game %d full stats: %w", gameID, err)
	}

	records, found, err := golgg.ParseFullStats(statsDoc, gameID, summary)
	switch {
	case errors.Is(err, golgg.ErrMalformedTable):
		s.logger.Warnw("Skipping game with malformed stats table", "gameID", gameID, "error", err)
		gamesSkipped.WithLabelValues("malformed").Inc()
		return false, nil
	case err != nil:
		return false, err
	case !found:
		s.logger.Warnw("Skipping game without stats table", "gameID", gameID)
		gamesSkipped.WithLabelValues("no_table").Inc()
		return false, nil
	}

	if err := s.ledger.Add(gameID); err != nil {
		return false, err
	}
	s.buffer = append(s.buffer, records...)

	gamesScraped.Inc()
	s.logger.Infow("Scraped game",
		"gameID", gameID,
		"blueTeam", summary.BlueTeam,
		"redTeam", summary.RedTeam,
		"patch", summary.Patch,
	)
	return true, nil
}

// Buffered returns the number of records waiting for Save.
func (s *StatsScraper) Buffered() int { return len(s.buffer) }

// Save writes the buffer to every sink and clears it. When a sink fails the
// buffer is kept, and the next Save only hands each sink the records it has
// not yet accepted.
func (s *StatsScraper) Save(ctx context.Context) error {
	if len(s.buffer) == 0 {
		s.logger.Infow("No new records to save")
		return nil
	}

	var errs []error
	for i, sink := range s.sinks {
		pending := s.buffer[s.written[i]:]
		if len(pending) == 0 {
			continue
		}
		if err := sink.Write(ctx, pending); err != nil {
			s.logger.Errorw("Sink write failed", "sink", i, "records", len(pending), "error", err)
			errs = append(errs, err)
			continue
		}
		s.written[i] = len(s.buffer)
	}
	if len(errs) > 0 {
		return fmt.Errorf("save %d records: %w", len(s.buffer), errors.Join(errs...))
	}

	recordsSaved.Add(float64(len(s.buffer)))
	s.logger.Infow("Saved records", "records", len(s.buffer), "sinks", len(s.sinks))
	s.buffer = s.buffer[:0]
	clear(s.written)
	return nil
}
