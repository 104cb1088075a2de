package collector

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/golstats/match-predictor/internal/models"
)

// PgCopier is the subset of *pgxpool.Pool used by PostgresSink.
type PgCopier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

const matchStatsSchema = `
CREATE TABLE IF NOT EXISTS match_stats (
	game_id     INTEGER NOT NULL,
	team        TEXT NOT NULL,
	result      TEXT NOT NULL,
	game_time   TEXT NOT NULL,
	side        TEXT NOT NULL,
	patch       TEXT NOT NULL,
	tournament  TEXT NOT NULL,
	game_date   TEXT NOT NULL,
	region      TEXT NOT NULL,
	champion    TEXT NOT NULL,
	player      TEXT NOT NULL,
	role        TEXT NOT NULL,
	stats       JSONB NOT NULL,
	scraped_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (game_id, side, champion)
)`

var matchStatsColumns = []string{
	"game_id", "team", "result", "game_time", "side", "patch", "tournament",
	"game_date", "region", "champion", "player", "role", "stats",
}

// PostgresSink mirrors match records into the match_stats table.
type PostgresSink struct {
	db PgCopier
}

func NewPostgresSink(db PgCopier) *PostgresSink {
	return &PostgresSink{db: db}
}

// EnsureSchema creates the match_stats table.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, matchStatsSchema); err != nil {
		return fmt.Errorf("create match_stats: %w", err)
	}
	return nil
}

// Write implements RecordSink using COPY.
func (s *PostgresSink) Write(ctx context.Context, records []models.MatchRecord) error {
	if len(records) == 0 {
		return nil
	}
	n, err := s.db.CopyFrom(ctx, pgx.Identifier{"match_stats"}, matchStatsColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := &records[i]
			return []any{
				r.GameID, r.Team, r.Result, r.GameTime, string(r.Side), r.Patch, r.Tournament,
				r.Date, r.Region, r.Champion, r.Player(), r.Role(), r.Stats,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy match_stats: %w", err)
	}
	if int(n) != len(records) {
		return fmt.Errorf("copy match_stats: wrote %d of %d rows", n, len(records))
	}
	return nil
}
