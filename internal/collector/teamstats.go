package collector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/golstats/match-predictor/internal/golgg"
	"github.com/golstats/match-predictor/internal/models"
)

// TeamStatsScraper reads the season team list.
type TeamStatsScraper struct {
	fetcher Fetcher
	baseURL string
	season  string
	logger  *zap.SugaredLogger
}

func NewTeamStatsScraper(fetcher Fetcher, baseURL, season string, logger *zap.SugaredLogger) *TeamStatsScraper {
	return &TeamStatsScraper{fetcher: fetcher, baseURL: baseURL, season: season, logger: logger}
}

// Scrape returns one row per team. The region filter is applied when the page
// offers it. Rows with the wrong number of cells are dropped.
func (t *TeamStatsScraper) Scrape(ctx context.Context) ([]models.TeamSeasonStats, error) {
	listURL := golgg.TeamListURL(t.baseURL, t.season)
	doc, err := t.fetcher.Fetch(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("team list: %w", err)
	}

	if filter, ok := golgg.TopLeaguesFilter(doc); ok {
		if doc, err = t.fetcher.Fetch(ctx, golgg.WithQuery(listURL, filter)); err != nil {
			return nil, fmt.Errorf("filtered team list: %w", err)
		}
	}

	rows, skipped := golgg.ParseTeamStats(doc)
	if skipped > 0 {
		t.logger.Warnw("Skipped team rows with unexpected cell count",
			"skipped", skipped,
			"expected", len(models.TeamStatsColumns),
		)
	}
	t.logger.Infow("Scraped team stats", "season", t.season, "teams", len(rows))
	return rows, nil
}
