package collector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/golstats/match-predictor/internal/golgg"
)

// RunOptions narrows a collection run.
type RunOptions struct {
	// TournamentURL scrapes a single tournament match list instead of listing.
	TournamentURL string
	// Limit caps the number of tournaments. Zero means no limit.
	Limit int
}

// RunStats summarizes a collection run.
type RunStats struct {
	Tournaments int
	GameIDs     int
	Scraped     int
	Skipped     int
}

// Collector drives a full collection run.
type Collector struct {
	lister    *TournamentLister
	resolver  *GameLinkResolver
	scraper   *StatsScraper
	batchSize int
	logger    *zap.SugaredLogger
}

func NewCollector(lister *TournamentLister, resolver *GameLinkResolver, scraper *StatsScraper, batchSize int, logger *zap.SugaredLogger) *Collector {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Collector{
		lister:    lister,
		resolver:  resolver,
		scraper:   scraper,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run lists tournaments, resolves their game ids and scrapes every id not yet
// in the ledger. Records are saved every batchSize games and at the end. On
// error or cancellation the buffer is saved before returning.
func (c *Collector) Run(ctx context.Context, opts RunOptions) (stats RunStats, err error) {
	defer func() {
		if saveErr := c.scraper.Save(context.WithoutCancel(ctx)); saveErr != nil {
			c.logger.Errorw("Final save failed", "error", saveErr)
			if err == nil {
				err = saveErr
			}
		}
	}()

	tournaments, err := c.tournaments(ctx, opts)
	if err != nil {
		return stats, err
	}
	stats.Tournaments = len(tournaments)

	var ids []int
	for _, t := range tournaments {
		links, err := c.resolver.GameLinks(ctx, t)
		if err != nil {
			return stats, err
		}
		tournamentIDs, err := c.resolver.GameIDs(ctx, links)
		if err != nil {
			return stats, err
		}
		c.logger.Infow("Resolved tournament", "url", t, "links", len(links), "games", len(tournamentIDs))
		ids = append(ids, tournamentIDs...)
	}
	ids = golgg.SortedUnique(ids)
	stats.GameIDs = len(ids)

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			c.logger.Warnw("Collection interrupted", "processed", i, "total", len(ids))
			return stats, err
		}

		scraped, err := c.scraper.ScrapeGame(ctx, id)
		if err != nil {
			return stats, fmt.Errorf("scrape game %d: %w", id, err)
		}
		if scraped {
			stats.Scraped++
		} else {
			stats.Skipped++
		}

		if (i+1)%c.batchSize == 0 {
			if err := c.scraper.Save(ctx); err != nil {
				return stats, err
			}
		}
	}

	c.logger.Infow("Collection finished",
		"tournaments", stats.Tournaments,
		"games", stats.GameIDs,
		"scraped", stats.Scraped,
		"skipped", stats.Skipped,
	)
	return stats, nil
}

func (c *Collector) tournaments(ctx context.Context, opts RunOptions) ([]string, error) {
	var links []string
	if opts.TournamentURL != "" {
		links = []string{opts.TournamentURL}
	} else {
		var err error
		if links, err = c.lister.TournamentLinks(ctx); err != nil {
			return nil, err
		}
	}
	if opts.Limit > 0 && len(links) > opts.Limit {
		links = links[:opts.Limit]
	}
	return links, nil
}
