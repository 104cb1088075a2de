package collector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/golstats/match-predictor/internal/golgg"
)

// TournamentLister lists the tournaments of the major regions.
type TournamentLister struct {
	fetcher Fetcher
	baseURL string
	logger  *zap.SugaredLogger
}

func NewTournamentLister(fetcher Fetcher, baseURL string, logger *zap.SugaredLogger) *TournamentLister {
	return &TournamentLister{fetcher: fetcher, baseURL: baseURL, logger: logger}
}

// TournamentLinks returns the match list URL of every tournament shown with
// the "major regions" filter applied. A page without the filter control or
// without the tournament table yields no links.
func (l *TournamentLister) TournamentLinks(ctx context.Context) ([]string, error) {
	listURL := golgg.TournamentListURL(l.baseURL)
	doc, err := l.fetcher.Fetch(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("tournament list: %w", err)
	}

	filter, ok := golgg.TopLeaguesFilter(doc)
	if !ok {
		l.logger.Warnw("Tournament list has no region filter", "url", listURL)
		return nil, nil
	}

	filtered, err := l.fetcher.Fetch(ctx, golgg.WithQuery(listURL, filter))
	if err != nil {
		return nil, fmt.Errorf("filtered tournament list: %w", err)
	}

	links := golgg.ParseTournamentLinks(filtered, l.baseURL)
	l.logger.Infow("Listed tournaments", "count", len(links))
	return links, nil
}

// GameLinkResolver turns tournament pages into game ids.
type GameLinkResolver struct {
	fetcher Fetcher
	baseURL string
	logger  *zap.SugaredLogger
}

func NewGameLinkResolver(fetcher Fetcher, baseURL string, logger *zap.SugaredLogger) *GameLinkResolver {
	return &GameLinkResolver{fetcher: fetcher, baseURL: baseURL, logger: logger}
}

// GameLinks returns the absolute series summary link of every game listed on
// a tournament match list.
func (r *GameLinkResolver) GameLinks(ctx context.Context, tournamentURL string) ([]string, error) {
	doc, err := r.fetcher.Fetch(ctx, tournamentURL)
	if err != nil {
		return nil, fmt.Errorf("tournament %s: %w", tournamentURL, err)
	}
	hrefs := golgg.ParseGameLinks(doc)
	links := make([]string, len(hrefs))
	for i, h := range hrefs {
		links[i] = golgg.AbsoluteURL(r.baseURL, h)
	}
	return links, nil
}

// GameIDs collects the id of every link plus the ids of the other games of its
// series. The result is sorted ascending without duplicates. Links without an
// id are skipped.
func (r *GameLinkResolver) GameIDs(ctx context.Context, links []string) ([]int, error) {
	var ids []int
	for _, link := range links {
		id, ok := golgg.GameIDFromURL(link)
		if !ok {
			r.logger.Warnw("Game link without id", "url", link)
			continue
		}
		ids = append(ids, id)

		doc, err := r.fetcher.Fetch(ctx, link)
		if err != nil {
			return nil, fmt.Errorf("series page %s: %w", link, err)
		}
		ids = append(ids, golgg.ParseSeriesGameIDs(doc)...)
	}
	return golgg.SortedUnique(ids), nil
}
