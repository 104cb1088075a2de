// Package golgg holds everything that depends on the markup of the gol.gg
// stats site: page URLs, CSS selectors and the table layouts they parse.
package golgg

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	gameIDPattern       = regexp.MustCompile(`/game/stats/(\d+)`)
	seriesGameIDPattern = regexp.MustCompile(`/game/stats/(\d+)/page-game`)
)

// TournamentListURL is the page listing every tournament.
func TournamentListURL(base string) string {
	return base + "/tournament/list/"
}

// TeamListURL is the season team stats list.
func TeamListURL(base, season string) string {
	return fmt.Sprintf("%s/teams/list/season-%s/split-ALL/tournament-ALL/", base, season)
}

// GamePageURL is the team-level summary of one game.
func GamePageURL(base string, gameID int) string {
	return fmt.Sprintf("%s/game/stats/%d/page-game/", base, gameID)
}

// FullStatsURL is the per-player statistics table of one game.
func FullStatsURL(base string, gameID int) string {
	return fmt.Sprintf("%s/game/stats/%d/page-fullstats/", base, gameID)
}

// AbsoluteURL turns a site link into an absolute URL. Links on the site are
// written relative to the site root with leading "../" segments, so leading
// dots are dropped and the path is anchored at base.
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return href
	}
	href = strings.TrimLeft(href, ".")
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return base + href
}

// GameIDFromURL extracts the numeric game id of a game stats link.
func GameIDFromURL(link string) (int, bool) {
	m := gameIDPattern.FindStringSubmatch(link)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// WithQuery appends form values to a page URL.
func WithQuery(pageURL string, values url.Values) string {
	if len(values) == 0 {
		return pageURL
	}
	sep := "?"
	if strings.Contains(pageURL, "?") {
		sep = "&"
	}
	return pageURL + sep + values.Encode()
}
