package golgg

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/golstats/match-predictor/internal/models"
)

const (
	listTableSelector  = "table.table_list.footable.toggle-square-filled"
	topLeaguesSelector = "input#leagues_top"
	gameMenuSelector   = "div#gameMenuToggler a.nav-link"
)

// TopLeaguesFilter reads the "major regions only" checkbox of a list page and
// returns the form values that submitting it sends. ok is false when the page
// has no such control.
func TopLeaguesFilter(doc *goquery.Document) (url.Values, bool) {
	input := doc.Find(topLeaguesSelector).First()
	if input.Length() == 0 {
		return nil, false
	}
	name, _ := input.Attr("name")
	if name == "" {
		name, _ = input.Attr("id")
	}
	value, ok := input.Attr("value")
	if !ok || value == "" {
		value = "on"
	}
	return url.Values{name: {value}}, true
}

// ParseTournamentLinks returns the match list URL of every tournament in the
// list table. Stats links are rewritten to their match list page.
func ParseTournamentLinks(doc *goquery.Document, base string) []string {
	table := doc.Find(listTableSelector).First()
	if table.Length() == 0 {
		return nil
	}
	var links []string
	table.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		href = strings.Replace(href, "tournament-stats", "tournament-matchlist", 1)
		links = append(links, AbsoluteURL(base, href))
	})
	return links
}

// ParseGameLinks returns the game links of a tournament match list. Game page
// links are rewritten to the series summary page, which carries the menu of
// every game in the series.
func ParseGameLinks(doc *goquery.Document) []string {
	table := doc.Find(listTableSelector).First()
	if table.Length() == 0 {
		return nil
	}
	var links []string
	table.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		switch {
		case strings.HasSuffix(href, "/page-game/"):
			links = append(links, strings.Replace(href, "/page-game/", "/page-summary/", 1))
		case strings.HasSuffix(href, "/page-summary/"):
			links = append(links, href)
		}
	})
	return links
}

// ParseSeriesGameIDs returns the ids of every game in the series menu of a
// summary page, in menu order. Pages of single games have no menu.
func ParseSeriesGameIDs(doc *goquery.Document) []int {
	var ids []int
	doc.Find(gameMenuSelector).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := seriesGameIDPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		if id, ok := GameIDFromURL(m[0]); ok {
			ids = append(ids, id)
		}
	})
	return ids
}

// ParseTeamStats reads the season team list. Rows whose cell count does not
// match models.TeamStatsColumns are returned in skipped.
func ParseTeamStats(doc *goquery.Document) (rows []models.TeamSeasonStats, skipped int) {
	table := doc.Find("table.table_list").First()
	if table.Length() == 0 {
		return nil, 0
	}
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		values := make([]string, 0, cells.Length())
		cells.Each(func(_ int, td *goquery.Selection) {
			values = append(values, strings.TrimSpace(td.Text()))
		})
		if len(values) != len(models.TeamStatsColumns) {
			skipped++
			return
		}
		rows = append(rows, models.TeamSeasonStats{Values: values})
	})
	return rows, skipped
}

// SortedUnique sorts ids ascending and removes duplicates in place.
func SortedUnique(ids []int) []int {
	if len(ids) == 0 {
		return ids
	}
	sort.Ints(ids)
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
