package golgg

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/golstats/match-predictor/internal/models"
)

// PlayersPerGame is the number of champion columns in a full stats table.
const PlayersPerGame = 10

// ErrMalformedTable is returned when a full stats table does not have one
// champion column per player.
var ErrMalformedTable = errors.New("malformed stats table")

var (
	datePattern   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	regionPattern = regexp.MustCompile(`\(([^)]+)\)`)
)

// championAliases fixes portrait alt texts that the site abbreviates.
var championAliases = map[string]string{
	"K":   "Ksante",
	"Cho": "Chogath",
	"Kai": "Kaisa",
	"Rek": "Reksai",
}

// ChampionName maps a portrait alt text to the stored champion name.
func ChampionName(alt string) string {
	if name, ok := championAliases[alt]; ok {
		return name
	}
	return alt
}

// SideForColumn attributes a champion column of the full stats table to a
// side. The site lists the five blue side players first.
func SideForColumn(i int) models.Side {
	if i < PlayersPerGame/2 {
		return models.SideBlue
	}
	return models.SideRed
}

// ParseGameSummary reads the team-level fields of a game page. Any element
// missing from the page leaves its field empty.
func ParseGameSummary(doc *goquery.Document) models.GameSummary {
	var g models.GameSummary

	if h1 := doc.Find("div.col-6.text-center").First().Find("h1").First(); h1.Length() > 0 {
		g.GameTime = strippedText(h1)
	}

	if patch := doc.Find("div.col-3.text-right").First(); patch.Length() > 0 {
		g.Patch = strippedText(patch)
	}

	if date := doc.Find("div.col-12.col-sm-5.text-right").First(); date.Length() > 0 {
		g.Date = datePattern.FindString(strippedText(date))
	}

	if tournament := doc.Find("div.col-12.col-sm-7").First(); tournament.Length() > 0 {
		if a := tournament.Find("a").First(); a.Length() > 0 {
			g.Tournament = strippedText(a)
			if m := regionPattern.FindStringSubmatch(strippedText(tournament)); m != nil {
				g.Region = m[1]
			}
		}
	}

	g.BlueTeam, g.BlueResult = parseSideHeader(doc.Find("div.col-12.blue-line-header").First())
	g.RedTeam, g.RedResult = parseSideHeader(doc.Find("div.col-12.red-line-header").First())

	return g
}

// parseSideHeader reads "<a>Team</a> - WIN" style headers.
func parseSideHeader(div *goquery.Selection) (team, result string) {
	if div.Length() == 0 {
		return "", ""
	}
	if a := div.Find("a").First(); a.Length() > 0 {
		team = strippedText(a)
	}
	text := div.Text()
	if i := strings.LastIndex(text, "-"); i >= 0 {
		result = strings.TrimSpace(text[i+1:])
	}
	return team, result
}

// ParseFullStats builds one record per champion column of the full stats
// table. found is false when the page has no table at all.
func ParseFullStats(doc *goquery.Document, gameID int, summary models.GameSummary) (records []models.MatchRecord, found bool, err error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, false, nil
	}

	var champions []string
	skipFirst(table.Find("thead th")).Each(func(_ int, th *goquery.Selection) {
		if alt, ok := th.Find("img").First().Attr("alt"); ok {
			champions = append(champions, ChampionName(alt))
		}
	})
	if len(champions) != PlayersPerGame {
		return nil, true, fmt.Errorf("game %d: %w: %d champion columns", gameID, ErrMalformedTable, len(champions))
	}

	records = make([]models.MatchRecord, len(champions))
	for i, champ := range champions {
		side := SideForColumn(i)
		team, result := summary.TeamFor(side)
		records[i] = models.MatchRecord{
			GameID:     gameID,
			Team:       team,
			Result:     result,
			GameTime:   summary.GameTime,
			Side:       side,
			Patch:      summary.Patch,
			Tournament: summary.Tournament,
			Date:       summary.Date,
			Region:     summary.Region,
			Champion:   champ,
			Stats:      make(map[string]string),
		}
	}

	skipFirst(table.Find("tr")).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		label := strippedText(cells.First())
		skipFirst(cells).Each(func(i int, td *goquery.Selection) {
			if i < len(records) {
				records[i].Stats[label] = strippedText(td)
			}
		})
	})

	return records, true, nil
}
