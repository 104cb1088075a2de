package predictor

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/golstats/match-predictor/internal/models"
)

// Defaults always offered by the region and patch lookups.
const (
	defaultRegion = "cn"
	defaultPatch  = "15.1"
)

// Teams returns every known team name, sorted.
func (p *Predictor) Teams() []string {
	return sortedClasses(p.store.Team)
}

// Champions returns the champions seen in role, sorted. Unknown roles have
// none.
func (p *Predictor) Champions(role models.Role) []string {
	return sortedClasses(p.store.Champions[role])
}

// Players returns the players seen in role, sorted.
func (p *Predictor) Players(role models.Role) []string {
	return sortedClasses(p.store.Players[role])
}

// TeamPlayers returns, per role, the players who played that role for team on
// either side of the historical games.
func (p *Predictor) TeamPlayers(team string) (models.TeamPlayers, error) {
	teamID, ok := p.store.Team.Transform(strings.ToLower(team))
	if !ok {
		return nil, &UnknownCategoryError{Field: "team", Value: team}
	}
	ds := p.store.History
	id := float64(teamID)
	blueGames := ds.Where("blue_Team", id)
	redGames := ds.Where("red_Team", id)

	out := make(models.TeamPlayers, len(models.Roles))
	for _, role := range models.Roles {
		seen := make(map[string]struct{})
		collect := func(side string, rows []int) {
			col, _ := ds.Column(historyPlayerColumn(side, role))
			for _, i := range rows {
				v := col[i]
				if math.IsNaN(v) {
					continue
				}
				if name, ok := p.store.Players[role].InverseTransform(int(v)); ok {
					seen[name] = struct{}{}
				}
			}
		}
		collect("blue", blueGames)
		collect("red", redGames)

		players := make([]string, 0, len(seen))
		for name := range seen {
			players = append(players, name)
		}
		sort.Strings(players)
		out[role] = players
	}
	return out, nil
}

// Regions returns the default region, the encoder's dropped category and every
// region with a one-hot column in the historical data, sorted and distinct.
func (p *Predictor) Regions() []string {
	regions := []string{defaultRegion}
	if p.store.Region != nil && p.store.Region.Drop != "" {
		regions = append(regions, p.store.Region.Drop)
	}
	for _, c := range p.store.History.ColumnsWithPrefix("Region_") {
		regions = append(regions, strings.TrimPrefix(c, "Region_"))
	}
	sort.Strings(regions)
	return slices.Compact(regions)
}

// Patches returns the default patch, the encoder's dropped category and every
// patch with a one-hot column in the historical data, newest first. Names that
// do not parse as a patch are ignored.
func (p *Predictor) Patches() []models.Patch {
	patches := []models.Patch{models.MustParsePatch(defaultPatch)}
	if p.store.Patch != nil && p.store.Patch.Drop != "" {
		if base, err := models.ParsePatch(p.store.Patch.Drop); err == nil {
			patches = append(patches, base)
		}
	}
	for _, c := range p.store.History.ColumnsWithPrefix("Patch_") {
		if patch, err := models.ParsePatch(strings.TrimPrefix(c, "Patch_")); err == nil {
			patches = append(patches, patch)
		}
	}
	slices.SortFunc(patches, func(a, b models.Patch) int { return b.Compare(a) })
	return slices.Compact(patches)
}

func sortedClasses(enc *LabelEncoder) []string {
	if enc == nil {
		return nil
	}
	classes := enc.Classes()
	sort.Strings(classes)
	return classes
}
