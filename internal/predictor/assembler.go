package predictor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/golstats/match-predictor/internal/models"
)

var (
	// ErrUnknownCategory matches every *UnknownCategoryError.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrIncompleteRoster is returned when a role has no player or champion.
	ErrIncompleteRoster = errors.New("incomplete roster")
)

// UnknownCategoryError reports a value the trained encoders have never seen.
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.Value)
}

func (e *UnknownCategoryError) Is(target error) bool { return target == ErrUnknownCategory }

// RosterError names the missing roster entry.
type RosterError struct {
	Field string
}

func (e *RosterError) Error() string { return "missing " + e.Field }

func (e *RosterError) Is(target error) bool { return target == ErrIncompleteRoster }

// FeatureRow is a feature vector aligned to the stored column schema.
type FeatureRow struct {
	Columns []string
	Values  []float64
}

// Get returns the value of column, or 0 if it is not in the schema.
func (r FeatureRow) Get(column string) float64 {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i]
		}
	}
	return 0
}

// Assembler builds feature rows from match specifications.
type Assembler struct {
	store *Store
	// fallback holds the dataset-wide mean per role and stat, used for
	// players without history.
	fallback map[models.Role]map[string]float64
}

// NewAssembler precomputes the dataset means used as history fallback.
func NewAssembler(store *Store) *Assembler {
	a := &Assembler{store: store, fallback: make(map[models.Role]map[string]float64, len(models.Roles))}
	for _, role := range models.Roles {
		means := make(map[string]float64, len(HistoricalStats))
		for _, stat := range HistoricalStats {
			blue := store.History.Mean(historyStatColumn("blue", role, stat))
			red := store.History.Mean(historyStatColumn("red", role, stat))
			means[stat] = (blue + red) / 2
		}
		a.fallback[role] = means
	}
	return a
}

// Assemble encodes spec into a FeatureRow. Keys missing from the built
// features are 0 and features outside the schema are dropped.
func (a *Assembler) Assemble(spec *models.MatchSpecification) (FeatureRow, error) {
	if err := checkRoster(spec); err != nil {
		return FeatureRow{}, err
	}

	features := make(map[string]float64, len(a.store.FeatureColumns))

	patch := spec.Patch.String()
	if !a.store.Patch.Transform(patch, features) {
		return FeatureRow{}, &UnknownCategoryError{Field: "patch", Value: patch}
	}
	region := strings.ToLower(strings.TrimSpace(spec.Region))
	if !a.store.Region.Transform(region, features) {
		return FeatureRow{}, &UnknownCategoryError{Field: "region", Value: spec.Region}
	}

	for _, side := range []models.Side{models.SideBlue, models.SideRed} {
		if err := a.assembleSide(spec.Team(side), sidePrefix(side), features); err != nil {
			return FeatureRow{}, err
		}
	}

	row := FeatureRow{
		Columns: a.store.FeatureColumns,
		Values:  make([]float64, len(a.store.FeatureColumns)),
	}
	for i, c := range row.Columns {
		row.Values[i] = features[c]
	}
	return row, nil
}

func (a *Assembler) assembleSide(team *models.TeamSubmission, prefix string, features map[string]float64) error {
	teamID, ok := a.store.Team.Transform(strings.ToLower(team.TeamName))
	if !ok {
		return &UnknownCategoryError{Field: prefix + "_team.team_name", Value: team.TeamName}
	}
	elo, ok := a.store.TeamElos[teamID]
	if !ok {
		return &UnknownCategoryError{Field: prefix + "_team.elo", Value: team.TeamName}
	}
	features[prefix+"_team_elo_rating"] = elo
	features[prefix+"_Team"] = float64(teamID)

	for _, role := range models.Roles {
		player := team.Players[role]
		playerID, ok := a.store.Players[role].Transform(strings.ToLower(player))
		if !ok {
			return &UnknownCategoryError{Field: fmt.Sprintf("%s_team.players.%s", prefix, role), Value: player}
		}
		champion := team.Champions[role]
		championID, ok := a.store.Champions[role].Transform(strings.ToLower(champion))
		if !ok {
			return &UnknownCategoryError{Field: fmt.Sprintf("%s_team.champions.%s", prefix, role), Value: champion}
		}

		key := prefix + "_" + string(role)
		features[key+"_player"] = float64(playerID)
		features[key+"_champion"] = float64(championID)
		for stat, v := range a.PlayerHistory(role, playerID) {
			features[key+"_historical_avg_"+stat] = v
		}
	}
	return nil
}

// PlayerHistory averages each historical stat over every game where the
// encoded player appears in role on either side. A player without games gets
// the mean of the blue and red dataset averages.
func (a *Assembler) PlayerHistory(role models.Role, playerID int) map[string]float64 {
	ds := a.store.History
	id := float64(playerID)
	blueRows := ds.Where(historyPlayerColumn("blue", role), id)
	redRows := ds.Where(historyPlayerColumn("red", role), id)

	out := make(map[string]float64, len(HistoricalStats))
	for _, stat := range HistoricalStats {
		if len(blueRows)+len(redRows) == 0 {
			out[stat] = a.fallback[role][stat]
			continue
		}
		blueCol, _ := ds.Column(historyStatColumn("blue", role, stat))
		redCol, _ := ds.Column(historyStatColumn("red", role, stat))

		sum, n := 0.0, 0
		for _, i := range blueRows {
			if v := blueCol[i]; !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		for _, i := range redRows {
			if v := redCol[i]; !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		if n == 0 {
			out[stat] = a.fallback[role][stat]
		} else {
			out[stat] = sum / float64(n)
		}
	}
	return out
}

func checkRoster(spec *models.MatchSpecification) error {
	for _, side := range []models.Side{models.SideBlue, models.SideRed} {
		team := spec.Team(side)
		prefix := sidePrefix(side)
		if strings.TrimSpace(team.TeamName) == "" {
			return &RosterError{Field: prefix + "_team.team_name"}
		}
		for _, role := range models.Roles {
			if strings.TrimSpace(team.Players[role]) == "" {
				return &RosterError{Field: fmt.Sprintf("%s_team.players.%s", prefix, role)}
			}
			if strings.TrimSpace(team.Champions[role]) == "" {
				return &RosterError{Field: fmt.Sprintf("%s_team.champions.%s", prefix, role)}
			}
		}
	}
	return nil
}

func sidePrefix(side models.Side) string {
	return strings.ToLower(string(side))
}
