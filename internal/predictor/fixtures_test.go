package predictor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/golstats/match-predictor/internal/models"
)

var (
	testTeams   = []string{"gen.g", "t1"}
	testPlayers = map[models.Role][]string{
		models.RoleTop:     {"kiin", "rookie-top", "zeus"},
		models.RoleJungle:  {"canyon", "oner"},
		models.RoleMid:     {"chovy", "faker"},
		models.RoleADC:     {"gumayusi", "ruler"},
		models.RoleSupport: {"duro", "keria"},
	}
	testChampions = []string{"ahri", "azir", "jinx", "ksante", "rell"}

	// encoded player ids per role, in models.Roles order
	t1Lineup   = [5]int{2, 1, 1, 0, 1}
	genGLineup = [5]int{0, 0, 0, 1, 0}
)

// testFeatureColumns mirrors the trained schema plus one column the
// assembler never produces.
func testFeatureColumns() []string {
	cols := []string{"Patch_15.10", "Patch_15.2", "Region_euw", "Region_kr", "blue_team_elo_rating", "red_team_elo_rating"}
	for _, side := range []string{"blue", "red"} {
		cols = append(cols, side+"_Team")
		for _, role := range models.Roles {
			key := side + "_" + string(role)
			cols = append(cols, key+"_player", key+"_champion")
			for _, stat := range HistoricalStats {
				cols = append(cols, key+"_historical_avg_"+stat)
			}
		}
	}
	return append(cols, "unused_feature")
}

func indexOf(cols []string, name string) int {
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	return -1
}

func writeJSON(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func historyRow(header []string, blueTeam, redTeam int, blue, red [5]int, blueStat, redStat float64) []string {
	values := map[string]string{
		"Patch_15.10": "False", "Patch_15.2": "True", "Region_euw": "False", "Region_kr": "True",
		"blue_Team": fmt.Sprint(blueTeam), "red_Team": fmt.Sprint(redTeam),
	}
	for i, role := range models.Roles {
		values["blue_"+string(role)+"_player"] = fmt.Sprint(blue[i])
		values["red_"+string(role)+"_player"] = fmt.Sprint(red[i])
		for _, stat := range HistoricalStats {
			values[historyStatColumn("blue", role, stat)] = fmt.Sprint(blueStat)
			values[historyStatColumn("red", role, stat)] = fmt.Sprint(redStat)
		}
	}
	row := make([]string, len(header))
	for i, c := range header {
		row[i] = values[c]
	}
	return row
}

// writeTestArtifacts writes a small but complete artifact directory.
// Elastic net: sigmoid(0.01*(blue elo - red elo)). Voting: soft mean of the
// same logistic model and a one-tree forest returning 0.75 for Region_kr and
// 0.5 otherwise.
func writeTestArtifacts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cols := testFeatureColumns()

	players := map[string]any{}
	champions := map[string]any{}
	for _, role := range models.Roles {
		players[string(role)+"_player"] = map[string]any{"classes": testPlayers[role]}
		champions[string(role)+"_champion"] = map[string]any{"classes": testChampions}
	}
	writeJSON(t, dir, PlayerEncodersFile, players)
	writeJSON(t, dir, ChampionEncodersFile, champions)
	writeJSON(t, dir, TeamEncoderFile, map[string]any{"classes": testTeams})
	writeJSON(t, dir, RegionEncoderFile, map[string]any{"feature": "Region", "categories": []string{"cn", "euw", "kr"}, "drop": "cn"})
	writeJSON(t, dir, PatchEncoderFile, map[string]any{"feature": "Patch", "categories": []string{"15.1", "15.10", "15.2"}, "drop": "15.1"})
	writeJSON(t, dir, TeamElosFile, map[string]float64{"0": 1500, "1": 1600})
	writeJSON(t, dir, FeatureColumnsFile, cols)

	coef := make([]float64, len(cols))
	coef[indexOf(cols, "blue_team_elo_rating")] = 0.01
	coef[indexOf(cols, "red_team_elo_rating")] = -0.01
	logistic := map[string]any{"type": "logistic", "coef": coef, "intercept": 0.0}
	forest := map[string]any{
		"type": "forest",
		"trees": []any{map[string]any{"nodes": []any{
			map[string]any{"feature": indexOf(cols, "Region_kr"), "threshold": 0.5, "left": 1, "right": 2},
			map[string]any{"left": -1, "right": -1, "value": []float64{1, 1}},
			map[string]any{"left": -1, "right": -1, "value": []float64{1, 3}},
		}}},
	}
	writeJSON(t, dir, ElasticModelFile, logistic)
	writeJSON(t, dir, VotingModelFile, map[string]any{
		"type": "voting", "voting": "soft", "weights": []float64{1, 1},
		"estimators": []any{logistic, forest},
	})

	header := []string{"Patch_15.10", "Patch_15.2", "Region_euw", "Region_kr", "blue_Team", "red_Team"}
	for _, side := range []string{"blue", "red"} {
		for _, role := range models.Roles {
			header = append(header, historyPlayerColumn(side, role))
			for _, stat := range HistoricalStats {
				header = append(header, historyStatColumn(side, role, stat))
			}
		}
	}
	lines := []string{
		strings.Join(header, ","),
		strings.Join(historyRow(header, 1, 0, t1Lineup, genGLineup, 5, 2), ","),
		strings.Join(historyRow(header, 0, 1, genGLineup, t1Lineup, 1, 3), ","),
	}
	if err := os.WriteFile(filepath.Join(dir, HistoricalDataFile), []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newTestPredictor(t *testing.T) *Predictor {
	t.Helper()
	p, err := LoadPredictor(writeTestArtifacts(t), "")
	if err != nil {
		t.Fatalf("LoadPredictor: %v", err)
	}
	return p
}

func testSpec() *models.MatchSpecification {
	return &models.MatchSpecification{
		Patch:  models.MustParsePatch("15.1"),
		Region: "KR",
		BlueTeam: models.TeamSubmission{
			TeamName: "T1",
			Players: map[models.Role]string{
				models.RoleTop: "Zeus", models.RoleJungle: "Oner", models.RoleMid: "Faker",
				models.RoleADC: "Gumayusi", models.RoleSupport: "Keria",
			},
			Champions: map[models.Role]string{
				models.RoleTop: "KSante", models.RoleJungle: "Rell", models.RoleMid: "Azir",
				models.RoleADC: "Jinx", models.RoleSupport: "Rell",
			},
		},
		RedTeam: models.TeamSubmission{
			TeamName: "Gen.G",
			Players: map[models.Role]string{
				models.RoleTop: "Kiin", models.RoleJungle: "Canyon", models.RoleMid: "Chovy",
				models.RoleADC: "Ruler", models.RoleSupport: "Duro",
			},
			Champions: map[models.Role]string{
				models.RoleTop: "Ahri", models.RoleJungle: "Azir", models.RoleMid: "Ahri",
				models.RoleADC: "Jinx", models.RoleSupport: "Rell",
			},
		},
	}
}
