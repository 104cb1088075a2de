package predictor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/golstats/match-predictor/internal/models"
)

// Artifact file names inside the artifact directory.
const (
	PlayerEncodersFile   = "player_encoders.json"
	ChampionEncodersFile = "champion_encoders.json"
	TeamEncoderFile      = "team_encoder.json"
	RegionEncoderFile    = "region_encoder.json"
	PatchEncoderFile     = "patch_encoder.json"
	TeamElosFile         = "final_team_elos.json"
	FeatureColumnsFile   = "feature_columns.json"
	VotingModelFile      = "voting_ensemble_model.json"
	ElasticModelFile     = "elastic_net_model.json"
	HistoricalDataFile   = "processed_historical_data.csv"
)

// HistoricalStats are the per-role stats averaged into the feature row.
var HistoricalStats = []string{"kills", "deaths", "assists", "kp%", "dmg%", "gd@15"}

// Store holds every trained artifact. It is read-only after Load.
type Store struct {
	Players        map[models.Role]*LabelEncoder
	Champions      map[models.Role]*LabelEncoder
	Team           *LabelEncoder
	Region         *OneHotEncoder
	Patch          *OneHotEncoder
	TeamElos       map[int]float64
	FeatureColumns []string
	Voting         Scorer
	Elastic        Scorer
	History        *Dataset
}

// Load reads every artifact from dir and the historical dataset from
// historicalPath. An empty historicalPath uses the file inside dir. Any
// missing or malformed artifact is an error.
func Load(dir, historicalPath string) (*Store, error) {
	if historicalPath == "" {
		historicalPath = filepath.Join(dir, HistoricalDataFile)
	}
	s := &Store{}

	if err := readJSON(dir, FeatureColumnsFile, &s.FeatureColumns); err != nil {
		return nil, err
	}
	if len(s.FeatureColumns) == 0 {
		return nil, fmt.Errorf("%s: no feature columns", FeatureColumnsFile)
	}

	var err error
	if s.Players, err = readRoleEncoders(dir, PlayerEncodersFile, "player"); err != nil {
		return nil, err
	}
	if s.Champions, err = readRoleEncoders(dir, ChampionEncodersFile, "champion"); err != nil {
		return nil, err
	}

	s.Team = &LabelEncoder{}
	if err := readJSON(dir, TeamEncoderFile, s.Team); err != nil {
		return nil, err
	}
	if s.Region, err = readOneHot(dir, RegionEncoderFile); err != nil {
		return nil, err
	}
	if s.Patch, err = readOneHot(dir, PatchEncoderFile); err != nil {
		return nil, err
	}

	var rawElos map[string]float64
	if err := readJSON(dir, TeamElosFile, &rawElos); err != nil {
		return nil, err
	}
	s.TeamElos = make(map[int]float64, len(rawElos))
	for k, v := range rawElos {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%s: team id %q is not an integer", TeamElosFile, k)
		}
		s.TeamElos[id] = v
	}

	if s.Voting, err = readScorer(dir, VotingModelFile, models.ModelVoting, len(s.FeatureColumns)); err != nil {
		return nil, err
	}
	if s.Elastic, err = readScorer(dir, ElasticModelFile, models.ModelElastic, len(s.FeatureColumns)); err != nil {
		return nil, err
	}

	f, err := os.Open(historicalPath)
	if err != nil {
		return nil, fmt.Errorf("open historical data: %w", err)
	}
	defer f.Close()
	if s.History, err = ReadDataset(f); err != nil {
		return nil, fmt.Errorf("historical data %s: %w", historicalPath, err)
	}
	if err := checkHistoryColumns(s.History); err != nil {
		return nil, fmt.Errorf("historical data %s: %w", historicalPath, err)
	}

	return s, nil
}

func readJSON(dir, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// readRoleEncoders reads a file keyed "{ROLE}_{kind}". Every role is required.
func readRoleEncoders(dir, name, kind string) (map[models.Role]*LabelEncoder, error) {
	var raw map[string]*LabelEncoder
	if err := readJSON(dir, name, &raw); err != nil {
		return nil, err
	}
	out := make(map[models.Role]*LabelEncoder, len(models.Roles))
	for _, role := range models.Roles {
		key := string(role) + "_" + kind
		enc, ok := raw[key]
		if !ok || enc == nil {
			return nil, fmt.Errorf("%s: missing encoder %s", name, key)
		}
		out[role] = enc
	}
	return out, nil
}

func readOneHot(dir, name string) (*OneHotEncoder, error) {
	enc := &OneHotEncoder{}
	if err := readJSON(dir, name, enc); err != nil {
		return nil, err
	}
	if err := enc.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return enc, nil
}

func readScorer(dir, name, model string, features int) (Scorer, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return DecodeScorer(model, data, features)
}

func checkHistoryColumns(ds *Dataset) error {
	required := []string{"blue_Team", "red_Team"}
	for _, role := range models.Roles {
		for _, side := range []string{"blue", "red"} {
			required = append(required, historyPlayerColumn(side, role))
			for _, stat := range HistoricalStats {
				required = append(required, historyStatColumn(side, role, stat))
			}
		}
	}
	for _, c := range required {
		if !ds.HasColumn(c) {
			return fmt.Errorf("missing column %s", c)
		}
	}
	return nil
}

func historyPlayerColumn(side string, role models.Role) string {
	return side + "_" + string(role) + "_player"
}

func historyStatColumn(side string, role models.Role, stat string) string {
	return side + "_" + string(role) + "_" + stat
}
