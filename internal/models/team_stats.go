package models

// TeamStatsColumns is the column order of the season team stats CSV. It follows
// the cell order of the team list table.
var TeamStatsColumns = []string{
	"Name", "Season", "Region", "Games", "WinRate", "KDA", "GPM", "GDM", "GameDuration", "KillsPerGame", "DeathsPerGame", "TowersKilled", "TowersLost", "FB%", "FT%", "FOS%",
	"DRAPG", "DRA%", "VGPG", "HER%", "ATAKHAN%", "DRA@15", "TD@15", "GD@15", "PPG", "NASHPG", "NASH%", "CSM", "DPM", "WPM", "VWPM", "WCPM",
}

// TeamSeasonStats is one row of the season team list, kept as scraped text in
// TeamStatsColumns order.
type TeamSeasonStats struct {
	Values []string `json:"values"`
}

// Name returns the team name cell.
func (t TeamSeasonStats) Name() string {
	if len(t.Values) == 0 {
		return ""
	}
	return t.Values[0]
}

// Get returns the cell under column, or "" if unknown.
func (t TeamSeasonStats) Get(column string) string {
	for i, c := range TeamStatsColumns {
		if c == column && i < len(t.Values) {
			return t.Values[i]
		}
	}
	return ""
}
