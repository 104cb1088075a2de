package models

import (
	"strconv"
	"strings"
)

// Side is one of the two opposing teams in a game.
type Side string

const (
	SideBlue Side = "Blue"
	SideRed  Side = "Red"
)

// Role is a fixed team position.
type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleADC     Role = "ADC"
	RoleSupport Role = "SUPPORT"
)

// Roles lists every role in lineup order.
var Roles = []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}

// MatchColumns is the column order of the collected match stats CSV.
var MatchColumns = []string{
	"GameID", "Team", "Result", "Game Time", "Side", "Patch", "Tournament", "Date", "Region", "Champion", "Player", "Role", "Level", "Kills", "Deaths", "Assists", "KDA",
	"CS", "CS in Team's Jungle", "CS in Enemy Jungle", "CSM", "Golds", "GPM", "GOLD%", "Vision Score", "Wards placed", "Wards destroyed", "Control Wards Purchased",
	"Detector Wards Placed", "VSPM", "WPM", "VWPM", "WCPM", "VS%", "Total damage to Champion", "Physical Damage", "Magic Damage", "True Damage", "DPM", "DMG%", "K+A Per Minute", "KP%",
	"Solo kills", "Double kills", "Triple kills", "Quadra kills", "Penta kills", "GD@15", "CSD@15", "XPD@15", "LVLD@15", "Objectives Stolen", "Damage dealt to turrets",
	"Damage dealt to buildings", "Total heal", "Total Heals On Teammates", "Damage self mitigated", "Total Damage Shielded On Teammates", "Time ccing others",
	"Total Time CC Dealt", "Total damage taken", "Total Time Spent Dead", "Consumables purchased", "Items Purchased", "Shutdown bounty collected", "Shutdown bounty lost",
}

// GameSummary holds the team-level fields of a game page.
type GameSummary struct {
	BlueTeam   string `json:"blue_team"`
	RedTeam    string `json:"red_team"`
	BlueResult string `json:"blue_result"`
	RedResult  string `json:"red_result"`
	GameTime   string `json:"game_time"`
	Patch      string `json:"patch"`
	Tournament string `json:"tournament"`
	Date       string `json:"date"`
	Region     string `json:"region"`
}

// TeamFor returns the team name and result for a side.
func (g GameSummary) TeamFor(side Side) (team, result string) {
	if side == SideBlue {
		return g.BlueTeam, g.BlueResult
	}
	return g.RedTeam, g.RedResult
}

// MatchRecord is one player's line in one game. Stats is keyed by the label of
// the stats table row it was read from.
type MatchRecord struct {
	GameID     int               `json:"game_id"`
	Team       string            `json:"team"`
	Result     string            `json:"result"`
	GameTime   string            `json:"game_time"`
	Side       Side              `json:"side"`
	Patch      string            `json:"patch"`
	Tournament string            `json:"tournament"`
	Date       string            `json:"date"`
	Region     string            `json:"region"`
	Champion   string            `json:"champion"`
	Stats      map[string]string `json:"stats"`
}

// Value returns the text stored under a CSV column name, or "" if absent.
func (r *MatchRecord) Value(column string) string {
	switch column {
	case "GameID":
		return strconv.Itoa(r.GameID)
	case "Team":
		return r.Team
	case "Result":
		return r.Result
	case "Game Time":
		return r.GameTime
	case "Side":
		return string(r.Side)
	case "Patch":
		return r.Patch
	case "Tournament":
		return r.Tournament
	case "Date":
		return r.Date
	case "Region":
		return r.Region
	case "Champion":
		return r.Champion
	}
	return r.Stats[column]
}

// Row reindexes the record against columns. Labels not in columns are dropped.
func (r *MatchRecord) Row(columns []string) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = r.Value(c)
	}
	return row
}

// Player is a shortcut for the "Player" stats row.
func (r *MatchRecord) Player() string { return r.Stats["Player"] }

// Role is a shortcut for the "Role" stats row.
func (r *MatchRecord) Role() string { return r.Stats["Role"] }
