package models

import "testing"

func TestMatchRecordRow_Reindex(t *testing.T) {
	rec := MatchRecord{
		GameID:   60123,
		Team:     "T1",
		Result:   "WIN",
		Side:     SideBlue,
		Champion: "Ksante",
		Stats: map[string]string{
			"Player":       "Zeus",
			"Kills":        "4",
			"Not A Column": "ignored",
		},
	}

	row := rec.Row(MatchColumns)
	if len(row) != len(MatchColumns) {
		t.Fatalf("len(row) = %d, want %d", len(row), len(MatchColumns))
	}

	byName := make(map[string]string, len(row))
	for i, c := range MatchColumns {
		byName[c] = row[i]
	}
	if byName["GameID"] != "60123" {
		t.Errorf("GameID = %q, want 60123", byName["GameID"])
	}
	if byName["Side"] != "Blue" {
		t.Errorf("Side = %q, want Blue", byName["Side"])
	}
	if byName["Player"] != "Zeus" || byName["Kills"] != "4" {
		t.Errorf("stats not mapped: Player=%q Kills=%q", byName["Player"], byName["Kills"])
	}
	if byName["Deaths"] != "" {
		t.Errorf("missing column should be empty, got %q", byName["Deaths"])
	}
	for _, v := range row {
		if v == "ignored" {
			t.Error("unknown label leaked into the row")
		}
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" adc "); !ok || r != RoleADC {
		t.Errorf("ParseRole(adc) = %q, %v", r, ok)
	}
	if _, ok := ParseRole("bot"); ok {
		t.Error("ParseRole(bot) should fail")
	}
}
