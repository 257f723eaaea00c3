package client

import (
	"reflect"
	"testing"
)

// TestParseLegacyList covers the tab-separated form with a leading count,
// the newline fallback and blank element filtering.
func TestParseLegacyList(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "tabs with count",
			body: "3\tcarentan_warfare\tfoy_warfare\tutahbeach_warfare",
			want: []string{"carentan_warfare", "foy_warfare", "utahbeach_warfare"},
		},
		{
			name: "newlines without count",
			body: "carentan_warfare\nfoy_warfare\n",
			want: []string{"carentan_warfare", "foy_warfare"},
		},
		{
			name: "blank elements dropped",
			body: "2\tone\t\ttwo",
			want: []string{"one", "two"},
		},
		{
			name: "empty body",
			body: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLegacyList(tt.body)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseLegacyList(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

// TestParseLegacyPlayerIDs verifies the "name : id" element format.
func TestParseLegacyPlayerIDs(t *testing.T) {
	body := "2\tFoxtrot : 76561198012345678\t[1st] Baker : 76561198087654321"

	resp := parseLegacyPlayerIDs(body)
	if len(resp.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(resp.Players))
	}
	if p := resp.Players[0]; p.Name != "Foxtrot" || p.ID != "76561198012345678" || p.Platform != PlatformSteam {
		t.Errorf("player 0 = %+v", p)
	}
	if p := resp.Players[1]; p.Name != "[1st] Baker" || p.ID != "76561198087654321" {
		t.Errorf("player 1 = %+v", p)
	}
}

// TestParseLegacyPlayerIDsSkipsMalformed verifies elements without the
// separator are ignored instead of producing garbage entries.
func TestParseLegacyPlayerIDsSkipsMalformed(t *testing.T) {
	resp := parseLegacyPlayerIDs("2\tFoxtrot : 765611980\tnot-an-entry")
	if len(resp.Players) != 1 {
		t.Errorf("got %d players, want 1", len(resp.Players))
	}
}

// TestParseLegacyPlayerInfo verifies the full key-value block, including
// the folded Kills/Deaths line and the tagged Score line.
func TestParseLegacyPlayerInfo(t *testing.T) {
	body := "Name: Foxtrot\n" +
		"steamID64: 76561198012345678\n" +
		"Team: Allies\n" +
		"Role: HeavyMachineGunner\n" +
		"Unit: 0 - ABLE\n" +
		"Loadout: standard issue\n" +
		"Kills: 9 - Deaths: 3\n" +
		"Score: C 107, O 180, D 220, S 30\n" +
		"Level: 153\n"

	p, err := parseLegacyPlayerInfo(body)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Name != "Foxtrot" || p.ID != "76561198012345678" {
		t.Errorf("identity = %q / %q", p.Name, p.ID)
	}
	if p.Team != TeamUS {
		t.Errorf("team = %v", p.Team)
	}
	if p.Role != RoleMachineGunner {
		t.Errorf("role = %v", p.Role)
	}
	if p.Platoon != "0 - ABLE" || p.Loadout != "standard issue" {
		t.Errorf("unit/loadout = %q / %q", p.Platoon, p.Loadout)
	}
	if p.Kills != 9 || p.Deaths != 3 {
		t.Errorf("kills/deaths = %d/%d", p.Kills, p.Deaths)
	}
	want := ScoreData{Combat: 107, Offense: 180, Defense: 220, Support: 30}
	if p.ScoreData != want {
		t.Errorf("score = %+v, want %+v", p.ScoreData, want)
	}
	if p.Level != 153 {
		t.Errorf("level = %d", p.Level)
	}
}

// TestParseLegacyPlayerInfoUnknownTeam verifies unmapped teams fall back to
// Unassigned rather than zero (which would be GER).
func TestParseLegacyPlayerInfoUnknownTeam(t *testing.T) {
	p, err := parseLegacyPlayerInfo("Name: Foxtrot\nTeam: Sumpfkrieger\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Team != TeamUnassigned {
		t.Errorf("team = %v, want Unassigned", p.Team)
	}
}

// TestParseLegacyPlayerInfoRequiresName verifies a block without a Name is
// rejected as undecodable.
func TestParseLegacyPlayerInfoRequiresName(t *testing.T) {
	if _, err := parseLegacyPlayerInfo("Team: Axis\nLevel: 3"); err == nil {
		t.Error("accepted playerinfo block without Name")
	}
}
