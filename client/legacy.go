package client

import (
	"strconv"
	"strings"

	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

// Parsers for the legacy console's text responses. List responses are tab
// separated with a leading element count; playerinfo is a key-value block,
// one "Key: Value" pair per line.

// parseLegacyList splits a v1 list response into its elements.
func parseLegacyList(body string) []string {
	sep := "\t"
	if !strings.Contains(body, sep) {
		sep = "\n"
	}
	fields := strings.Split(body, sep)

	// Leading element count, if present.
	if len(fields) > 0 {
		if _, err := strconv.Atoi(strings.TrimSpace(fields[0])); err == nil {
			fields = fields[1:]
		}
	}

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseLegacyPlayerIDs decodes a "get playerids" response. Each element is
// "name : id"; the legacy console carries no platform detail, so steam is
// assumed.
func parseLegacyPlayerIDs(body string) *PlayersResponse {
	resp := &PlayersResponse{}
	for _, entry := range parseLegacyList(body) {
		name, id, ok := strings.Cut(entry, " : ")
		if !ok {
			continue
		}
		resp.Players = append(resp.Players, Player{
			Name:     strings.TrimSpace(name),
			ID:       strings.TrimSpace(id),
			Platform: PlatformSteam,
		})
	}
	return resp
}

var legacyTeams = map[string]PlayerTeam{
	"Axis":   TeamGER,
	"Allies": TeamUS,
	"None":   TeamUnassigned,
}

var legacyRoles = map[string]PlayerRole{
	"Rifleman":           RoleRifleman,
	"Assault":            RoleAssault,
	"AutomaticRifleman":  RoleAutomaticRifleman,
	"Medic":              RoleMedic,
	"Spotter":            RoleSpotter,
	"Support":            RoleSupport,
	"MachineGunner":      RoleMachineGunner,
	"HeavyMachineGunner": RoleMachineGunner,
	"AntiTank":           RoleAntiTank,
	"Engineer":           RoleEngineer,
	"Officer":            RoleOfficer,
	"Sniper":             RoleSniper,
	"Crewman":            RoleCrewman,
	"TankCommander":      RoleTankCommander,
	"ArmyCommander":      RoleArmyCommander,
}

// parseLegacyPlayerInfo decodes a "playerinfo" response block into the
// Player shape the v2 console returns.
func parseLegacyPlayerInfo(body string) (*Player, error) {
	kv := make(map[string]string)
	for _, line := range strings.Split(body, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		kv[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if kv["Name"] == "" {
		return nil, &common.DecodeError{Reason: "playerinfo response carries no Name field"}
	}

	p := &Player{
		Name:     kv["Name"],
		ID:       kv["steamID64"],
		Platform: PlatformSteam,
		Team:     TeamUnassigned,
		Platoon:  kv["Unit"],
		Loadout:  kv["Loadout"],
	}
	if team, ok := legacyTeams[kv["Team"]]; ok {
		p.Team = team
	}
	if role, ok := legacyRoles[kv["Role"]]; ok {
		p.Role = role
	}
	p.Level, _ = strconv.Atoi(kv["Level"])

	// "Kills: 9 - Deaths: 3" folds the deaths count into the kills line.
	if kills, deaths, ok := strings.Cut(kv["Kills"], " - Deaths:"); ok {
		p.Kills, _ = strconv.Atoi(strings.TrimSpace(kills))
		p.Deaths, _ = strconv.Atoi(strings.TrimSpace(deaths))
	} else {
		p.Kills, _ = strconv.Atoi(kv["Kills"])
	}

	// "Score: C 107, O 180, D 220, S 30"
	for _, part := range strings.Split(kv["Score"], ",") {
		part = strings.TrimSpace(part)
		tag, value, ok := strings.Cut(part, " ")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		switch tag {
		case "C":
			p.ScoreData.Combat = n
		case "O":
			p.ScoreData.Offense = n
		case "D":
			p.ScoreData.Defense = n
		case "S":
			p.ScoreData.Support = n
		}
	}
	return p, nil
}
