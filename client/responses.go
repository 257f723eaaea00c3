package client

// Typed decodings of the JSON content bodies the v2 console returns. Field
// tags mirror the server's casing exactly, including its irregular "iD",
// "eosId", "cOMBAT" and "mAPS" keys.

// PlayerPlatform identifies the platform a player connected from.
type PlayerPlatform string

const (
	PlatformSteam PlayerPlatform = "steam"
	PlatformEpic  PlayerPlatform = "epic"
	PlatformXbox  PlayerPlatform = "xbl"
)

// PlayerTeam is the faction a player is assigned to.
type PlayerTeam int

const (
	TeamGER        PlayerTeam = 0
	TeamUS         PlayerTeam = 1
	TeamRUS        PlayerTeam = 2
	TeamGB         PlayerTeam = 3
	TeamDAK        PlayerTeam = 4
	TeamB8A        PlayerTeam = 5
	TeamUnassigned PlayerTeam = 6
)

func (t PlayerTeam) String() string {
	switch t {
	case TeamGER:
		return "GER"
	case TeamUS:
		return "US"
	case TeamRUS:
		return "RUS"
	case TeamGB:
		return "GB"
	case TeamDAK:
		return "DAK"
	case TeamB8A:
		return "B8A"
	default:
		return "Unassigned"
	}
}

// PlayerRole is the squad role a player currently occupies.
type PlayerRole int

const (
	RoleRifleman           PlayerRole = 0
	RoleAssault            PlayerRole = 1
	RoleAutomaticRifleman  PlayerRole = 2
	RoleMedic              PlayerRole = 3
	RoleSpotter            PlayerRole = 4
	RoleSupport            PlayerRole = 5
	RoleMachineGunner      PlayerRole = 6
	RoleAntiTank           PlayerRole = 7
	RoleEngineer           PlayerRole = 8
	RoleOfficer            PlayerRole = 9
	RoleSniper             PlayerRole = 10
	RoleCrewman            PlayerRole = 11
	RoleTankCommander      PlayerRole = 12
	RoleArmyCommander      PlayerRole = 13
)

func (r PlayerRole) String() string {
	names := [...]string{
		"Rifleman", "Assault", "AutomaticRifleman", "Medic", "Spotter",
		"Support", "MachineGunner", "AntiTank", "Engineer", "Officer",
		"Sniper", "Crewman", "TankCommander", "ArmyCommander",
	}
	if int(r) < 0 || int(r) >= len(names) {
		return "Unknown"
	}
	return names[r]
}

// GameMode selects which game mode a timer command applies to.
type GameMode string

const (
	GameModeWarfare   GameMode = "Warfare"
	GameModeOffensive GameMode = "Offensive"
	GameModeSkirmish  GameMode = "Skirmish"
)

// ScoreData is a player's per-category score.
type ScoreData struct {
	Combat  int `json:"cOMBAT"`
	Offense int `json:"offense"`
	Defense int `json:"defense"`
	Support int `json:"support"`
}

// WorldPosition is a player's position on the map, in centimeters.
type WorldPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Player is the full per-player record returned by GetPlayer and
// GetPlayers.
type Player struct {
	Name          string         `json:"name"`
	ClanTag       string         `json:"clanTag"`
	ID            string         `json:"iD"`
	Platform      PlayerPlatform `json:"platform"`
	EosID         string         `json:"eosId"`
	Level         int            `json:"level"`
	Team          PlayerTeam     `json:"team"`
	Role          PlayerRole     `json:"role"`
	Platoon       string         `json:"platoon"`
	Loadout       string         `json:"loadout"`
	Kills         int            `json:"kills"`
	Deaths        int            `json:"deaths"`
	ScoreData     ScoreData      `json:"scoreData"`
	WorldPosition WorldPosition  `json:"worldPosition"`
}

// PlayersResponse is the list form of Player.
type PlayersResponse struct {
	Players []Player `json:"players"`
}

// AdminLogEntry is a single line of the server's admin log.
type AdminLogEntry struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// AdminLogResponse is the result of GetAdminLog.
type AdminLogResponse struct {
	Entries []AdminLogEntry `json:"entries"`
}

// CommandEntry describes one console command in the command listing.
type CommandEntry struct {
	ID                string `json:"iD"`
	FriendlyName      string `json:"friendlyName"`
	IsClientSupported bool   `json:"isClientSupported"`
}

// CommandsResponse is the result of GetCommands.
type CommandsResponse struct {
	Entries []CommandEntry `json:"entries"`
}

// CommandParameter describes one dialogue parameter of a command. For
// "Combo" parameters, DisplayMember and ValueMember carry comma-separated
// option lists; for "Text" and "Number" they are empty.
type CommandParameter struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	ID            string `json:"iD"`
	DisplayMember string `json:"displayMember"`
	ValueMember   string `json:"valueMember"`
}

// CommandDetails is the result of GetCommandDetails.
type CommandDetails struct {
	Name               string             `json:"name"`
	Text               string             `json:"text"`
	Description        string             `json:"description"`
	DialogueParameters []CommandParameter `json:"dialogueParameters"`
}

// MapRotationEntry is one slot of the map rotation or sequence.
type MapRotationEntry struct {
	Name      string `json:"name"`
	GameMode  string `json:"gameMode"`
	TimeOfDay string `json:"timeOfDay"`
	ID        string `json:"iD"`
	Position  int    `json:"position"`
}

// MapRotationResponse is the result of GetMapRotation and GetMapSequence.
type MapRotationResponse struct {
	Maps []MapRotationEntry `json:"mAPS"`
}

// ServerSession is the result of GetServerSession.
type ServerSession struct {
	ServerName       string `json:"serverName"`
	MapName          string `json:"mapName"`
	GameMode         string `json:"gameMode"`
	PlayerCount      int    `json:"playerCount"`
	MaxPlayerCount   int    `json:"maxPlayerCount"`
	QueueCount       int    `json:"queueCount"`
	MaxQueueCount    int    `json:"maxQueueCount"`
	VipQueueCount    int    `json:"vipQueueCount"`
	MaxVipQueueCount int    `json:"maxVipQueueCount"`
}

// ServerConfig is the result of GetServerConfig.
type ServerConfig struct {
	ServerName         string   `json:"serverName"`
	BuildNumber        string   `json:"buildNumber"`
	BuildRevision      string   `json:"buildRevision"`
	SupportedPlatforms []string `json:"supportedPlatforms"`
	PasswordProtected  bool     `json:"passwordProtected"`
}

// BannedWordsResponse is the result of GetBannedWords.
type BannedWordsResponse struct {
	BannedWords []string `json:"bannedWords"`
}
