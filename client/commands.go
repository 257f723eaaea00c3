package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

// v2Only marks commands the legacy console has no equivalent for.
func v2Only(name string) error {
	return fmt.Errorf("%w: %s requires protocol v2", common.ErrUnsupportedVersion, name)
}

// decode unmarshals a v2 JSON content body into T.
func decode[T any](name, body string) (*T, error) {
	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, &common.DecodeError{Reason: fmt.Sprintf("%s response: %v", name, err)}
	}
	return &out, nil
}

// swallowStatus converts failures with one of the given status codes into a
// false result, mirroring console commands whose error codes just mean "no
// such target".
func swallowStatus(err error, codes ...common.StatusCode) (bool, error) {
	if err == nil {
		return true, nil
	}
	var cmdErr *common.CommandError
	if errors.As(err, &cmdErr) {
		for _, code := range codes {
			if cmdErr.StatusCode == code {
				return false, nil
			}
		}
	}
	return false, err
}

// AddAdmin adds a player to an admin group. Groups are defined in the
// server's configuration file; the comment is usually the player's name.
func (c *Client) AddAdmin(ctx context.Context, playerID, adminGroup, comment string) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "AddAdmin", common.ProtocolV2, map[string]any{
			"PlayerId":   playerID,
			"AdminGroup": adminGroup,
			"Comment":    comment,
		})
		return err
	}
	_, err := c.Execute(ctx, "adminadd", common.ProtocolV1, fmt.Sprintf("%s %s %s", playerID, adminGroup, comment))
	return err
}

// RemoveAdmin removes a player from their admin group.
func (c *Client) RemoveAdmin(ctx context.Context, playerID string) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "RemoveAdmin", common.ProtocolV2, map[string]any{
			"PlayerId": playerID,
		})
		return err
	}
	_, err := c.Execute(ctx, "admindel", common.ProtocolV1, playerID)
	return err
}

// GetAdminLog retrieves admin log entries from the last secondsSpan
// seconds, optionally filtered. The legacy console only supports minute
// granularity and no structured entries.
func (c *Client) GetAdminLog(ctx context.Context, secondsSpan int, filter string) (*AdminLogResponse, error) {
	if secondsSpan < 0 {
		return nil, fmt.Errorf("seconds span must be non-negative, got %d", secondsSpan)
	}

	if c.cfg.Version == common.ProtocolV2 {
		body, err := c.Execute(ctx, "GetAdminLog", common.ProtocolV2, map[string]any{
			"LogBackTrackTime": secondsSpan,
			"Filters":          filter,
		})
		if err != nil {
			return nil, err
		}
		return decode[AdminLogResponse]("GetAdminLog", body)
	}

	body, err := c.Execute(ctx, "showlog", common.ProtocolV1, strconv.Itoa(secondsSpan/60))
	if err != nil {
		return nil, err
	}
	resp := &AdminLogResponse{}
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			resp.Entries = append(resp.Entries, AdminLogEntry{Message: line})
		}
	}
	return resp, nil
}

// ChangeMap switches to the given map after the server's 60 second map
// change countdown.
func (c *Client) ChangeMap(ctx context.Context, mapName string) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "ChangeMap", common.ProtocolV2, map[string]any{
			"MapName": mapName,
		})
		return err
	}
	_, err := c.Execute(ctx, "map", common.ProtocolV1, mapName)
	return err
}

// GetAvailableSectorNames lists the sector options of the current map, one
// slice per sector column.
func (c *Client) GetAvailableSectorNames(ctx context.Context) ([][]string, error) {
	if c.cfg.Version != common.ProtocolV2 {
		return nil, v2Only("GetAvailableSectorNames")
	}
	details, err := c.GetCommandDetails(ctx, "SetSectorLayout")
	if err != nil {
		return nil, err
	}
	params := details.DialogueParameters
	if len(params) < 5 {
		return nil, &common.DecodeError{Reason: "SetSectorLayout details carry fewer than 5 sector parameters"}
	}
	sectors := make([][]string, 5)
	for i := range sectors {
		if !strings.HasPrefix(params[i].ID, "Sector_") {
			return nil, &common.DecodeError{Reason: fmt.Sprintf("unexpected parameter %q in SetSectorLayout details", params[i].ID)}
		}
		sectors[i] = strings.Split(params[i].ValueMember, ",")
	}
	return sectors, nil
}

// SetSectorLayout immediately restarts the map with the given sectors.
func (c *Client) SetSectorLayout(ctx context.Context, sector1, sector2, sector3, sector4, sector5 string) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("SetSectorLayout")
	}
	_, err := c.Execute(ctx, "SetSectorLayout", common.ProtocolV2, map[string]any{
		"Sector_1": sector1,
		"Sector_2": sector2,
		"Sector_3": sector3,
		"Sector_4": sector4,
		"Sector_5": sector5,
	})
	return err
}

// AddMapToRotation inserts a map into the rotation at the given index.
func (c *Client) AddMapToRotation(ctx context.Context, mapName string, index int) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("AddMapToRotation")
	}
	_, err := c.Execute(ctx, "AddMapToRotation", common.ProtocolV2, map[string]any{
		"MapName": mapName,
		"Index":   index,
	})
	return err
}

// RemoveMapFromRotation removes the rotation entry at the given index.
func (c *Client) RemoveMapFromRotation(ctx context.Context, index int) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("RemoveMapFromRotation")
	}
	_, err := c.Execute(ctx, "RemoveMapFromRotation", common.ProtocolV2, map[string]any{
		"Index": index,
	})
	return err
}

// AddMapToSequence inserts a map into the sequence at the given index.
func (c *Client) AddMapToSequence(ctx context.Context, mapName string, index int) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("AddMapToSequence")
	}
	_, err := c.Execute(ctx, "AddMapToSequence", common.ProtocolV2, map[string]any{
		"MapName": mapName,
		"Index":   index,
	})
	return err
}

// RemoveMapFromSequence removes the sequence entry at the given index.
func (c *Client) RemoveMapFromSequence(ctx context.Context, index int) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("RemoveMapFromSequence")
	}
	_, err := c.Execute(ctx, "RemoveMapFromSequence", common.ProtocolV2, map[string]any{
		"Index": index,
	})
	return err
}

// MoveMapInSequence moves a sequence entry to a new position.
func (c *Client) MoveMapInSequence(ctx context.Context, oldIndex, newIndex int) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("MoveMapInSequence")
	}
	_, err := c.Execute(ctx, "MoveMapInSequence", common.ProtocolV2, map[string]any{
		"CurrentIndex": oldIndex,
		"NewIndex":     newIndex,
	})
	return err
}

// SetMapShuffleEnabled enables or disables shuffling of the map sequence.
func (c *Client) SetMapShuffleEnabled(ctx context.Context, enabled bool) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("SetMapShuffleEnabled")
	}
	_, err := c.Execute(ctx, "ShuffleMapSequence", common.ProtocolV2, map[string]any{
		"Enable": enabled,
	})
	return err
}

// GetAvailableMaps lists every map installed on the server.
func (c *Client) GetAvailableMaps(ctx context.Context) ([]string, error) {
	if c.cfg.Version == common.ProtocolV2 {
		details, err := c.GetCommandDetails(ctx, "AddMapToRotation")
		if err != nil {
			return nil, err
		}
		params := details.DialogueParameters
		if len(params) == 0 || params[0].ID != "MapName" {
			return nil, &common.DecodeError{Reason: "AddMapToRotation details carry no MapName parameter"}
		}
		return strings.Split(params[0].ValueMember, ","), nil
	}

	body, err := c.Execute(ctx, "get maps", common.ProtocolV1, nil)
	if err != nil {
		return nil, err
	}
	return parseLegacyList(body), nil
}

// GetCommands lists all commands the server exposes.
func (c *Client) GetCommands(ctx context.Context) (*CommandsResponse, error) {
	if c.cfg.Version != common.ProtocolV2 {
		return nil, v2Only("GetCommands")
	}
	body, err := c.Execute(ctx, "GetDisplayableCommands", common.ProtocolV2, nil)
	if err != nil {
		return nil, err
	}
	return decode[CommandsResponse]("GetDisplayableCommands", body)
}

// GetCommandDetails describes one command, including its dialogue
// parameters and their allowed values.
func (c *Client) GetCommandDetails(ctx context.Context, command string) (*CommandDetails, error) {
	if c.cfg.Version != common.ProtocolV2 {
		return nil, v2Only("GetCommandDetails")
	}
	body, err := c.Execute(ctx, "GetClientReferenceData", common.ProtocolV2, command)
	if err != nil {
		return nil, err
	}
	return decode[CommandDetails]("GetClientReferenceData", body)
}

// SetTeamSwitchCooldown sets the team switch cooldown in minutes, 0 for
// none.
func (c *Client) SetTeamSwitchCooldown(ctx context.Context, minutes int) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "SetTeamSwitchCooldown", common.ProtocolV2, map[string]any{
			"TeamSwitchTimer": minutes,
		})
		return err
	}
	_, err := c.Execute(ctx, "setteamswitchcooldown", common.ProtocolV1, strconv.Itoa(minutes))
	return err
}

// SetMaxQueuedPlayers sets the join queue capacity, between 0 and 6.
func (c *Client) SetMaxQueuedPlayers(ctx context.Context, num int) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "SetMaxQueuedPlayers", common.ProtocolV2, map[string]any{
			"MaxQueuedPlayers": num,
		})
		return err
	}
	_, err := c.Execute(ctx, "setmaxqueuedplayers", common.ProtocolV1, strconv.Itoa(num))
	return err
}

// SetIdleKickDuration sets the idle kick time in minutes, 0 to disable.
func (c *Client) SetIdleKickDuration(ctx context.Context, minutes int) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "SetIdleKickDuration", common.ProtocolV2, map[string]any{
			"IdleTimeoutMinutes": minutes,
		})
		return err
	}
	_, err := c.Execute(ctx, "setkickidletime", common.ProtocolV1, strconv.Itoa(minutes))
	return err
}

// SetWelcomeMessage sets the message shown on the deployment screen.
func (c *Client) SetWelcomeMessage(ctx context.Context, message string) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("SetWelcomeMessage")
	}
	_, err := c.Execute(ctx, "SendServerMessage", common.ProtocolV2, map[string]any{
		"Message": message,
	})
	return err
}

// GetPlayer retrieves detailed information about one online player.
func (c *Client) GetPlayer(ctx context.Context, playerID string) (*Player, error) {
	if c.cfg.Version == common.ProtocolV2 {
		body, err := c.Execute(ctx, "GetServerInformation", common.ProtocolV2, map[string]any{
			"Name":  "player",
			"Value": playerID,
		})
		if err != nil {
			return nil, err
		}
		return decode[Player]("GetServerInformation player", body)
	}

	body, err := c.Execute(ctx, "playerinfo", common.ProtocolV1, playerID)
	if err != nil {
		return nil, err
	}
	return parseLegacyPlayerInfo(body)
}

// GetPlayers retrieves all online players. On the legacy console only names
// and IDs are available.
func (c *Client) GetPlayers(ctx context.Context) (*PlayersResponse, error) {
	if c.cfg.Version == common.ProtocolV2 {
		body, err := c.Execute(ctx, "GetServerInformation", common.ProtocolV2, map[string]any{
			"Name":  "players",
			"Value": "",
		})
		if err != nil {
			return nil, err
		}
		return decode[PlayersResponse]("GetServerInformation players", body)
	}

	body, err := c.Execute(ctx, "get playerids", common.ProtocolV1, nil)
	if err != nil {
		return nil, err
	}
	return parseLegacyPlayerIDs(body), nil
}

// GetMapRotation retrieves the current map rotation.
func (c *Client) GetMapRotation(ctx context.Context) (*MapRotationResponse, error) {
	return serverInformation[MapRotationResponse](ctx, c, "maprotation", "GetMapRotation")
}

// GetMapSequence retrieves the current map sequence.
func (c *Client) GetMapSequence(ctx context.Context) (*MapRotationResponse, error) {
	return serverInformation[MapRotationResponse](ctx, c, "mapsequence", "GetMapSequence")
}

// GetServerSession retrieves the current session: map, player counts and
// queue usage.
func (c *Client) GetServerSession(ctx context.Context) (*ServerSession, error) {
	return serverInformation[ServerSession](ctx, c, "session", "GetServerSession")
}

// GetServerConfig retrieves the static server configuration.
func (c *Client) GetServerConfig(ctx context.Context) (*ServerConfig, error) {
	return serverInformation[ServerConfig](ctx, c, "serverconfig", "GetServerConfig")
}

// GetBannedWords retrieves the chat word blocklist.
func (c *Client) GetBannedWords(ctx context.Context) (*BannedWordsResponse, error) {
	return serverInformation[BannedWordsResponse](ctx, c, "bannedwords", "GetBannedWords")
}

// serverInformation is the shared GetServerInformation query path.
func serverInformation[T any](ctx context.Context, c *Client, key, label string) (*T, error) {
	if c.cfg.Version != common.ProtocolV2 {
		return nil, v2Only(label)
	}
	body, err := c.Execute(ctx, "GetServerInformation", common.ProtocolV2, map[string]any{
		"Name":  key,
		"Value": "",
	})
	if err != nil {
		return nil, err
	}
	return decode[T](label, body)
}

// Broadcast shows a message top-left on every player's screen.
func (c *Client) Broadcast(ctx context.Context, message string) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "ServerBroadcast", common.ProtocolV2, map[string]any{
			"Message": message,
		})
		return err
	}
	_, err := c.Execute(ctx, "broadcast", common.ProtocolV1, message)
	return err
}

// SetHighPingThreshold sets the kick threshold in milliseconds, 0 to
// disable.
func (c *Client) SetHighPingThreshold(ctx context.Context, ms int) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "SetHighPingThreshold", common.ProtocolV2, map[string]any{
			"HighPingThresholdMs": ms,
		})
		return err
	}
	_, err := c.Execute(ctx, "sethighping", common.ProtocolV1, strconv.Itoa(ms))
	return err
}

// MessagePlayer shows a message in the top right corner of one player's
// screen.
func (c *Client) MessagePlayer(ctx context.Context, playerID, message string) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("MessagePlayer")
	}
	_, err := c.Execute(ctx, "MessagePlayer", common.ProtocolV2, map[string]any{
		"Message":  message,
		"PlayerId": playerID,
	})
	return err
}

// KillPlayer kills a player, optionally showing them a reason. It returns
// false if the player is not on the server or already dead.
func (c *Client) KillPlayer(ctx context.Context, playerID, reason string) (bool, error) {
	var err error
	if c.cfg.Version == common.ProtocolV2 {
		_, err = c.Execute(ctx, "PunishPlayer", common.ProtocolV2, map[string]any{
			"PlayerId": playerID,
			"Reason":   reason,
		})
	} else {
		_, err = c.Execute(ctx, "punish", common.ProtocolV1, strings.TrimSpace(playerID+" "+reason))
	}
	return swallowStatus(err, common.StatusInternalError)
}

// KickPlayer kicks a player, showing them the reason. It returns false if
// the player is not on the server.
func (c *Client) KickPlayer(ctx context.Context, playerID, reason string) (bool, error) {
	var err error
	if c.cfg.Version == common.ProtocolV2 {
		_, err = c.Execute(ctx, "KickPlayer", common.ProtocolV2, map[string]any{
			"PlayerId": playerID,
			"Reason":   reason,
		})
	} else {
		_, err = c.Execute(ctx, "kick", common.ProtocolV1, fmt.Sprintf("%s %s", playerID, reason))
	}
	return swallowStatus(err, common.StatusBadRequest)
}

// BanPlayer bans a player, temporarily when durationHours is positive and
// permanently otherwise.
func (c *Client) BanPlayer(ctx context.Context, playerID, reason, adminName string, durationHours int) error {
	if c.cfg.Version == common.ProtocolV2 {
		if durationHours > 0 {
			_, err := c.Execute(ctx, "TemporaryBanPlayer", common.ProtocolV2, map[string]any{
				"PlayerId":  playerID,
				"Duration":  durationHours,
				"Reason":    reason,
				"AdminName": adminName,
			})
			return err
		}
		_, err := c.Execute(ctx, "PermanentBanPlayer", common.ProtocolV2, map[string]any{
			"PlayerId":  playerID,
			"Reason":    reason,
			"AdminName": adminName,
		})
		return err
	}

	if durationHours > 0 {
		_, err := c.Execute(ctx, "tempban", common.ProtocolV1,
			fmt.Sprintf("%s %d %s %s", playerID, durationHours, reason, adminName))
		return err
	}
	_, err := c.Execute(ctx, "permaban", common.ProtocolV1,
		fmt.Sprintf("%s %s %s", playerID, reason, adminName))
	return err
}

// RemoveTemporaryBan lifts a temporary ban. It returns false if the player
// is not temporarily banned.
func (c *Client) RemoveTemporaryBan(ctx context.Context, playerID string) (bool, error) {
	var err error
	if c.cfg.Version == common.ProtocolV2 {
		_, err = c.Execute(ctx, "RemoveTemporaryBan", common.ProtocolV2, map[string]any{
			"PlayerId": playerID,
		})
	} else {
		_, err = c.Execute(ctx, "pardontempban", common.ProtocolV1, playerID)
	}
	return swallowStatus(err, common.StatusBadRequest)
}

// RemovePermanentBan lifts a permanent ban. It returns false if the player
// is not permanently banned.
func (c *Client) RemovePermanentBan(ctx context.Context, playerID string) (bool, error) {
	var err error
	if c.cfg.Version == common.ProtocolV2 {
		_, err = c.Execute(ctx, "RemovePermanentBan", common.ProtocolV2, map[string]any{
			"PlayerId": playerID,
		})
	} else {
		_, err = c.Execute(ctx, "pardonpermaban", common.ProtocolV1, playerID)
	}
	return swallowStatus(err, common.StatusBadRequest)
}

// SetAutoBalance enables or disables team auto balancing.
func (c *Client) SetAutoBalance(ctx context.Context, enabled bool) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "SetAutoBalance", common.ProtocolV2, map[string]any{
			"EnableAutoBalance": enabled,
		})
		return err
	}
	_, err := c.Execute(ctx, "setautobalanceenabled", common.ProtocolV1, onOff(enabled))
	return err
}

// SetAutoBalanceThreshold sets the player count difference that triggers
// auto balancing.
func (c *Client) SetAutoBalanceThreshold(ctx context.Context, playerThreshold int) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "SetAutoBalanceThreshold", common.ProtocolV2, map[string]any{
			"AutoBalanceThreshold": playerThreshold,
		})
		return err
	}
	_, err := c.Execute(ctx, "setautobalancethreshold", common.ProtocolV1, strconv.Itoa(playerThreshold))
	return err
}

// SetVoteKick enables or disables vote kicking.
func (c *Client) SetVoteKick(ctx context.Context, enabled bool) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "SetVoteKick", common.ProtocolV2, map[string]any{
			"Enabled": enabled,
		})
		return err
	}
	_, err := c.Execute(ctx, "setvotekickenabled", common.ProtocolV1, onOff(enabled))
	return err
}

// ResetVoteKickThreshold restores the default vote kick thresholds.
func (c *Client) ResetVoteKickThreshold(ctx context.Context) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "ResetKickThreshold", common.ProtocolV2, nil)
		return err
	}
	_, err := c.Execute(ctx, "resetvotekickthreshold", common.ProtocolV1, nil)
	return err
}

// VoteKickThreshold pairs a player count with the votes needed to kick.
type VoteKickThreshold struct {
	PlayerCount int
	Votes       int
}

// SetVoteKickThreshold sets the vote kick thresholds per player count.
func (c *Client) SetVoteKickThreshold(ctx context.Context, thresholds []VoteKickThreshold) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("SetVoteKickThreshold")
	}
	parts := make([]string, 0, len(thresholds))
	for _, t := range thresholds {
		parts = append(parts, fmt.Sprintf("%d,%d", t.PlayerCount, t.Votes))
	}
	_, err := c.Execute(ctx, "SetVoteKickThreshold", common.ProtocolV2, map[string]any{
		"ThresholdValue": strings.Join(parts, ","),
	})
	return err
}

// AddBannedWords adds words to the chat blocklist.
func (c *Client) AddBannedWords(ctx context.Context, words []string) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "AddBannedWords", common.ProtocolV2, map[string]any{
			"BannedWords": strings.Join(words, ","),
		})
		return err
	}
	_, err := c.Execute(ctx, "addprofanity", common.ProtocolV1, strings.Join(words, " "))
	return err
}

// RemoveBannedWords removes words from the chat blocklist.
func (c *Client) RemoveBannedWords(ctx context.Context, words []string) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "RemoveBannedWords", common.ProtocolV2, map[string]any{
			"BannedWords": strings.Join(words, ","),
		})
		return err
	}
	_, err := c.Execute(ctx, "removeprofanity", common.ProtocolV1, strings.Join(words, " "))
	return err
}

// AddVipPlayer grants a player VIP queue access.
func (c *Client) AddVipPlayer(ctx context.Context, playerID, description string) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "AddVipPlayer", common.ProtocolV2, map[string]any{
			"PlayerId":    playerID,
			"Description": description,
		})
		return err
	}
	_, err := c.Execute(ctx, "vipadd", common.ProtocolV1, fmt.Sprintf("%s %s", playerID, description))
	return err
}

// RemoveVipPlayer revokes a player's VIP queue access.
func (c *Client) RemoveVipPlayer(ctx context.Context, playerID string) error {
	if c.cfg.Version == common.ProtocolV2 {
		_, err := c.Execute(ctx, "RemoveVipPlayer", common.ProtocolV2, map[string]any{
			"PlayerId": playerID,
		})
		return err
	}
	_, err := c.Execute(ctx, "vipdel", common.ProtocolV1, playerID)
	return err
}

// SetMatchTimer sets the match length in minutes for one game mode.
func (c *Client) SetMatchTimer(ctx context.Context, mode GameMode, minutes int) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("SetMatchTimer")
	}
	_, err := c.Execute(ctx, "SetMatchTimer", common.ProtocolV2, map[string]any{
		"GameMode":    string(mode),
		"MatchLength": minutes,
	})
	return err
}

// RemoveMatchTimer restores the default match length for one game mode.
func (c *Client) RemoveMatchTimer(ctx context.Context, mode GameMode) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("RemoveMatchTimer")
	}
	_, err := c.Execute(ctx, "RemoveMatchTimer", common.ProtocolV2, map[string]any{
		"GameMode": string(mode),
	})
	return err
}

// SetWarmupTimer sets the warmup length in minutes for one game mode.
func (c *Client) SetWarmupTimer(ctx context.Context, mode GameMode, minutes int) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("SetWarmupTimer")
	}
	_, err := c.Execute(ctx, "SetWarmupTimer", common.ProtocolV2, map[string]any{
		"GameMode":     string(mode),
		"WarmupLength": minutes,
	})
	return err
}

// RemoveWarmupTimer restores the default warmup length for one game mode.
func (c *Client) RemoveWarmupTimer(ctx context.Context, mode GameMode) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("RemoveWarmupTimer")
	}
	_, err := c.Execute(ctx, "RemoveWarmupTimer", common.ProtocolV2, map[string]any{
		"GameMode": string(mode),
	})
	return err
}

// SetDynamicWeatherToggle enables or disables dynamic weather on one map.
func (c *Client) SetDynamicWeatherToggle(ctx context.Context, mapID string, enable bool) error {
	if c.cfg.Version != common.ProtocolV2 {
		return v2Only("SetDynamicWeatherToggle")
	}
	_, err := c.Execute(ctx, "SetMapWeatherToggle", common.ProtocolV2, map[string]any{
		"MapId":  mapID,
		"Enable": enable,
	})
	return err
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
