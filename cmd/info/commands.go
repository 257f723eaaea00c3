package info

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/2KU77B0N3S/hllrcon/client"
)

var (
	playersCmd = &cobra.Command{
		Use:   "players",
		Short: "List all players currently on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := rcon.GetPlayers(cmd.Context())
			if err != nil {
				return err
			}

			table := newTable("Name", "ID", "Team", "Role", "Level", "Kills", "Deaths", "Squad")
			for _, p := range resp.Players {
				table.Append([]string{
					p.Name,
					p.ID,
					p.Team.String(),
					p.Role.String(),
					strconv.Itoa(p.Level),
					strconv.Itoa(p.Kills),
					strconv.Itoa(p.Deaths),
					p.Platoon,
				})
			}
			table.Render()
			return nil
		},
	}
	sessionCmd = &cobra.Command{
		Use:   "session",
		Short: "Show the current match: map, mode and player counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rcon.GetServerSession(cmd.Context())
			if err != nil {
				return err
			}

			table := newTable("Field", "Value")
			table.Append([]string{"Server", s.ServerName})
			table.Append([]string{"Map", s.MapName})
			table.Append([]string{"Mode", s.GameMode})
			table.Append([]string{"Players", fmt.Sprintf("%d/%d", s.PlayerCount, s.MaxPlayerCount)})
			table.Append([]string{"Queue", fmt.Sprintf("%d/%d", s.QueueCount, s.MaxQueueCount)})
			table.Append([]string{"VIP Queue", fmt.Sprintf("%d/%d", s.VipQueueCount, s.MaxVipQueueCount)})
			table.Render()
			return nil
		},
	}
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show the static server configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := rcon.GetServerConfig(cmd.Context())
			if err != nil {
				return err
			}

			table := newTable("Field", "Value")
			table.Append([]string{"Server", c.ServerName})
			table.Append([]string{"Build", fmt.Sprintf("%s (%s)", c.BuildNumber, c.BuildRevision)})
			table.Append([]string{"Platforms", strings.Join(c.SupportedPlatforms, ", ")})
			table.Append([]string{"Password", strconv.FormatBool(c.PasswordProtected)})
			table.Render()
			return nil
		},
	}
	rotationCmd = &cobra.Command{
		Use:   "rotation",
		Short: "Show the current map rotation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := rcon.GetMapRotation(cmd.Context())
			if err != nil {
				return err
			}
			renderMapList(resp.Maps)
			return nil
		},
	}
	sequenceCmd = &cobra.Command{
		Use:   "sequence",
		Short: "Show the current map sequence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := rcon.GetMapSequence(cmd.Context())
			if err != nil {
				return err
			}
			renderMapList(resp.Maps)
			return nil
		},
	}
	mapsCmd = &cobra.Command{
		Use:   "maps",
		Short: "List every map installed on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			maps, err := rcon.GetAvailableMaps(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range maps {
				fmt.Println(m)
			}
			return nil
		},
	}
	bannedWordsCmd = &cobra.Command{
		Use:   "banned-words",
		Short: "Show the chat word blocklist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := rcon.GetBannedWords(cmd.Context())
			if err != nil {
				return err
			}
			for _, w := range resp.BannedWords {
				fmt.Println(w)
			}
			return nil
		},
	}
	commandsCmd = &cobra.Command{
		Use:   "commands",
		Short: "List every command the server exposes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := rcon.GetCommands(cmd.Context())
			if err != nil {
				return err
			}

			table := newTable("ID", "Name", "Client Supported")
			for _, e := range resp.Entries {
				table.Append([]string{e.ID, e.FriendlyName, strconv.FormatBool(e.IsClientSupported)})
			}
			table.Render()
			return nil
		},
	}
)

// newTable creates a table with the shared rendering settings.
func newTable(headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	return table
}

func renderMapList(maps []client.MapRotationEntry) {
	table := newTable("Pos", "Map", "Mode", "Time of Day", "ID")
	for _, m := range maps {
		table.Append([]string{
			strconv.Itoa(m.Position),
			m.Name,
			m.GameMode,
			m.TimeOfDay,
			m.ID,
		})
	}
	table.Render()
}
