package admin

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	broadcastCmd = &cobra.Command{
		Use:   "broadcast [message]",
		Short: "Show a message top-left on every player's screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rcon.Broadcast(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("broadcast sent")
			return nil
		},
	}
	messageCmd = &cobra.Command{
		Use:   "message [player-id] [message]",
		Short: "Send a direct message to one player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rcon.MessagePlayer(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("message sent")
			return nil
		},
	}
	welcomeCmd = &cobra.Command{
		Use:   "welcome [message]",
		Short: "Set the welcome message shown on the deployment screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rcon.SetWelcomeMessage(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("welcome message set")
			return nil
		},
	}
	kickCmd = &cobra.Command{
		Use:   "kick [player-id] [reason]",
		Short: "Kick a player from the server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kicked, err := rcon.KickPlayer(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !kicked {
				fmt.Println("player not on the server")
				return nil
			}
			fmt.Println("player kicked")
			return nil
		},
	}
	killCmd = &cobra.Command{
		Use:   "kill [player-id] [reason]",
		Short: "Kill a player, showing them the reason",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			killed, err := rcon.KillPlayer(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !killed {
				fmt.Println("player not on the server or already dead")
				return nil
			}
			fmt.Println("player killed")
			return nil
		},
	}
	banCmd = &cobra.Command{
		Use:   "ban [player-id] [reason] [admin-name]",
		Short: "Ban a player, permanently unless --hours is given",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := cmd.Flags().GetInt("hours")
			if err != nil {
				return err
			}
			if err := rcon.BanPlayer(cmd.Context(), args[0], args[1], args[2], hours); err != nil {
				return err
			}
			if hours > 0 {
				fmt.Printf("player banned for %d hours\n", hours)
			} else {
				fmt.Println("player banned permanently")
			}
			return nil
		},
	}
	unbanCmd = &cobra.Command{
		Use:   "unban [player-id]",
		Short: "Lift a player's ban, temporary with --temp, permanent otherwise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			temp, err := cmd.Flags().GetBool("temp")
			if err != nil {
				return err
			}

			var lifted bool
			if temp {
				lifted, err = rcon.RemoveTemporaryBan(cmd.Context(), args[0])
			} else {
				lifted, err = rcon.RemovePermanentBan(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			if !lifted {
				fmt.Println("no matching ban found")
				return nil
			}
			fmt.Println("ban lifted")
			return nil
		},
	}
	mapCmd = &cobra.Command{
		Use:   "map [map-name]",
		Short: "Change the map after the 60 second countdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rcon.ChangeMap(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("map change scheduled")
			return nil
		},
	}
	vipAddCmd = &cobra.Command{
		Use:   "vip-add [player-id] [description]",
		Short: "Grant a player VIP queue access",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rcon.AddVipPlayer(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("vip added")
			return nil
		},
	}
	vipDelCmd = &cobra.Command{
		Use:   "vip-del [player-id]",
		Short: "Revoke a player's VIP queue access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rcon.RemoveVipPlayer(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("vip removed")
			return nil
		},
	}
)

func init() {
	banCmd.Flags().Int("hours", 0, "Ban duration in hours, 0 for permanent")
	unbanCmd.Flags().Bool("temp", false, "Lift a temporary instead of a permanent ban")
}

// parsePositiveInt is shared by the settings subcommands below.
func parsePositiveInt(arg, name string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number, got %q", name, arg)
	}
	return n, nil
}
