package admin

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	setAutoBalanceCmd = &cobra.Command{
		Use:   "set-autobalance [on|off]",
		Short: "Enable or disable team auto balancing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			if err := rcon.SetAutoBalance(cmd.Context(), enabled); err != nil {
				return err
			}
			fmt.Println("autobalance updated")
			return nil
		},
	}
	setMaxQueueCmd = &cobra.Command{
		Use:   "set-max-queue [count]",
		Short: "Set the join queue capacity (0-6)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePositiveInt(args[0], "count")
			if err != nil {
				return err
			}
			if err := rcon.SetMaxQueuedPlayers(cmd.Context(), n); err != nil {
				return err
			}
			fmt.Println("queue capacity updated")
			return nil
		},
	}
	setIdleKickCmd = &cobra.Command{
		Use:   "set-idle-kick [minutes]",
		Short: "Set the idle kick time in minutes, 0 to disable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePositiveInt(args[0], "minutes")
			if err != nil {
				return err
			}
			if err := rcon.SetIdleKickDuration(cmd.Context(), n); err != nil {
				return err
			}
			fmt.Println("idle kick duration updated")
			return nil
		},
	}
	setHighPingCmd = &cobra.Command{
		Use:   "set-high-ping [ms]",
		Short: "Set the high ping kick threshold in milliseconds, 0 to disable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePositiveInt(args[0], "ms")
			if err != nil {
				return err
			}
			if err := rcon.SetHighPingThreshold(cmd.Context(), n); err != nil {
				return err
			}
			fmt.Println("ping threshold updated")
			return nil
		},
	}
	setTeamSwitchCmd = &cobra.Command{
		Use:   "set-team-switch-cooldown [minutes]",
		Short: "Set the team switch cooldown in minutes, 0 for none",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePositiveInt(args[0], "minutes")
			if err != nil {
				return err
			}
			if err := rcon.SetTeamSwitchCooldown(cmd.Context(), n); err != nil {
				return err
			}
			fmt.Println("team switch cooldown updated")
			return nil
		},
	}
)

func init() {
	AdminCommands.AddCommand(setAutoBalanceCmd)
	AdminCommands.AddCommand(setMaxQueueCmd)
	AdminCommands.AddCommand(setIdleKickCmd)
	AdminCommands.AddCommand(setHighPingCmd)
	AdminCommands.AddCommand(setTeamSwitchCmd)
}

func parseOnOff(arg string) (bool, error) {
	switch arg {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		if b, err := strconv.ParseBool(arg); err == nil {
			return b, nil
		}
		return false, fmt.Errorf("expected on or off, got %q", arg)
	}
}
