package exec

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2KU77B0N3S/hllrcon/cmd/util"
	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

var (
	// ExecCmd sends a raw command to the server, bypassing the typed
	// command methods. Useful for commands the CLI has no wrapper for.
	ExecCmd = &cobra.Command{
		Use:   "exec [command] [body]",
		Short: "Send a raw command and print the response body",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bind command flags to viper
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}

			rcon, err := util.GetClient()
			if err != nil {
				return err
			}
			defer rcon.Close()

			body := ""
			if len(args) > 1 {
				body = args[1]
			}

			version, err := cmd.Flags().GetInt("command-version")
			if err != nil {
				return err
			}

			resp, err := rcon.Execute(cmd.Context(), args[0], version, body)
			if err != nil {
				return err
			}
			fmt.Println(resp)
			return nil
		},
	}

	// WatchCmd connects and prints server-initiated frames as they arrive.
	WatchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Connect and print server-initiated messages until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}

			rcon, err := util.GetClient()
			if err != nil {
				return err
			}
			defer rcon.Close()

			if err := rcon.Connect(cmd.Context()); err != nil {
				return err
			}

			for {
				select {
				case n := <-rcon.Notifications():
					fmt.Printf("[%s] %s\n", n.Name, n.ContentBody)
				case <-cmd.Context().Done():
					return nil
				}
			}
		},
	}
)

func init() {
	cobra.OnInitialize(util.InitClientConfig)

	util.SetupClientFlags(ExecCmd)
	ExecCmd.Flags().Int("command-version", common.ProtocolV2, util.WrapString("Version field to send in the command envelope"))

	util.SetupClientFlags(WatchCmd)
}
