package admin

import (
	"github.com/spf13/cobra"

	"github.com/2KU77B0N3S/hllrcon/client"
	"github.com/2KU77B0N3S/hllrcon/cmd/util"
)

var (
	rcon *client.Client

	// AdminCommands represents the moderation command group
	AdminCommands = &cobra.Command{
		Use:               "admin",
		Short:             "Moderate the server: broadcasts, kicks, bans, map changes",
		PersistentPreRunE: setupClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags to the admin command
	util.SetupClientFlags(AdminCommands)

	// Add subcommands
	AdminCommands.AddCommand(broadcastCmd)
	AdminCommands.AddCommand(messageCmd)
	AdminCommands.AddCommand(welcomeCmd)
	AdminCommands.AddCommand(kickCmd)
	AdminCommands.AddCommand(killCmd)
	AdminCommands.AddCommand(banCmd)
	AdminCommands.AddCommand(unbanCmd)
	AdminCommands.AddCommand(mapCmd)
	AdminCommands.AddCommand(vipAddCmd)
	AdminCommands.AddCommand(vipDelCmd)
}

// setupClient initializes the RCON client for the admin subcommands
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	rcon, err = util.GetClient()
	return err
}
