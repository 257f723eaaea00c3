package info

import (
	"github.com/spf13/cobra"

	"github.com/2KU77B0N3S/hllrcon/client"
	"github.com/2KU77B0N3S/hllrcon/cmd/util"
)

var (
	rcon *client.Client

	// InfoCommands represents the read-only query command group
	InfoCommands = &cobra.Command{
		Use:               "info",
		Short:             "Query server state: players, session, config, rotation",
		PersistentPreRunE: setupClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags to the info command
	util.SetupClientFlags(InfoCommands)

	// Add subcommands
	InfoCommands.AddCommand(playersCmd)
	InfoCommands.AddCommand(sessionCmd)
	InfoCommands.AddCommand(configCmd)
	InfoCommands.AddCommand(rotationCmd)
	InfoCommands.AddCommand(sequenceCmd)
	InfoCommands.AddCommand(mapsCmd)
	InfoCommands.AddCommand(bannedWordsCmd)
	InfoCommands.AddCommand(commandsCmd)
}

// setupClient initializes the RCON client for the info subcommands
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	rcon, err = util.GetClient()
	return err
}
