package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2KU77B0N3S/hllrcon/cmd/admin"
	"github.com/2KU77B0N3S/hllrcon/cmd/exec"
	"github.com/2KU77B0N3S/hllrcon/cmd/info"
	"github.com/2KU77B0N3S/hllrcon/cmd/perf"
	"github.com/2KU77B0N3S/hllrcon/cmd/util"
)

const (
	Version = "1.2.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "hllrcon",
		Short: "Hell Let Loose RCON client",
		Long: fmt.Sprintf(`hllrcon (v%s)

A command-line client for the Hell Let Loose RCON console,
speaking both the JSON protocol and the legacy text protocol
over pooled, self-healing connections.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of hllrcon",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hllrcon v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(admin.AdminCommands)
	RootCmd.AddCommand(info.InfoCommands)
	RootCmd.AddCommand(exec.ExecCmd)
	RootCmd.AddCommand(exec.WatchCmd)
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("log level (trace, debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
