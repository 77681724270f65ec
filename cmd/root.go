package cmd

import (
	"fmt"
	"github.com/ValentinKolb/dFarm/cmd/cell"
	"github.com/ValentinKolb/dFarm/cmd/comb"
	"github.com/ValentinKolb/dFarm/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "farm",
		Short: "embeddable hierarchical object store",
		Long: fmt.Sprintf(`dFarm (v%s)

An embeddable object store written in Go. Content is organised as
farm -> hive -> comb -> cell and kept in files, memory or SQLite,
optionally cached and synchronized per resource key.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dFarm",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dFarm v%s\n", Version)
		},
	}
	hivesCmd = &cobra.Command{
		Use:   "hives",
		Short: "Lists the hives of the farm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := util.BuildFarm(cmd)
			if err != nil {
				return err
			}
			defer f.Close()

			names, err := f.Hives()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(comb.CombCommands)
	RootCmd.AddCommand(cell.CellCommands)
	RootCmd.AddCommand(hivesCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupFarmFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
