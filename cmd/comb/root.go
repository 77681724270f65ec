package comb

import (
	"github.com/ValentinKolb/dFarm/cmd/util"
	"github.com/ValentinKolb/dFarm/lib/farm"
	"github.com/spf13/cobra"
)

var (
	f farm.IFarm

	// CombCommands represents the comb command group
	CombCommands = &cobra.Command{
		Use:                "comb",
		Short:              "Manage the combs of a hive through its catalog",
		PersistentPreRunE:  setupFarm,
		PersistentPostRunE: closeFarm,
	}
)

func init() {
	// Add subcommands
	CombCommands.AddCommand(createCmd)
	CombCommands.AddCommand(addCmd)
	CombCommands.AddCommand(deleteCmd)
	CombCommands.AddCommand(listCmd)
	CombCommands.AddCommand(attrCmd)
	CombCommands.AddCommand(showCmd)
}

// setupFarm builds the farm described by the flags
func setupFarm(cmd *cobra.Command, _ []string) (err error) {
	f, err = util.BuildFarm(cmd)
	return err
}

func closeFarm(_ *cobra.Command, _ []string) error {
	return f.Close()
}

// hive returns the configured hive of the farm
func hive() (farm.IHive, error) {
	return f.Hive(util.GetHive())
}
