package cell

import (
	"github.com/ValentinKolb/dFarm/cmd/util"
	"github.com/ValentinKolb/dFarm/lib/farm"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
)

var (
	log = logger.GetLogger("cmd")

	f farm.IFarm

	// CellCommands represents the cell command group
	CellCommands = &cobra.Command{
		Use:                "cell",
		Short:              "Read and write the cells of a comb",
		PersistentPreRunE:  setupFarm,
		PersistentPostRunE: closeFarm,
	}
)

func init() {
	CellCommands.PersistentFlags().String("format", "text", util.WrapString("Format for printing and reading documents (text, yaml, json, cbor); text is read only"))

	// Add subcommands
	CellCommands.AddCommand(getCmd)
	CellCommands.AddCommand(putCmd)
	CellCommands.AddCommand(rmCmd)
	CellCommands.AddCommand(hasCmd)
	CellCommands.AddCommand(docCmd)
	CellCommands.AddCommand(putDocCmd)
	CellCommands.AddCommand(editCmd)
	CellCommands.AddCommand(lsCmd)
	CellCommands.AddCommand(perfTestCmd)
}

// setupFarm builds the farm described by the flags
func setupFarm(cmd *cobra.Command, _ []string) (err error) {
	f, err = util.BuildFarm(cmd)
	return err
}

func closeFarm(_ *cobra.Command, _ []string) error {
	return f.Close()
}

// cell resolves a cell of a comb in the configured hive
func cell(comb, name string) (farm.ICell, error) {
	h, err := f.Hive(util.GetHive())
	if err != nil {
		return nil, err
	}
	c, err := h.Comb(comb)
	if err != nil {
		return nil, err
	}
	return c.Cell(name)
}
