package cell

import (
	"fmt"
	"github.com/ValentinKolb/dFarm/cmd/util"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/serializer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"os"
	"strings"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [comb] [cell]",
		Short: "Prints the binary content of a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cell(args[0], args[1])
			if err != nil {
				return err
			}
			value, err := c.Content()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "key=%s, found=%v, value=%s\n", c.Key(), len(value) > 0, value)
			return nil
		},
	}
	putCmd = &cobra.Command{
		Use:   "put [comb] [cell] [value]",
		Short: "Replaces the binary content of a cell ('-' reads the value from stdin)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cell(args[0], args[1])
			if err != nil {
				return err
			}
			value, err := readValue(cmd, args[2])
			if err != nil {
				return err
			}
			if err := c.Update(value); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "put successfully")
			return nil
		},
	}
	rmCmd = &cobra.Command{
		Use:   "rm [comb] [cell]",
		Short: "Removes the content of a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cell(args[0], args[1])
			if err != nil {
				return err
			}
			if err := c.Update(nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "removed successfully")
			return nil
		},
	}
	hasCmd = &cobra.Command{
		Use:   "has [comb] [cell]",
		Short: "Checks whether a cell holds content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cell(args[0], args[1])
			if err != nil {
				return err
			}
			ok, err := c.Exists()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "key=%s, exists=%v\n", c.Key(), ok)
			return nil
		},
	}
	docCmd = &cobra.Command{
		Use:   "doc [comb] [cell]",
		Short: "Prints the document stored in a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cell(args[0], args[1])
			if err != nil {
				return err
			}
			d, err := c.Document()
			if err != nil {
				return err
			}
			return printDocument(cmd.OutOrStdout(), d)
		},
	}
	putDocCmd = &cobra.Command{
		Use:   "put-doc [comb] [cell] [file]",
		Short: "Replaces the document of a cell with the content of file ('-' reads stdin), encoded as --format",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cell(args[0], args[1])
			if err != nil {
				return err
			}
			s, err := serializer.ByName(viper.GetString("format"))
			if err != nil {
				return err
			}
			raw, err := readFile(cmd, args[2])
			if err != nil {
				return err
			}
			d, err := s.Deserialize(raw)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", args[2], err)
			}
			if err := c.UpdateDocument(d); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "put successfully")
			return nil
		},
	}
	editCmd = &cobra.Command{
		Use:   "edit [comb] [cell] [directive...]",
		Short: "Applies edit directives to the document of a cell",
		Long: util.WrapString("Applies edit directives to the document of a cell. " +
			"Directives are add:NAME, addif:STEP, attr:NAME=VALUE, set:TEXT, remove, up and xpath:PATH, " +
			"e.g. 'edit c1 profile add:user attr:name=alice'."),
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cell(args[0], args[1])
			if err != nil {
				return err
			}
			directives, err := doc.ParseDirectives(args[2:])
			if err != nil {
				return err
			}
			if err := c.Modify(directives...); err != nil {
				return err
			}
			d, err := c.Document()
			if err != nil {
				return err
			}
			return printDocument(cmd.OutOrStdout(), d)
		},
	}
	lsCmd = &cobra.Command{
		Use:   "ls [comb]",
		Short: "Lists the cells of a comb holding content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := f.Hive(util.GetHive())
			if err != nil {
				return err
			}
			c, err := h.Comb(args[0])
			if err != nil {
				return err
			}
			names, err := c.Cells()
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

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// printDocument writes d to w in the configured format
func printDocument(w io.Writer, d *doc.Document) error {
	format := viper.GetString("format")
	if format == "" || format == "text" {
		_, err := fmt.Fprint(w, d.String())
		return err
	}
	s, err := serializer.ByName(format)
	if err != nil {
		return err
	}
	b, err := s.Serialize(d)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func readValue(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return []byte(arg), nil
}

func readFile(cmd *cobra.Command, path string) ([]byte, error) {
	if strings.TrimSpace(path) == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
