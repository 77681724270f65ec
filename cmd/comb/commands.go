package comb

import (
	"fmt"
	"github.com/spf13/cobra"
	"sort"
	"strings"
)

var (
	createCmd = &cobra.Command{
		Use:   "create [id]",
		Short: "Adds a comb to the catalog (no-op if it exists)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := hive()
			if err != nil {
				return err
			}
			if err := h.Catalog().Create(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "created successfully")
			return nil
		},
	}
	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Adds a comb with a generated identifier to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := hive()
			if err != nil {
				return err
			}
			id, err := h.Catalog().Add()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [id]",
		Short: "Removes a comb from the catalog (the cells of the comb are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := hive()
			if err != nil {
				return err
			}
			if err := h.Catalog().Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted successfully")
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list [query]",
		Short: "Lists the combs matching the query (e.g. \"@owner='alice'\"), all if omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := hive()
			if err != nil {
				return err
			}
			query := strings.Join(args, "")
			combs, err := h.Combs(query)
			if err != nil {
				return err
			}
			for _, c := range combs {
				fmt.Fprintln(cmd.OutOrStdout(), c.ID())
			}
			return nil
		},
	}
	attrCmd = &cobra.Command{
		Use:   "attr [id] [name] [value]",
		Short: "Sets an attribute of a comb",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := hive()
			if err != nil {
				return err
			}
			if err := h.Catalog().AddAttribute(args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "attribute set successfully")
			return nil
		},
	}
	showCmd = &cobra.Command{
		Use:   "show [id]",
		Short: "Prints the attributes and cells of a comb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := hive()
			if err != nil {
				return err
			}
			attrs, err := h.Catalog().Attributes(args[0])
			if err != nil {
				return err
			}
			if len(attrs) == 0 {
				return fmt.Errorf("comb %q is not in the catalog of hive %q", args[0], h.Name())
			}
			names := make([]string, 0, len(attrs))
			for name := range attrs {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "@%-20s%s\n", name, attrs[name])
			}

			c, err := h.Comb(args[0])
			if err != nil {
				return err
			}
			cells, err := c.Cells()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cells=%s\n", strings.Join(cells, ", "))
			return nil
		},
	}
)
