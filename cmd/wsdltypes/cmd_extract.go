package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-wsdltypes/pkg/typetree"
)

func newExtractCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "extract <doc>",
		Short: "Parse a field documentation comment and print its annotation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ann := typetree.ExtractAnnotation(strings.Join(args, " "))
			return writeValue(cmd.OutOrStdout(), format, ann)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")

	return cmd
}
