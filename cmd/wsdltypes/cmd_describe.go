package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-wsdltypes/pkg/typetree"
)

type describeOptions struct {
	format        string
	maxDepth      int
	sharedCounter bool
	keepMarkup    bool
}

func newDescribeCmd(root *rootOptions) *cobra.Command {
	opts := describeOptions{}

	cmd := &cobra.Command{
		Use:   "describe [class...]",
		Short: "Resolve wrapper classes into type trees",
		Long: "Resolve wrapper classes into type trees. When no class is given and a terminal\n" +
			"is attached, the class is picked interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sources, err := loadSources(ctx, root.logger, root.catalogs)
			if err != nil {
				return err
			}

			classes := args
			if len(classes) == 0 {
				picked, err := newPicker().Pick(ctx, "Class to describe", sources.Classes())
				if err != nil {
					return err
				}
				classes = []string{picked}
			}

			counter := typetree.NewCounter()
			var descriptors []typetree.Descriptor
			for _, class := range classes {
				if !opts.sharedCounter {
					counter = typetree.NewCounter()
				}
				builder := typetree.NewBuilder(sources,
					typetree.WithLogger(root.logger),
					typetree.WithCounter(counter),
					typetree.WithMaxDepth(opts.maxDepth),
					typetree.WithKeepMarkup(opts.keepMarkup),
				)
				desc, err := builder.Build(ctx, class)
				if err != nil {
					var fe *typetree.FieldError
					if errors.As(err, &fe) {
						root.logger.Warn("field resolution failed",
							zap.String("class", fe.Class),
							zap.String("field", fe.Field),
							zap.Error(fe.Err))
					}
					return fmt.Errorf("describe %s: %w", class, err)
				}
				descriptors = append(descriptors, desc)
			}

			out := cmd.OutOrStdout()
			if opts.format == formatTree {
				for _, desc := range descriptors {
					writeTree(out, desc)
				}
				return nil
			}
			if len(descriptors) == 1 {
				return writeValue(out, opts.format, descriptors[0])
			}
			return writeValue(out, opts.format, descriptors)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTree, "output format: tree, json or yaml")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum wrapper nesting depth (0 uses the default)")
	cmd.Flags().BoolVar(&opts.sharedCounter, "shared-counter", true, "share array occurrence indexes across the described classes")
	cmd.Flags().BoolVar(&opts.keepMarkup, "keep-markup", false, "keep markup in field descriptions")

	return cmd
}
