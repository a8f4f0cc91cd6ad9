package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/sysprompts/internal/sysprompts"
)

func (a *app) listCmd() *cobra.Command {
	var (
		tags     []string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all system prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				prompts []sysprompts.Prompt
				err     error
			)
			if cmd.Flags().Changed("tags") {
				prompts, err = a.prompts.SearchByTags(cmd.Context(), tags)
			} else {
				prompts, err = a.prompts.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			if len(prompts) == 0 {
				fmt.Fprintln(a.stdout, "No system prompts found.")
				return nil
			}

			if !detailed {
				return writeTable(a.stdout, prompts)
			}
			for i := range prompts {
				writeDetails(a.stdout, &prompts[i])
				fmt.Fprintln(a.stdout, separator)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "show only prompts with any of these tags")
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "show detailed information")
	return cmd
}
