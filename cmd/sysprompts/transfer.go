package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/sysprompts/internal/sysprompts"
)

func (a *app) importCmd() *cobra.Command {
	var (
		description string
		tags        []string
		model       string
	)

	cmd := &cobra.Command{
		Use:   "import FILE NAME",
		Short: "Import a system prompt from a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.prompts.ImportFromFile(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			var changes sysprompts.UpdateCommand
			if cmd.Flags().Changed("description") {
				changes.Description = &description
			}
			if cmd.Flags().Changed("tags") {
				changes.Tags = tags
			}
			if cmd.Flags().Changed("model") {
				changes.ModelSpecific = &model
			}

			updated, err := a.prompts.Update(cmd.Context(), p.ID, changes.Apply(*p))
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Imported system prompt: %s (ID: %s)\n", updated.Name, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "description for the imported prompt")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "tags to associate with the prompt")
	cmd.Flags().StringVar(&model, "model", "", "model family this prompt is optimized for")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export IDENTIFIER FILE",
		Short: "Export a system prompt's content to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := sysprompts.Resolve(cmd.Context(), a.prompts, args[0])
			if err != nil {
				return err
			}
			if err := a.prompts.ExportToFile(cmd.Context(), p.ID, args[1]); err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Exported system prompt '%s' to %s\n", p.Name, args[1])
			return nil
		},
	}
}
