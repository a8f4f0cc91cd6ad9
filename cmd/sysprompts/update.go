package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/sysprompts/internal/sysprompts"
)

func (a *app) updateCmd() *cobra.Command {
	var (
		content     contentFlags
		name        string
		description string
		tags        []string
		model       string
	)

	cmd := &cobra.Command{
		Use:   "update IDENTIFIER",
		Short: "Update an existing system prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := sysprompts.Resolve(cmd.Context(), a.prompts, args[0])
			if err != nil {
				return err
			}

			var changes sysprompts.UpdateCommand
			if cmd.Flags().Changed("name") {
				changes.Name = &name
			}
			if cmd.Flags().Changed("description") {
				changes.Description = &description
			}
			body, ok, err := content.read(cmd, a.stdin)
			if err != nil {
				return err
			}
			if ok {
				changes.Content = &body
			}
			if cmd.Flags().Changed("tags") {
				changes.Tags = tags
				if changes.Tags == nil {
					changes.Tags = []string{}
				}
			}
			if cmd.Flags().Changed("model") {
				changes.ModelSpecific = &model
			}

			if _, err := a.prompts.Update(cmd.Context(), p.ID, changes.Apply(*p)); err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Updated system prompt: %s\n", args[0])
			return nil
		},
	}

	content.register(cmd, "new content")
	cmd.Flags().StringVar(&name, "name", "", "new name for the prompt")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "new tags (replaces existing tags)")
	cmd.Flags().StringVar(&model, "model", "", "new model family")
	return cmd
}
