package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/sysprompts/internal/sysprompts"
)

func (a *app) createCmd() *cobra.Command {
	var (
		content     contentFlags
		description string
		tags        []string
		model       string
		isDefault   bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new system prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, ok, err := content.read(cmd, a.stdin)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("content is required for creating a system prompt; use --content or --file")
			}

			p := sysprompts.New(args[0], body)
			if cmd.Flags().Changed("description") {
				p = p.WithDescription(description)
			}
			if cmd.Flags().Changed("tags") {
				p = p.WithTags(tags)
			}
			if cmd.Flags().Changed("model") {
				p = p.WithModelSpecific(model)
			}
			if isDefault {
				p = p.SetAsDefault()
			}

			created, err := a.prompts.Create(cmd.Context(), p)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Created system prompt: %s (ID: %s)\n", created.Name, created.ID)
			return nil
		},
	}

	content.register(cmd, "content of the system prompt")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description of the system prompt")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "tags to associate with the prompt")
	cmd.Flags().StringVar(&model, "model", "", "model family this prompt is optimized for")
	cmd.Flags().BoolVar(&isDefault, "default", false, "set as the default system prompt")
	return cmd
}
