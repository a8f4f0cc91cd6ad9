package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/sysprompts/internal/sysprompts"
)

func (a *app) showCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show IDENTIFIER",
		Short: "Show details of a system prompt by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := sysprompts.Resolve(cmd.Context(), a.prompts, args[0])
			if err != nil {
				return err
			}
			a.show(p, raw)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print only the prompt content")
	return cmd
}

func (a *app) forModelCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "for-model MODEL",
		Short: "Show the prompt used for a model",
		Long:  `for-model prints the prompt whose model family overlaps MODEL, falling back to the default prompt.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.prompts.ForModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: no prompt for model %s and no default", sysprompts.ErrNotFound, args[0])
			}
			a.show(p, raw)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print only the prompt content")
	return cmd
}

func (a *app) show(p *sysprompts.Prompt, raw bool) {
	if raw {
		fmt.Fprintln(a.stdout, p.Content)
		return
	}
	writeDetails(a.stdout, p)
}
