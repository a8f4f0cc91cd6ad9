package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/sysprompts/internal/sysprompts"
)

func (a *app) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete IDENTIFIER",
		Short: "Delete a system prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := sysprompts.Resolve(cmd.Context(), a.prompts, args[0])
			if err != nil {
				return err
			}

			if !yes && !a.confirm(fmt.Sprintf("Are you sure you want to delete the system prompt '%s'? (y/N)", p.Name)) {
				fmt.Fprintln(a.stdout, "Cancelled.")
				return nil
			}

			if err := a.prompts.Delete(cmd.Context(), p.ID); err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Deleted system prompt: %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func (a *app) setDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default IDENTIFIER",
		Short: "Set a prompt as the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := sysprompts.Resolve(cmd.Context(), a.prompts, args[0])
			if err != nil {
				return err
			}
			if _, err := a.prompts.SetDefault(cmd.Context(), p.ID); err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Set '%s' as the default system prompt\n", p.Name)
			return nil
		},
	}
}

// confirm prints question and reports whether the reply starts with y.
func (a *app) confirm(question string) bool {
	fmt.Fprintln(a.stdout, question)
	line, _ := bufio.NewReader(a.stdin).ReadString('\n')
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
}
