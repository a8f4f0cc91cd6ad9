package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/JaimeStill/sysprompts/internal/sysprompts"
)

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04:05"
	shortIDLength  = 8
)

var separator = strings.Repeat("-", 80)

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func writeTable(w io.Writer, prompts []sysprompts.Prompt) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEFAULT\tMODEL\tTAGS\tUPDATED")
	for _, p := range prompts {
		model := p.Model()
		if model == "" {
			model = "Any"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(p.ID),
			p.Name,
			yesNo(p.IsDefault),
			model,
			strings.Join(p.Tags, ", "),
			p.UpdatedAt.Format(dateFormat),
		)
	}
	return tw.Flush()
}

func writeDetails(w io.Writer, p *sysprompts.Prompt) {
	fmt.Fprintf(w, "ID: %s\n", p.ID)
	fmt.Fprintf(w, "Name: %s\n", p.Name)
	if p.Description != nil {
		fmt.Fprintf(w, "Description: %s\n", *p.Description)
	}
	fmt.Fprintf(w, "Default: %s\n", yesNo(p.IsDefault))
	if m := p.Model(); m != "" {
		fmt.Fprintf(w, "Model: %s\n", m)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(w, "Created: %s\n", p.CreatedAt.Format(dateTimeFormat))
	fmt.Fprintf(w, "Updated: %s\n", p.UpdatedAt.Format(dateTimeFormat))
	fmt.Fprintf(w, "\nContent:\n%s\n", p.Content)
}
