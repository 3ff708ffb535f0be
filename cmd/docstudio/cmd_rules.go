package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"docstudio/internal/domain"
	"docstudio/internal/viewmodel/rules"
)

func newRulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show generation rules",
	}
	cmd.AddCommand(newRulesListCmd(a), newRulesDraftCmd(a))
	return cmd
}

func newRulesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the rules published by the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := rules.NewManager(a.client, a.logger)
			if err := m.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("failed to fetch rule base: %w", err)
			}

			catalog := m.Catalog()
			if len(catalog) == 0 {
				fmt.Fprintln(a.out, "No rules published.")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "RULE ID\tNAME\tSTATUS\tDESCRIPTION")
			for _, r := range catalog {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.RuleID, r.RuleName, r.Status, r.RuleDescription)
			}
			return tw.Flush()
		},
	}
}

// newRulesDraftCmd exercises local rule management. Local rules are never
// sent to the backend and do not outlive the command.
func newRulesDraftCmd(a *app) *cobra.Command {
	var in rules.RuleInput

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Validate a local rule draft and show the local rule list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := rules.NewManager(a.client, a.logger)
			if _, err := m.Add(in); err != nil {
				var fe *domain.FieldError
				if errors.As(err, &fe) {
					a.printFieldErrors(fe.Fields)
				}
				return err
			}
			a.printNotice(m.Notice())

			tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION\tUPDATED")
			for _, r := range m.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Description, r.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "rule name")
	cmd.Flags().StringVar(&in.Description, "description", "", "rule description")
	cmd.Flags().StringVar(&in.Content, "content", "", "rule content")
	return cmd
}
