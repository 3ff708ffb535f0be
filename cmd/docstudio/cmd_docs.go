package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"docstudio/internal/viewmodel"
	"docstudio/internal/viewmodel/doclist"
	"docstudio/internal/viewmodel/editor"
)

func newDocsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Browse and edit generated documents",
	}
	cmd.AddCommand(
		newDocsListCmd(a),
		newDocsShowCmd(a),
		newDocsEditCmd(a),
		newDocsGraphCmd(a),
	)
	return cmd
}

func newDocsListCmd(a *app) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prompt history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := doclist.New(a.client, a.logger)
			if err := list.ChangePage(cmd.Context(), page, size); err != nil {
				a.printNotice(list.State().Notice)
				return err
			}
			a.printHistory(list.State())
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", doclist.DefaultPage, "page number, starting at 1")
	cmd.Flags().IntVarP(&size, "size", "n", doclist.DefaultPageSize, "rows per page")
	return cmd
}

func (a *app) printHistory(s doclist.State) {
	if len(s.Rows) == 0 {
		fmt.Fprintln(a.out, "No documents found.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT ID\tPATH\tCREATED BY\tCREATED AT\tVERSION\tSTATUS\tRULE")
	for _, row := range s.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.DocID,
			row.Path,
			row.CreatedBy,
			row.CreatedAt,
			a.style(versionStyle, "v"+row.Version),
			a.statusTag(row.Status),
			doclist.ShortRuleID(row.RuleID),
		)
	}
	_ = tw.Flush()

	fmt.Fprintln(a.out, a.style(mutedStyle,
		fmt.Sprintf("Page %d of %d (%d documents)", s.Page, s.PageCount(), s.Total)))
}

func newDocsShowCmd(a *app) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "show <doc-id>",
		Short: "Print a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := editor.New(a.client, a.logger)
			ed.Open(cmd.Context(), routeFor(args[0], parent))
			s := ed.State()
			if s.LoadedDocID == "" {
				a.printNotice(s.Notice)
				return fmt.Errorf("document %s could not be loaded", args[0])
			}

			fmt.Fprintln(a.out, a.style(titleStyle, s.Name))
			fmt.Fprintln(a.out, a.style(mutedStyle, rule(len([]rune(s.Name)))))
			fmt.Fprintln(a.out, a.renderMarkdown(s.Buffer))
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "graph root to load alongside the document")
	return cmd
}

func newDocsEditCmd(a *app) *cobra.Command {
	var (
		file   string
		name   string
		parent string
	)

	cmd := &cobra.Command{
		Use:   "edit <doc-id>",
		Short: "Save new content as a revision of a document",
		Long: `Loads the document, replaces its content with the given file and saves
the result as a new revision. The display name is kept unless --name is set;
an empty --name resets it to "Untitled Document".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readSample(file)
			if err != nil {
				return err
			}

			ed := editor.New(a.client, a.logger)
			ed.Open(cmd.Context(), routeFor(args[0], parent))
			if ed.State().LoadedDocID == "" {
				a.printNotice(ed.State().Notice)
				return fmt.Errorf("document %s could not be loaded", args[0])
			}

			ed.SetBuffer(content)
			if cmd.Flags().Changed("name") {
				ed.BeginRename()
				ed.CommitRename(name)
			}
			if !ed.CanSave() {
				return fmt.Errorf("refusing to save empty content")
			}

			err = ed.Save(cmd.Context())
			a.printNotice(ed.State().Notice)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "markdown file with the new content (- for stdin)")
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&parent, "parent", "", "graph root")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDocsGraphCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <doc-id>",
		Short: "Print the revision graph around a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := editor.New(a.client, a.logger)
			ed.Open(cmd.Context(), doclist.EditRoute(args[0]))
			tree := ed.State().Tree
			if tree.Len() == 0 {
				return fmt.Errorf("no graph for document %s", args[0])
			}
			a.printTree(tree, args[0])
			return nil
		},
	}
	return cmd
}

func (a *app) printTree(tree *editor.Tree, current string) {
	tree.Walk(func(n editor.Node, depth int) bool {
		label := n.Name
		if label == "" {
			label = n.DocID
		}
		line := fmt.Sprintf("%s%s %s %s",
			strings.Repeat("  ", depth),
			label,
			a.style(versionStyle, "v"+n.Version),
			a.statusTag(n.Status),
		)
		if n.DocID != label {
			line += " " + a.style(mutedStyle, n.DocID)
		}
		if n.IsLatest() {
			line += " " + a.style(successStyle, "latest")
		}
		if n.DocID == current {
			line = a.style(titleStyle, "> ") + line
		} else {
			line = "  " + line
		}
		fmt.Fprintln(a.out, line)
		return true
	})
}

func routeFor(docID, parent string) viewmodel.Route {
	if parent == "" {
		return doclist.EditRoute(docID)
	}
	return viewmodel.Route{DocID: docID, ParentDocID: parent}
}
