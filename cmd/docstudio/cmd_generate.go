package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"docstudio/internal/viewmodel/chat"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		ruleID       string
		requestFile  string
		responseFile string
		description  string
		saveDir      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate documentation for a request/response pair",
		Long: `Sends one generation request with the selected rule and prints the
generated markdown. Both sample files must contain valid JSON.

Example:
  docstudio generate --rule rule-api-reference \
    --request req.json --response resp.json \
    --description "Fetch a user by id" --save ./docs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if requestFile == "-" && responseFile == "-" {
				return fmt.Errorf("only one of --request and --response can read stdin")
			}
			request, err := readSample(requestFile)
			if err != nil {
				return err
			}
			response, err := readSample(responseFile)
			if err != nil {
				return err
			}

			vm := chat.NewViewModel(a.client, a.agent, a.logger)
			vm.LoadRules(cmd.Context())
			vm.SelectRule(ruleID)
			vm.SetRequestJSON(request)
			vm.SetResponseJSON(response)
			vm.SetDescription(description)

			sent := vm.Submit(cmd.Context())
			s := vm.Session()
			if !sent {
				a.printFieldErrors(s.FieldErrors)
				a.printNotice(s.Notice)
				return fmt.Errorf("nothing was sent")
			}
			if s.State == chat.StateFailed {
				a.printNotice(s.Notice)
				return fmt.Errorf("generation failed")
			}

			for _, m := range s.Messages {
				if m.Sender == chat.SenderAI {
					fmt.Fprintln(a.out, a.style(successStyle, m.Content))
				}
			}
			fmt.Fprintln(a.out, a.style(mutedStyle, "Document ID: "+s.DocID))
			fmt.Fprintln(a.out, a.renderMarkdown(s.Document))

			if saveDir != "" {
				a.saveExport(vm, saveDir)
			}
			if s.OfferNavigation {
				dest := vm.GoToDocumentList()
				fmt.Fprintln(a.out, a.style(mutedStyle,
					fmt.Sprintf("Saved to history (%s). Run `docstudio docs list` to browse it.", dest)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&ruleID, "rule", "r", "", "rule id (see `docstudio rules list`)")
	cmd.Flags().StringVar(&requestFile, "request", "", "file holding the request JSON sample (- for stdin)")
	cmd.Flags().StringVar(&responseFile, "response", "", "file holding the response JSON sample (- for stdin)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the endpoint does")
	cmd.Flags().StringVar(&saveDir, "save", "", "also write the markdown into this directory")
	return cmd
}

// readSample reads a JSON sample. An empty path yields an empty sample,
// which validation then rejects.
func readSample(path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := readAllStdin()
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read sample: %w", err)
	}
	return string(data), nil
}

func (a *app) saveExport(vm *chat.ViewModel, dir string) {
	file := vm.Export()
	if file == nil {
		a.printNotice(vm.Session().Notice)
		return
	}
	path := filepath.Join(dir, file.Name)
	err := os.MkdirAll(dir, 0755)
	if err == nil {
		err = os.WriteFile(path, []byte(file.Content), 0644)
	}
	vm.ReportSaved(err)
	a.printNotice(vm.Session().Notice)
	if err == nil {
		fmt.Fprintln(a.out, a.style(mutedStyle, path))
	}
}

func (a *app) printFieldErrors(fields map[string]string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.errOut, "  %s: %s\n", name, fields[name])
	}
}
