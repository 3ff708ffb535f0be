package chat

import (
	"context"
	"log/slog"
	"time"

	"docstudio/internal/apiclient"
	models "docstudio/internal/domain/models/docgen"
)

// API is the part of the backend client the chat screen uses
type API interface {
	ListRules(ctx context.Context) ([]models.RuleBase, error)
	GenerateDocument(ctx context.Context, input models.GenerationInput, cfg models.AgentConfig) (*apiclient.GenerateResult, error)
}

// Destination is where the user asked to go next
type Destination string

const (
	DestinationNone         Destination = ""
	DestinationDocumentList Destination = "/prompts"
)

// ViewModel drives a Session against the backend.
// It is owned by a single goroutine.
type ViewModel struct {
	api     API
	agent   models.AgentConfig
	now     func() time.Time
	logger  *slog.Logger
	session Session
}

// NewViewModel creates a view-model that generates with agent.
// agent.RuleID is ignored; the selected rule is used instead.
func NewViewModel(api API, agent models.AgentConfig, logger *slog.Logger) *ViewModel {
	return &ViewModel{
		api:     api,
		agent:   agent,
		now:     time.Now,
		logger:  logger,
		session: NewSession(),
	}
}

// Session returns the current state
func (vm *ViewModel) Session() Session { return vm.session }

// LoadRules fetches the rule list
func (vm *ViewModel) LoadRules(ctx context.Context) {
	rules, err := vm.api.ListRules(ctx)
	if err != nil {
		vm.logger.Error("failed to fetch rule base", "error", err)
	}
	vm.session = RulesLoaded(vm.session, rules, err)
}

func (vm *ViewModel) SelectRule(ruleID string) { vm.session = SelectRule(vm.session, ruleID) }

func (vm *ViewModel) SetRequestJSON(v string) { vm.session = SetRequestJSON(vm.session, v) }

func (vm *ViewModel) SetResponseJSON(v string) { vm.session = SetResponseJSON(vm.session, v) }

func (vm *ViewModel) SetDescription(v string) { vm.session = SetDescription(vm.session, v) }

// Submit validates, sends one generation request and applies its outcome.
// It reports whether a request was sent.
func (vm *ViewModel) Submit(ctx context.Context) bool {
	next, sub := BeginSubmit(vm.session, vm.now())
	vm.session = next
	if sub == nil {
		return false
	}

	cfg := vm.agent
	cfg.RuleID = sub.RuleID

	vm.logger.Info("submitting generation", "rule_id", sub.RuleID, "agent", cfg.Name)
	result, err := vm.api.GenerateDocument(ctx, sub.Input, cfg)

	var docData, docID string
	if err != nil {
		vm.logger.Error("generation failed", "rule_id", sub.RuleID, "error", err)
	} else {
		docData, docID = result.DocData, result.DocID
	}
	vm.session = CompleteSubmit(vm.session, sub, docData, docID, err, vm.now())
	return true
}

// Reset discards the session and reloads the rule list
func (vm *ViewModel) Reset(ctx context.Context) {
	vm.session = NewSession()
	vm.LoadRules(ctx)
}

func (vm *ViewModel) OpenMarkdown(content string) { vm.session = OpenMarkdown(vm.session, content) }

func (vm *ViewModel) SetDocument(content string) { vm.session.Document = content }

// Export returns the markdown download for the buffer, or nil when blank
func (vm *ViewModel) Export() *ExportFile {
	next, file := Export(vm.session, vm.now())
	vm.session = next
	return file
}

// ReportSaved records whether writing an exported file succeeded
func (vm *ViewModel) ReportSaved(err error) {
	if err != nil {
		vm.logger.Error("failed to save documentation", "error", err)
		vm.session.Notice = &Notice{Level: LevelError, Text: MsgSaveFailed}
		return
	}
	vm.session.Notice = &Notice{Level: LevelSuccess, Text: MsgSaved}
}

// GoToDocumentList closes the navigation prompt and returns the list destination
func (vm *ViewModel) GoToDocumentList() Destination {
	vm.session = DismissNavigation(vm.session)
	return DestinationDocumentList
}

// StayHere closes the navigation prompt and starts over
func (vm *ViewModel) StayHere(ctx context.Context) {
	vm.Reset(ctx)
}

func (vm *ViewModel) ToggleEditMode()  { vm.session = ToggleEditMode(vm.session) }
func (vm *ViewModel) ToggleHistory()   { vm.session = ToggleHistory(vm.session) }
func (vm *ViewModel) ToggleLeftPanel() { vm.session = ToggleLeftPanel(vm.session) }
