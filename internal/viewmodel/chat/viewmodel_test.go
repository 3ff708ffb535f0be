package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docstudio/internal/apiclient"
	models "docstudio/internal/domain/models/docgen"
)

type fakeAPI struct {
	rules      []models.RuleBase
	rulesErr   error
	result     *apiclient.GenerateResult
	genErr     error
	ruleCalls  int
	genCalls   int
	lastConfig models.AgentConfig
	lastInput  models.GenerationInput
}

func (f *fakeAPI) ListRules(context.Context) ([]models.RuleBase, error) {
	f.ruleCalls++
	return f.rules, f.rulesErr
}

func (f *fakeAPI) GenerateDocument(_ context.Context, input models.GenerationInput, cfg models.AgentConfig) (*apiclient.GenerateResult, error) {
	f.genCalls++
	f.lastInput, f.lastConfig = input, cfg
	return f.result, f.genErr
}

var claude = models.AgentConfig{Name: "CLAUDE", AgentID: "G5RGOUE1UQ", AgentAlias: "S8QDXXGDKG"}

func newTestViewModel(api *fakeAPI) *ViewModel {
	vm := NewViewModel(api, claude, slog.New(slog.NewTextHandler(io.Discard, nil)))
	vm.now = func() time.Time { return t0 }
	return vm
}

func fillForm(vm *ViewModel) {
	vm.SelectRule("rule1")
	vm.SetRequestJSON(`{"q":1}`)
	vm.SetResponseJSON(`{"r":2}`)
	vm.SetDescription("Describe me")
}

func TestViewModel_SubmitSuccess(t *testing.T) {
	api := &fakeAPI{rules: testRules, result: &apiclient.GenerateResult{DocData: "# Hello", DocID: "d1"}}
	vm := newTestViewModel(api)
	vm.LoadRules(context.Background())
	fillForm(vm)

	require.True(t, vm.Submit(context.Background()))
	assert.Equal(t, 1, api.genCalls)
	assert.Equal(t, "rule1", api.lastConfig.RuleID)
	assert.Equal(t, "S8QDXXGDKG", api.lastConfig.AgentAlias)
	assert.Equal(t, "Describe me", api.lastInput.Description)

	s := vm.Session()
	assert.Equal(t, "# Hello", s.Document)
	assert.Len(t, s.Messages, 2)
	assert.Len(t, s.History, 1)
	assert.True(t, s.OfferNavigation)

	assert.Equal(t, DestinationDocumentList, vm.GoToDocumentList())
	assert.False(t, vm.Session().OfferNavigation)
}

func TestViewModel_InvalidInputMakesNoCall(t *testing.T) {
	api := &fakeAPI{rules: testRules}
	vm := newTestViewModel(api)
	fillForm(vm)
	vm.SetRequestJSON("{invalid")

	assert.False(t, vm.Submit(context.Background()))
	assert.Zero(t, api.genCalls)
	assert.Contains(t, vm.Session().FieldErrors, FieldRequest)
}

func TestViewModel_SecondSubmitIsNoop(t *testing.T) {
	api := &fakeAPI{genErr: errors.New("gateway timeout")}
	vm := newTestViewModel(api)
	fillForm(vm)

	require.True(t, vm.Submit(context.Background()))
	assert.Equal(t, StateFailed, vm.Session().State)

	fillForm(vm)
	assert.False(t, vm.Submit(context.Background()))
	assert.Equal(t, 1, api.genCalls)
	assert.Equal(t, MsgOnePrompt, vm.Session().Notice.Text)
}

func TestViewModel_ResetReenablesSubmit(t *testing.T) {
	api := &fakeAPI{rules: testRules, result: &apiclient.GenerateResult{DocData: "x", DocID: "d"}}
	vm := newTestViewModel(api)
	fillForm(vm)
	require.True(t, vm.Submit(context.Background()))

	vm.StayHere(context.Background())
	assert.Equal(t, 1, api.ruleCalls)
	s := vm.Session()
	assert.False(t, s.HasPrompted)
	assert.Empty(t, s.Messages)
	assert.Equal(t, testRules, s.Rules)

	fillForm(vm)
	assert.True(t, vm.Submit(context.Background()))
	assert.Equal(t, 2, api.genCalls)
}

func TestViewModel_ReportSaved(t *testing.T) {
	vm := newTestViewModel(&fakeAPI{})
	vm.ReportSaved(errors.New("disk full"))
	assert.Equal(t, MsgSaveFailed, vm.Session().Notice.Text)
	vm.ReportSaved(nil)
	assert.Equal(t, MsgSaved, vm.Session().Notice.Text)
}
