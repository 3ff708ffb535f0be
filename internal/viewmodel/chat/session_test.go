package chat

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	models "docstudio/internal/domain/models/docgen"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var t0 = time.Date(2024, 5, 1, 8, 30, 15, 0, time.UTC)

var testRules = []models.RuleBase{
	{RuleID: "rule1", RuleName: "Rule 1"},
	{RuleID: "rule2", RuleName: "Rule 2"},
}

// readySession has a rule and valid inputs
func readySession() Session {
	s := RulesLoaded(NewSession(), testRules, nil)
	s = SelectRule(s, "rule1")
	s = SetRequestJSON(s, `{"userId": 1}`)
	s = SetResponseJSON(s, `{"name": "Ada"}`)
	return SetDescription(s, "Get a user")
}

func TestSelectRule(t *testing.T) {
	s := SelectRule(NewSession(), "rule2")
	assert.Equal(t, StateRuleSelected, s.State)
	assert.Equal(t, "rule2", s.SelectedRuleID)

	s.HasPrompted = true
	s = SelectRule(s, "rule1")
	assert.Equal(t, "rule2", s.SelectedRuleID)
}

func TestBeginSubmit_Success(t *testing.T) {
	s, sub := BeginSubmit(readySession(), t0)
	require.NotNil(t, sub)

	assert.Equal(t, StateSubmitting, s.State)
	assert.True(t, s.Loading)
	assert.True(t, s.HasPrompted)
	assert.Empty(t, s.RequestJSON)
	assert.Empty(t, s.ResponseJSON)
	assert.Empty(t, s.Description)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, SenderUser, s.Messages[0].Sender)
	assert.Equal(t, "Get a user", s.Messages[0].Content)
	assert.Equal(t, `{"userId": 1}`, s.Messages[0].RequestJSON)

	assert.Equal(t, "rule1", sub.RuleID)
	assert.Equal(t, models.GenerationInput{Request: `{"userId": 1}`, Response: `{"name": "Ada"}`, Description: "Get a user"}, sub.Input)
}

func TestBeginSubmit_OnlyOncePerSession(t *testing.T) {
	s, sub := BeginSubmit(readySession(), t0)
	require.NotNil(t, sub)

	s = SetRequestJSON(s, `{}`)
	s = SetResponseJSON(s, `{}`)
	s = SetDescription(s, "again")
	before := s

	after, second := BeginSubmit(s, t0.Add(time.Second))
	assert.Nil(t, second)
	require.NotNil(t, after.Notice)
	assert.Equal(t, LevelInfo, after.Notice.Level)
	assert.Equal(t, MsgOnePrompt, after.Notice.Text)
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, before.Messages, after.Messages)
	assert.Equal(t, before.Loading, after.Loading)
}

func TestBeginSubmit_ValidatesBothJSONFields(t *testing.T) {
	s := SetRequestJSON(readySession(), "{invalid")
	s = SetResponseJSON(s, "   ")

	after, sub := BeginSubmit(s, t0)
	assert.Nil(t, sub)
	assert.Equal(t, StateRuleSelected, after.State)
	assert.False(t, after.HasPrompted)
	assert.False(t, after.Loading)
	assert.Empty(t, after.Messages)
	assert.Equal(t, MsgInvalidJSON, after.FieldErrors[FieldRequest])
	assert.Equal(t, MsgInvalidJSON, after.FieldErrors[FieldResponse])
	assert.Equal(t, MsgRequestInvalid, after.Notice.Text)
	assert.Equal(t, "{invalid", after.RequestJSON, "inputs are kept for correction")
}

func TestBeginSubmit_ResponseCheckedWhenRequestValid(t *testing.T) {
	s := SetResponseJSON(readySession(), `{"a":`)

	after, sub := BeginSubmit(s, t0)
	assert.Nil(t, sub)
	assert.NotContains(t, after.FieldErrors, FieldRequest)
	assert.Equal(t, MsgInvalidJSON, after.FieldErrors[FieldResponse])
	assert.Equal(t, MsgResponseInvalid, after.Notice.Text)
}

func TestBeginSubmit_ValidationOrder(t *testing.T) {
	tests := []struct {
		name       string
		session    func() Session
		wantNotice string
		wantState  State
	}{
		{
			name: "no rule",
			session: func() Session {
				s := readySession()
				s.SelectedRuleID = ""
				s.State = StateIdle
				return SetRequestJSON(s, "bad")
			},
			wantNotice: MsgSelectRule,
			wantState:  StateIdle,
		},
		{
			name:       "blank description",
			session:    func() Session { return SetDescription(readySession(), " \t") },
			wantNotice: MsgNeedDescription,
			wantState:  StateRuleSelected,
		},
		{
			name:       "scalar json is accepted",
			session:    func() Session { return SetRequestJSON(readySession(), `42`) },
			wantNotice: "",
			wantState:  StateSubmitting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after, _ := BeginSubmit(tt.session(), t0)
			assert.Equal(t, tt.wantState, after.State)
			if tt.wantNotice == "" {
				assert.Nil(t, after.Notice)
				return
			}
			require.NotNil(t, after.Notice)
			assert.Equal(t, tt.wantNotice, after.Notice.Text)
		})
	}
}

func TestEditingFieldClearsItsError(t *testing.T) {
	s := SetRequestJSON(readySession(), "{bad")
	s = SetResponseJSON(s, "{bad")
	s, _ = BeginSubmit(s, t0)
	require.Len(t, s.FieldErrors, 2)

	s = SetRequestJSON(s, "{}")
	assert.NotContains(t, s.FieldErrors, FieldRequest)
	assert.Contains(t, s.FieldErrors, FieldResponse)
}

func TestCompleteSubmit_Success(t *testing.T) {
	s, sub := BeginSubmit(readySession(), t0)
	s = CompleteSubmit(s, sub, "# Hello", "d1", nil, t0.Add(2*time.Second))

	assert.Equal(t, StateSucceeded, s.State)
	assert.False(t, s.Loading)
	assert.True(t, s.HasPrompted)
	assert.True(t, s.OfferNavigation)
	assert.Equal(t, "# Hello", s.Document)
	assert.Equal(t, "d1", s.DocID)

	require.Len(t, s.Messages, 2)
	assert.Equal(t, SenderUser, s.Messages[0].Sender)
	assert.Equal(t, SenderAI, s.Messages[1].Sender)
	assert.Equal(t, "Documentation generated successfully using Rule 1", s.Messages[1].Content)
	assert.Equal(t, "# Hello", s.Messages[1].DocContent)

	require.Len(t, s.History, 1)
	assert.Equal(t, "# Hello", s.History[0].DocContent)
	assert.Equal(t, "rule1", s.History[0].RuleID)
	assert.Equal(t, "Get a user", s.History[0].Description)
}

func TestCompleteSubmit_Failure(t *testing.T) {
	s, sub := BeginSubmit(readySession(), t0)
	s = CompleteSubmit(s, sub, "", "", errors.New("boom"), t0)

	assert.Equal(t, StateFailed, s.State)
	assert.False(t, s.Loading)
	assert.True(t, s.HasPrompted)
	assert.Len(t, s.Messages, 1)
	assert.Empty(t, s.History)
	assert.Equal(t, MsgGenerateFailed, s.Notice.Text)

	_, again := BeginSubmit(s, t0)
	assert.Nil(t, again)
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	s, sub := BeginSubmit(readySession(), t0)
	snapshot := len(s.Messages)

	_ = CompleteSubmit(s, sub, "# Hello", "d1", nil, t0)
	assert.Len(t, s.Messages, snapshot)
	assert.Empty(t, s.History)
}

func TestRulesLoadedFailure(t *testing.T) {
	s := RulesLoaded(NewSession(), nil, errors.New("down"))
	require.NotNil(t, s.Notice)
	assert.Equal(t, MsgRulesFailed, s.Notice.Text)
	assert.Empty(t, s.Rules)
}

func TestExport(t *testing.T) {
	s, file := Export(NewSession(), t0)
	assert.Nil(t, file)
	assert.Equal(t, LevelWarning, s.Notice.Level)

	s = OpenMarkdown(NewSession(), "# Saved")
	assert.True(t, s.EditMode)
	_, file = Export(s, t0)
	require.NotNil(t, file)
	assert.Equal(t, "documentation-2024-05-01T08-30-15.md", file.Name)
	assert.Equal(t, "# Saved", file.Content)
}

func TestUnknownRuleNameFallback(t *testing.T) {
	s := SelectRule(NewSession(), "ghost")
	s = SetRequestJSON(s, "{}")
	s = SetResponseJSON(s, "{}")
	s = SetDescription(s, "d")
	s, sub := BeginSubmit(s, t0)
	s = CompleteSubmit(s, sub, "x", "d", nil, t0)
	assert.Equal(t, "Documentation generated successfully using selected rule", s.Messages[1].Content)
}
