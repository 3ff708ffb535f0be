// Package chat holds the chat screen state machine.
//
// Session is a plain value. The transition functions take a Session and return
// the next one without touching their input; ViewModel sequences them around
// the API calls.
package chat

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/tidwall/gjson"

	models "docstudio/internal/domain/models/docgen"
	"docstudio/internal/viewmodel"
)

// State is the position of a session in the submit flow
type State string

const (
	StateIdle         State = "idle"
	StateRuleSelected State = "ruleSelected"
	StateValidating   State = "validating"
	StateSubmitting   State = "submitting"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
)

// Sender tags a transcript message
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Field names used as FieldErrors keys
const (
	FieldRule        = "rule"
	FieldRequest     = "request"
	FieldResponse    = "response"
	FieldDescription = "description"
)

// Notice texts
const (
	MsgSelectRule      = "Please select a rule first"
	MsgInvalidJSON     = "Invalid JSON format"
	MsgRequestInvalid  = "Request JSON is invalid"
	MsgResponseInvalid = "Response JSON is invalid"
	MsgNeedDescription = "Please provide a description"
	MsgOnePrompt       = "You can only submit one prompt. Please refresh to start again."
	MsgGenerateFailed  = "Failed to get response. Please try again."
	MsgRulesFailed     = "Failed to fetch rule base"
	MsgOpened          = "Markdown content opened in editor"
	MsgNothingToSave   = "No content to save"
	MsgSaved           = "Documentation saved successfully"
	MsgSaveFailed      = "Failed to save documentation"
)

type (
	Level  = viewmodel.Level
	Notice = viewmodel.Notice
)

const (
	LevelInfo    = viewmodel.LevelInfo
	LevelSuccess = viewmodel.LevelSuccess
	LevelWarning = viewmodel.LevelWarning
	LevelError   = viewmodel.LevelError
)

// Message is one transcript entry. Immutable once appended.
type Message struct {
	ID           string
	Content      string
	Sender       Sender
	Timestamp    time.Time
	DocContent   string // generated markdown, AI messages only
	RuleID       string
	RequestJSON  string
	ResponseJSON string
}

// HistoryEntry records one completed generation
type HistoryEntry struct {
	ID           string
	RuleID       string
	RequestJSON  string
	ResponseJSON string
	Description  string
	Response     string
	DocContent   string
	Timestamp    time.Time
}

// Submission is what BeginSubmit hands to the caller to send
type Submission struct {
	RuleID string
	Input  models.GenerationInput
}

// ExportFile is a markdown download produced by Export
type ExportFile struct {
	Name    string
	Content string
}

// Session is the whole chat screen state
type Session struct {
	State State

	Rules          []models.RuleBase
	SelectedRuleID string

	RequestJSON  string
	ResponseJSON string
	Description  string
	FieldErrors  map[string]string

	Messages []Message
	History  []HistoryEntry

	// Document is the active markdown buffer
	Document string
	DocID    string

	Loading     bool
	HasPrompted bool

	// OfferNavigation is set after a successful generation
	OfferNavigation bool

	EditMode         bool
	HistoryVisible   bool
	LeftPanelVisible bool

	Notice *Notice
}

// NewSession returns the initial state
func NewSession() Session {
	return Session{
		State:            StateIdle,
		FieldErrors:      map[string]string{},
		EditMode:         true,
		LeftPanelVisible: true,
	}
}

// RulesLoaded stores a fetched rule list or reports the failure
func RulesLoaded(s Session, rules []models.RuleBase, err error) Session {
	if err != nil {
		s.Notice = &Notice{Level: LevelError, Text: MsgRulesFailed}
		return s
	}
	s.Rules = slices.Clone(rules)
	return s
}

// SelectRule picks the rule used for generation. Ignored once prompted.
func SelectRule(s Session, ruleID string) Session {
	if s.HasPrompted {
		return s
	}
	s.SelectedRuleID = ruleID
	if ruleID == "" {
		s.State = StateIdle
	} else if s.State == StateIdle {
		s.State = StateRuleSelected
	}
	s.FieldErrors = withoutField(s.FieldErrors, FieldRule)
	return s
}

// SetRequestJSON edits the request sample and clears its error
func SetRequestJSON(s Session, v string) Session {
	s.RequestJSON = v
	s.FieldErrors = withoutField(s.FieldErrors, FieldRequest)
	return s
}

// SetResponseJSON edits the response sample and clears its error
func SetResponseJSON(s Session, v string) Session {
	s.ResponseJSON = v
	s.FieldErrors = withoutField(s.FieldErrors, FieldResponse)
	return s
}

// SetDescription edits the free-text description and clears its error
func SetDescription(s Session, v string) Session {
	s.Description = v
	s.FieldErrors = withoutField(s.FieldErrors, FieldDescription)
	return s
}

// BeginSubmit validates the inputs and, when they pass, moves to Submitting.
// The returned Submission is nil when nothing should be sent.
func BeginSubmit(s Session, now time.Time) (Session, *Submission) {
	if s.HasPrompted {
		s.Notice = &Notice{Level: LevelInfo, Text: MsgOnePrompt}
		return s, nil
	}

	s.State = StateValidating
	if fields, notice := validateInputs(&s); len(fields) > 0 {
		s.FieldErrors = fields
		s.Notice = &Notice{Level: LevelError, Text: notice}
		s.State = StateRuleSelected
		if s.SelectedRuleID == "" {
			s.State = StateIdle
		}
		return s, nil
	}

	sub := &Submission{
		RuleID: s.SelectedRuleID,
		Input: models.GenerationInput{
			Request:     s.RequestJSON,
			Response:    s.ResponseJSON,
			Description: s.Description,
		},
	}

	s.Messages = appendMessage(s.Messages, Message{
		ID:           messageID(now, 0),
		Content:      s.Description,
		Sender:       SenderUser,
		Timestamp:    now,
		RuleID:       s.SelectedRuleID,
		RequestJSON:  s.RequestJSON,
		ResponseJSON: s.ResponseJSON,
	})
	s.RequestJSON, s.ResponseJSON, s.Description = "", "", ""
	s.FieldErrors = map[string]string{}
	s.Loading = true
	s.HasPrompted = true
	s.Notice = nil
	s.State = StateSubmitting
	return s, sub
}

// CompleteSubmit applies the outcome of the generation call for sub
func CompleteSubmit(s Session, sub *Submission, docData, docID string, err error, now time.Time) Session {
	s.Loading = false

	if err != nil {
		s.Notice = &Notice{Level: LevelError, Text: MsgGenerateFailed}
		s.State = StateFailed
		return s
	}

	reply := fmt.Sprintf("Documentation generated successfully using %s", ruleName(s.Rules, sub.RuleID))
	s.Messages = appendMessage(s.Messages, Message{
		ID:         messageID(now, 1),
		Content:    reply,
		Sender:     SenderAI,
		Timestamp:  now,
		DocContent: docData,
	})
	s.Document = docData
	s.DocID = docID

	history := slices.Clone(s.History)
	s.History = append(history, HistoryEntry{
		ID:           messageID(now, 0),
		RuleID:       sub.RuleID,
		RequestJSON:  sub.Input.Request,
		ResponseJSON: sub.Input.Response,
		Description:  sub.Input.Description,
		Response:     reply,
		DocContent:   docData,
		Timestamp:    now,
	})

	s.OfferNavigation = true
	s.Notice = nil
	s.State = StateSucceeded
	return s
}

// OpenMarkdown loads stored content into the buffer in edit mode
func OpenMarkdown(s Session, content string) Session {
	s.Document = content
	s.EditMode = true
	s.Notice = &Notice{Level: LevelSuccess, Text: MsgOpened}
	return s
}

// Export builds the markdown download for the buffer. No file for a blank buffer.
func Export(s Session, now time.Time) (Session, *ExportFile) {
	if strings.TrimSpace(s.Document) == "" {
		s.Notice = &Notice{Level: LevelWarning, Text: MsgNothingToSave}
		return s, nil
	}
	stamp := strings.ReplaceAll(now.UTC().Format("2006-01-02T15:04:05"), ":", "-")
	return s, &ExportFile{
		Name:    "documentation-" + stamp + ".md",
		Content: s.Document,
	}
}

// DismissNavigation hides the post-generation prompt
func DismissNavigation(s Session) Session {
	s.OfferNavigation = false
	return s
}

func ToggleEditMode(s Session) Session {
	s.EditMode = !s.EditMode
	return s
}

func ToggleHistory(s Session) Session {
	s.HistoryVisible = !s.HistoryVisible
	return s
}

func ToggleLeftPanel(s Session) Session {
	s.LeftPanelVisible = !s.LeftPanelVisible
	return s
}

var errInvalidJSON = errors.New(MsgInvalidJSON)

// submitInput mirrors the validated fields; json tags become FieldErrors keys
type submitInput struct {
	Rule        string `json:"rule"`
	Request     string `json:"request"`
	Response    string `json:"response"`
	Description string `json:"description"`
}

// validateInputs checks every field and returns the per-field errors plus the
// notice for the first failure in rule, request, response, description order.
func validateInputs(s *Session) (map[string]string, string) {
	in := submitInput{
		Rule:        s.SelectedRuleID,
		Request:     s.RequestJSON,
		Response:    s.ResponseJSON,
		Description: s.Description,
	}
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Rule, validation.By(notBlank(MsgSelectRule))),
		validation.Field(&in.Request, validation.By(validJSON)),
		validation.Field(&in.Response, validation.By(validJSON)),
		validation.Field(&in.Description, validation.By(notBlank(MsgNeedDescription))),
	)

	var errs validation.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return nil, ""
	}

	fields := make(map[string]string, len(errs))
	for name, fieldErr := range errs {
		fields[name] = fieldErr.Error()
	}

	switch {
	case errs[FieldRule] != nil:
		return fields, MsgSelectRule
	case errs[FieldRequest] != nil:
		return fields, MsgRequestInvalid
	case errs[FieldResponse] != nil:
		return fields, MsgResponseInvalid
	default:
		return fields, MsgNeedDescription
	}
}

// validJSON accepts any syntactically valid JSON value; blank is invalid
func validJSON(value interface{}) error {
	v, _ := value.(string)
	if strings.TrimSpace(v) == "" || !gjson.Valid(v) {
		return errInvalidJSON
	}
	return nil
}

func notBlank(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		v, _ := value.(string)
		if strings.TrimSpace(v) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

func ruleName(rules []models.RuleBase, id string) string {
	for _, r := range rules {
		if r.RuleID == id {
			return r.RuleName
		}
	}
	return "selected rule"
}

func appendMessage(msgs []Message, m Message) []Message {
	return append(slices.Clone(msgs), m)
}

func withoutField(fields map[string]string, name string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if k != name {
			out[k] = v
		}
	}
	return out
}

func messageID(now time.Time, offset int64) string {
	return strconv.FormatInt(now.UnixMilli()+offset, 10)
}
