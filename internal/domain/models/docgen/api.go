package docgen

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// Request/response envelopes for the JSON-over-POST routes.
// Every request body carries a caller-generated requestId used for tracing.

const (
	RouteRuleBase      = "/get-rule-base"
	RouteGenerateDocs  = "/generate-docs"
	RoutePromptHistory = "/get-prompt-history"
	RouteGetDocs       = "/get-docs"
	RouteUpdateDocs    = "/update-docs"
	RouteGraphDoc      = "/get-graph-doc"
)

// Envelope is embedded in every request body.
type Envelope struct {
	RequestID RequestID `json:"requestId"`
}

// RequestID is the caller's clock in unix milliseconds, sent as a JSON
// string. Numeric ids from older callers are accepted on decode.
type RequestID string

// NewRequestID formats t as a request id
func NewRequestID(t time.Time) RequestID {
	return RequestID(strconv.FormatInt(t.UnixMilli(), 10))
}

func (id *RequestID) UnmarshalJSON(data []byte) error {
	v := gjson.ParseBytes(data)
	switch v.Type {
	case gjson.String:
		*id = RequestID(v.Str)
	case gjson.Number:
		*id = RequestID(v.Raw)
	case gjson.Null:
		*id = ""
	default:
		return fmt.Errorf("requestId: want string or number, got %s", v.Type)
	}
	return nil
}

type RuleBaseRequest struct {
	Envelope
}

type RuleBaseResponse struct {
	Data []RuleBase `json:"data"`
}

// GenerationInput is the user-supplied part of a generation request.
type GenerationInput struct {
	Request     string `json:"request"`
	Response    string `json:"response"`
	Description string `json:"description"`
}

// AgentConfig selects the generation agent and rule.
type AgentConfig struct {
	Name       string `json:"name"`
	AgentID    string `json:"agentId"`
	AgentAlias string `json:"agentAlias"`
	RuleID     string `json:"ruleId"`
}

type GenerateDocsRequest struct {
	Envelope
	Data   GenerationInput `json:"data"`
	Config AgentConfig     `json:"config"`
}

type GenerateDocsResponse struct {
	DocData string `json:"docData"`
	DocID   string `json:"docId"`
}

// PromptHistoryRequest pages history. Offset is the zero-based page index.
type PromptHistoryRequest struct {
	Envelope
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type PromptHistoryResponse struct {
	HistoryList []PromptDocument `json:"historyList"`
	Total       int              `json:"total"`
}

type GetDocRequest struct {
	Envelope
	DocID string `json:"docId"`
}

type GetDocResponse struct {
	DocData string `json:"docData"`
	Name    string `json:"name,omitempty"`
}

// UpdateDocRequest saves a document. An empty DocID creates a new graph root.
type UpdateDocRequest struct {
	Envelope
	DocID   string `json:"docId,omitempty"`
	DocData string `json:"docData"`
	Name    string `json:"name"`
}

type GraphDocRequest struct {
	Envelope
	DocID string `json:"docId"`
}

type GraphDocResponse struct {
	Node DocNode `json:"node"`
}
