package docgen

import "time"

// PromptRecord is one stored generation request and its outcome.
type PromptRecord struct {
	ID           string    `json:"id" db:"id"`
	DocID        string    `json:"doc_id" db:"doc_id"`
	RuleID       string    `json:"rule_id" db:"rule_id"`
	RequestJSON  string    `json:"request_json" db:"request_json"`
	ResponseJSON string    `json:"response_json" db:"response_json"`
	Description  string    `json:"description" db:"description"`
	AgentName    string    `json:"agent_name" db:"agent_name"`
	CreatedBy    string    `json:"created_by" db:"created_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PromptDocument is a prompt-history row as listed on the wire.
type PromptDocument struct {
	DocID     string `json:"docId"`
	Path      string `json:"path"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
	Version   string `json:"version"`
	Status    string `json:"status"`
	RuleID    string `json:"ruleId,omitempty"`
}
