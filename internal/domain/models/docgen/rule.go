package docgen

import "time"

// RuleBase is a documentation-generation rule as published by the backend.
// Timestamps are unix milliseconds on the wire.
type RuleBase struct {
	RuleID          string `json:"ruleId" yaml:"ruleId"`
	RuleName        string `json:"ruleName" yaml:"ruleName"`
	RuleDescription string `json:"ruleDescription" yaml:"ruleDescription"`
	RulePath        string `json:"rulePath" yaml:"rulePath"`
	Status          string `json:"status" yaml:"status"`
	CreatedAt       int64  `json:"createdAt" yaml:"-"`
	UpdatedAt       int64  `json:"updatedAt" yaml:"-"`
	Team            string `json:"team" yaml:"team"`
	Project         string `json:"project" yaml:"project"`
	Division        string `json:"division" yaml:"division"`

	// Template is the rule body fed to the generator. Never sent to clients.
	Template string `json:"-" yaml:"template"`
}

// Rule is a locally managed rule (Rule Management screen).
type Rule struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
