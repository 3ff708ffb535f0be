package catalog

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"docstudio/internal/domain"
	models "docstudio/internal/domain/models/docgen"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Catalog holds the agent profiles and the default rule set
type Catalog struct {
	agents []AgentProfile
	rules  []models.RuleBase
	mu     sync.RWMutex
}

// Load reads the embedded agents.yaml and rules.yaml
func Load() (*Catalog, error) {
	agentsData, err := configFiles.ReadFile("config/agents.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read agents.yaml: %w", err)
	}
	rulesData, err := configFiles.ReadFile("config/rules.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read rules.yaml: %w", err)
	}
	return Parse(agentsData, rulesData)
}

// Parse builds a catalog from raw YAML documents
func Parse(agentsData, rulesData []byte) (*Catalog, error) {
	var af agentFile
	if err := yaml.Unmarshal(agentsData, &af); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agents: %w", err)
	}
	var rf ruleFile
	if err := yaml.Unmarshal(rulesData, &rf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
	}

	seen := make(map[string]bool, len(rf.Rules))
	for _, r := range rf.Rules {
		if r.RuleID == "" {
			return nil, fmt.Errorf("rule %q has no ruleId", r.RuleName)
		}
		if seen[r.RuleID] {
			return nil, fmt.Errorf("duplicate ruleId %q", r.RuleID)
		}
		seen[r.RuleID] = true
	}

	return &Catalog{agents: af.Agents, rules: rf.Rules}, nil
}

// Agents returns all agent profiles in file order
func (c *Catalog) Agents() []AgentProfile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]AgentProfile(nil), c.agents...)
}

// Agent returns the profile registered under name
func (c *Catalog) Agent(name string) (*AgentProfile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.agents {
		if c.agents[i].Name == name {
			agent := c.agents[i]
			return &agent, nil
		}
	}
	return nil, fmt.Errorf("agent %q: %w", name, domain.ErrNotFound)
}

// Resolve finds the agent for a request config. AgentID and AgentAlias,
// when supplied, must match the profile.
func (c *Catalog) Resolve(cfg models.AgentConfig) (*AgentProfile, error) {
	agent, err := c.Agent(cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown agent %q", domain.ErrValidation, cfg.Name)
	}
	if cfg.AgentID != "" && cfg.AgentID != agent.AgentID {
		return nil, fmt.Errorf("%w: agentId does not match agent %q", domain.ErrValidation, cfg.Name)
	}
	if cfg.AgentAlias != "" && cfg.AgentAlias != agent.AgentAlias {
		return nil, fmt.Errorf("%w: agentAlias does not match agent %q", domain.ErrValidation, cfg.Name)
	}
	return agent, nil
}

// AgentConfig returns the wire config that selects agent for ruleID
func (a *AgentProfile) AgentConfig(ruleID string) models.AgentConfig {
	return models.AgentConfig{
		Name:       a.Name,
		AgentID:    a.AgentID,
		AgentAlias: a.AgentAlias,
		RuleID:     ruleID,
	}
}

// Rules returns the default rule set in file order
func (c *Catalog) Rules() []models.RuleBase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.RuleBase(nil), c.rules...)
}
