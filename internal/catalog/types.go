package catalog

import (
	"gopkg.in/yaml.v3"

	models "docstudio/internal/domain/models/docgen"
)

// AgentProfile describes a generation agent
type AgentProfile struct {
	// Name is the catalog key (set during YAML unmarshaling)
	Name string `yaml:"-" json:"name"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	AgentID     string `yaml:"agent_id" json:"agent_id"`
	AgentAlias  string `yaml:"agent_alias" json:"agent_alias"`
	Provider    string `yaml:"provider" json:"provider"`
	Model       string `yaml:"model" json:"model"`
	System      string `yaml:"system" json:"system"`
}

// agentFile is the on-disk layout of agents.yaml
type agentFile struct {
	Agents []AgentProfile `yaml:"-"` // Ordered slice, populated by custom unmarshaler
}

// UnmarshalYAML preserves the agent order from the YAML file
func (f *agentFile) UnmarshalYAML(node *yaml.Node) error {
	var m struct {
		Agents map[string]AgentProfile `yaml:"agents"`
	}
	if err := node.Decode(&m); err != nil {
		return err
	}

	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value != "agents" {
			continue
		}
		agentsNode := node.Content[i+1]
		// agentsNode.Content alternates: key, value, key, value...
		for j := 0; j < len(agentsNode.Content); j += 2 {
			name := agentsNode.Content[j].Value
			if agent, ok := m.Agents[name]; ok {
				agent.Name = name
				f.Agents = append(f.Agents, agent)
			}
		}
		break
	}

	return nil
}

// ruleFile is the on-disk layout of rules.yaml
type ruleFile struct {
	Rules []models.RuleBase `yaml:"rules"`
}
