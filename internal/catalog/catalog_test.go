package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docstudio/internal/domain"
	models "docstudio/internal/domain/models/docgen"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	agents := c.Agents()
	require.NotEmpty(t, agents)
	assert.Equal(t, "CLAUDE", agents[0].Name, "file order must be preserved")

	rules := c.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, "rule1", rules[0].RuleID)
	assert.NotEmpty(t, rules[0].Template)
}

func TestResolve(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name    string
		cfg     models.AgentConfig
		wantErr bool
	}{
		{name: "name only", cfg: models.AgentConfig{Name: "CLAUDE"}},
		{name: "matching ids", cfg: models.AgentConfig{Name: "CLAUDE", AgentID: "G5RGOUE1UQ", AgentAlias: "S8QDXXGDKG"}},
		{name: "unknown agent", cfg: models.AgentConfig{Name: "GPT"}, wantErr: true},
		{name: "wrong agent id", cfg: models.AgentConfig{Name: "CLAUDE", AgentID: "X"}, wantErr: true},
		{name: "wrong alias", cfg: models.AgentConfig{Name: "CLAUDE", AgentAlias: "X"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, err := c.Resolve(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Name, agent.Name)
		})
	}
}

func TestParseRejectsDuplicateRules(t *testing.T) {
	rules := []byte("rules:\n  - ruleId: a\n  - ruleId: a\n")
	_, err := Parse([]byte("agents: {}\n"), rules)
	assert.Error(t, err)
}

func TestAgentConfig(t *testing.T) {
	agent := &AgentProfile{Name: "CLAUDE", AgentID: "id", AgentAlias: "alias"}
	assert.Equal(t, models.AgentConfig{Name: "CLAUDE", AgentID: "id", AgentAlias: "alias", RuleID: "rule2"}, agent.AgentConfig("rule2"))
}
