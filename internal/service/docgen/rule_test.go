package docgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRules(t *testing.T) {
	store, _ := newSeededStore(t)
	svc := NewRuleService(store.Rules(), testLogger())

	rules, err := svc.ListRules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, "Rule 1", rules[0].RuleName)
	assert.Equal(t, "rule1", rules[0].RuleID)
}
