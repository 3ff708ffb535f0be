package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModel(t *testing.T) {
	tests := []struct {
		name         string
		modelStr     string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{name: "claude haiku", modelStr: "claude-haiku-4-5", wantProvider: "anthropic", wantModel: "claude-haiku-4-5"},
		{name: "claude with date suffix", modelStr: "claude-sonnet-4-5-20251001", wantProvider: "anthropic", wantModel: "claude-sonnet-4-5-20251001"},
		{name: "explicit provider", modelStr: "anthropic/claude-haiku-4-5", wantProvider: "anthropic", wantModel: "claude-haiku-4-5"},
		{name: "explicit provider keeps nested path", modelStr: "lorem/slow/v2", wantProvider: "lorem", wantModel: "slow/v2"},
		{name: "lorem fast", modelStr: "lorem-fast", wantProvider: "lorem", wantModel: "lorem-fast"},
		{name: "case insensitive prefix", modelStr: "Claude-Opus", wantProvider: "anthropic", wantModel: "Claude-Opus"},
		{name: "empty string", modelStr: "", wantErr: true},
		{name: "blank string", modelStr: "   ", wantErr: true},
		{name: "unknown prefix", modelStr: "gpt-4", wantErr: true},
		{name: "empty provider", modelStr: "/claude-haiku-4-5", wantErr: true},
		{name: "empty model", modelStr: "anthropic/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModel(tt.modelStr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, got.Provider)
			assert.Equal(t, tt.wantModel, got.Model)
		})
	}
}
