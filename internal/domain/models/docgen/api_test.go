package docgen

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    RequestID
		wantErr bool
	}{
		{name: "string", body: `{"requestId":"1714550400000"}`, want: "1714550400000"},
		{name: "number", body: `{"requestId":1714550400000}`, want: "1714550400000"},
		{name: "null", body: `{"requestId":null}`, want: ""},
		{name: "absent", body: `{}`, want: ""},
		{name: "object", body: `{"requestId":{"a":1}}`, wantErr: true},
		{name: "bool", body: `{"requestId":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RuleBaseRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.RequestID)
		})
	}
}

func TestRequestIDEncodesAsString(t *testing.T) {
	now := time.UnixMilli(1714550400000)
	data, err := json.Marshal(RuleBaseRequest{Envelope: Envelope{RequestID: NewRequestID(now)}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"requestId":"1714550400000"}`, string(data))
}
