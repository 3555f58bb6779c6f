package serve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_EvaluateUnmarshal(t *testing.T) {
	input := `{"type":"evaluate","payload":{"password":"hunter2","explain":true}}`

	var req Request
	require.NoError(t, json.Unmarshal([]byte(input), &req))
	assert.Equal(t, "evaluate", req.Type)

	var payload EvaluatePayload
	require.NoError(t, json.Unmarshal(req.Payload, &payload))
	assert.Equal(t, "hunter2", payload.Password)
	assert.True(t, payload.Explain)
}

func TestResponse_Marshal(t *testing.T) {
	data, err := json.Marshal(Response{Success: true, Type: "ready"})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"success":true`)
	assert.Contains(t, string(data), `"type":"ready"`)
	assert.NotContains(t, string(data), `"error"`)
}
