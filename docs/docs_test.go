package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		BasePath string                 `json:"basePath"`
		Paths    map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "/api/v1", parsed.BasePath)
	assert.Contains(t, parsed.Paths, "/exchanges/{id}/draw")
	assert.Contains(t, parsed.Paths, "/exchanges/{id}/assignments/{giverId}")

	me, ok := parsed.Paths["/users/me"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, me, "post")
	assert.Contains(t, me, "put")
}
