package schemas_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resumate/schemas"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"resume_payload.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v map[string]any
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
			assert.Equal(t, "object", v["type"])
		})
	}
}

func TestEmbeddedSchemaMatchesFile(t *testing.T) {
	data, err := os.ReadFile("resume_payload.schema.json")
	require.NoError(t, err)
	assert.Equal(t, string(data), schemas.ResumePayload)
}
