package genmodels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "openapi": "3.1.0",
  "info": {"title": "Amigo API", "version": "1.0.0"},
  "components": {
    "schemas": {
      "message_format": {
        "type": "string",
        "enum": ["text", "voice"],
        "description": "Selects text or voice for a conversation side"
      },
      "conversation": {
        "type": "object",
        "description": "A single conversation with a service",
        "required": ["id", "service_id", "created_at"],
        "properties": {
          "id": {"type": "string"},
          "service_id": {"type": "string"},
          "created_at": {"type": "string", "format": "date-time"},
          "finished_at": {"anyOf": [{"type": "string", "format": "date-time"}, {"type": "null"}]},
          "format": {"$ref": "#/components/schemas/message_format"},
          "labels": {"type": "array", "items": {"type": "string"}},
          "insights": {"type": "object", "additionalProperties": true},
          "origin": {
            "type": "object",
            "required": ["channel"],
            "properties": {"channel": {"type": "string"}}
          }
        }
      }
    }
  }
}`

const sampleDocYAML = `openapi: "3.1.0"
info:
  title: Amigo API
  version: "1.0.0"
components:
  schemas:
    message_format:
      type: string
      enum: [text, voice]
    conversation:
      type: object
      required: [id]
      properties:
        id:
          type: string
`

func TestParseDocumentJSONAndYAML(t *testing.T) {
	fromJSON, err := ParseDocument([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, "Amigo API", fromJSON.Info.Title)
	assert.Contains(t, fromJSON.Components.Schemas, "conversation")

	fromYAML, err := ParseDocument([]byte(sampleDocYAML))
	require.NoError(t, err)
	assert.Contains(t, fromYAML.Components.Schemas, "message_format")
}

func TestParseDocumentRejectsEmptyOrSchemaless(t *testing.T) {
	_, err := ParseDocument([]byte("  \n"))
	assert.Error(t, err)

	_, err = ParseDocument([]byte(`{"openapi": "3.1.0"}`))
	assert.Error(t, err)
}

func TestGenerateStructsAndEnums(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDoc))
	require.NoError(t, err)

	out, err := Generate(doc, Options{Source: "https://api.amigo.ai/v1/openapi.json"})
	require.NoError(t, err)
	src := string(out)

	assert.Contains(t, src, "// Code generated by gen-models. DO NOT EDIT.")
	assert.Contains(t, src, "// Source: https://api.amigo.ai/v1/openapi.json")
	assert.Contains(t, src, "package amigo")

	// Enum schema becomes a typed string with per-value consts.
	assert.Contains(t, src, "type MessageFormat string")
	assert.Contains(t, src, "MessageFormatText")
	assert.Contains(t, src, `= "text"`)
	assert.Contains(t, src, "MessageFormatVoice")

	// Required scalars stay values, optional ones become pointers.
	assert.Contains(t, src, "type Conversation struct")
	assert.Contains(t, src, "`json:\"id\"`")
	assert.Contains(t, src, "`json:\"service_id\"`")
	assert.Contains(t, src, "time.Time")
	assert.Contains(t, src, "*time.Time")
	assert.Contains(t, src, "`json:\"finished_at,omitempty\"`")

	// $ref to an enum uses the named type directly.
	assert.Contains(t, src, "`json:\"format,omitempty\"`")
	assert.Regexp(t, `Format\s+MessageFormat`, src)

	// Arrays, free-form objects, and inline objects.
	assert.Contains(t, src, "[]string")
	assert.Contains(t, src, "map[string]any")
	assert.Contains(t, src, "type ConversationOrigin struct")
	assert.Contains(t, src, "*ConversationOrigin")
}

func TestGenerateSortedOrder(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDoc))
	require.NoError(t, err)

	out, err := Generate(doc, Options{})
	require.NoError(t, err)
	src := string(out)

	// Types are emitted in sorted schema-name order so regenerating against
	// an unchanged document never rewrites the file.
	conv := strings.Index(src, "type Conversation struct")
	format := strings.Index(src, "type MessageFormat string")
	require.GreaterOrEqual(t, conv, 0)
	require.GreaterOrEqual(t, format, 0)
	assert.Less(t, conv, format, "conversation sorts before message_format")

	// Fields are emitted in sorted property-name order.
	created := strings.Index(src, "`json:\"created_at\"`")
	id := strings.Index(src, "`json:\"id\"`")
	service := strings.Index(src, "`json:\"service_id\"`")
	require.GreaterOrEqual(t, created, 0)
	assert.Less(t, created, id, "created_at sorts before id")
	assert.Less(t, id, service, "id sorts before service_id")
}

func TestGenerateDeterministic(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDoc))
	require.NoError(t, err)

	first, err := Generate(doc, Options{})
	require.NoError(t, err)
	second, err := Generate(doc, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateRejectsDanglingRef(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
	  "components": {"schemas": {
	    "thing": {"type": "object", "properties": {"other": {"$ref": "#/components/schemas/missing"}}}
	  }}
	}`))
	require.NoError(t, err)

	_, err = Generate(doc, Options{})
	assert.ErrorContains(t, err, "dangling $ref")
}

func TestExportName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"user_id", "UserID"},
		{"signin_with_api_key", "SigninWithAPIKey"},
		{"conversation-created", "ConversationCreated"},
		{"messageFormat", "MessageFormat"},
		{"url", "URL"},
		{"get_conversations_response", "GetConversationsResponse"},
		{"interaction.insights", "InteractionInsights"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, exportName(tc.in), "exportName(%q)", tc.in)
	}
}
