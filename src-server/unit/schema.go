package unit

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// manifestSchema describes the shape of a unit manifest. Presence of the
// handler and of an identifier is checked in Go so a missing one is a
// warning, not a decode failure.
const manifestSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"handler": {"type": "string"},
		"custom_id": {"type": "string", "maxLength": 100},
		"custom_id_pattern": {"type": "string", "minLength": 1},
		"custom_id_prefix": {"type": "string", "minLength": 1, "maxLength": 100},
		"params": {"type": "object"},
		"event": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"name": {"type": "string"},
				"once": {"type": "boolean"}
			}
		},
		"command": {
			"type": "object",
			"additionalProperties": false,
			"required": ["name", "description"],
			"properties": {
				"name": {"type": "string", "pattern": "^[-_\\p{L}\\p{N}]{1,32}$"},
				"description": {"type": "string", "minLength": 1, "maxLength": 100},
				"default_member_permissions": {"type": "integer", "minimum": 0},
				"dm_permission": {"type": "boolean"},
				"nsfw": {"type": "boolean"},
				"options": {"type": "array", "maxItems": 25, "items": {"$ref": "#/$defs/option"}}
			}
		}
	},
	"$defs": {
		"option": {
			"type": "object",
			"additionalProperties": false,
			"required": ["type", "name", "description"],
			"properties": {
				"type": {"enum": ["sub_command", "sub_command_group", "string", "integer", "boolean", "user", "channel", "role", "mentionable", "number", "attachment"]},
				"name": {"type": "string", "pattern": "^[-_\\p{L}\\p{N}]{1,32}$"},
				"description": {"type": "string", "minLength": 1, "maxLength": 100},
				"required": {"type": "boolean"},
				"autocomplete": {"type": "boolean"},
				"min_length": {"type": "integer", "minimum": 0},
				"max_length": {"type": "integer", "minimum": 1},
				"choices": {
					"type": "array",
					"maxItems": 25,
					"items": {
						"type": "object",
						"additionalProperties": false,
						"required": ["name", "value"],
						"properties": {
							"name": {"type": "string", "minLength": 1},
							"value": {"type": ["string", "number"]}
						}
					}
				},
				"options": {"type": "array", "items": {"$ref": "#/$defs/option"}}
			}
		}
	}
}`

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

func schema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiledSchema, compiledSchemaErr = jsonschema.CompileString("unit.schema.json", manifestSchema)
	})
	return compiledSchema, compiledSchemaErr
}
