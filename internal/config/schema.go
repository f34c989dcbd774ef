package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// settingsSchema constrains the settings file. Ranges here mirror
// srs.Settings.Validate; the schema exists so a bad file is rejected
// with the field and constraint named, before any value is applied.
var settingsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"daily_new_items_limit": map[string]any{
			"type":    "integer",
			"minimum": 0,
		},
		"daily_review_limit": map[string]any{
			"type":    "integer",
			"minimum": 0,
		},
		"ease_bonus": map[string]any{
			"type":    "number",
			"minimum": -0.2,
			"maximum": 0.2,
		},
		"interval_multiplier": map[string]any{
			"type":    "number",
			"minimum": 0.5,
			"maximum": 2.0,
		},
		"lapse_new_interval": map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": 1.0,
		},
		"required_accuracy": map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": 1.0,
		},
		"db_path": map[string]any{
			"type": "string",
		},
		"default_categories": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "minLength": 1},
		},
	},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validateSettings checks a raw settings document against the schema.
func validateSettings(raw []byte) error {
	compileOnce.Do(func() {
		// The compiler wants a value produced by its own JSON decoder,
		// not an arbitrary Go map. Round-trip the definition first.
		def, err := json.Marshal(settingsSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://settings.json", parsed); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile("schema://settings.json")
	})
	if compileErr != nil {
		return compileErr
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}
