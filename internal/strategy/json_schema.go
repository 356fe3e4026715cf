package strategy

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-research/internal/types"
)

// ToJSONSchema converts a struct to a JSON schema
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// ConfigSchema returns the JSON schema of a single strategy configuration.
func ConfigSchema() (string, error) {
	return ToJSONSchema(types.StrategyConfig{})
}
