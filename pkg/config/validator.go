package config

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Validate checks the settings against Schema and returns one message per problem.
// Problems are advisory: a run proceeds with whatever values are present.
func Validate(cfg *Config) ([]string, error) {
	schemaLoader := gojsonschema.NewStringLoader(Schema)
	documentLoader := gojsonschema.NewGoLoader(cfg.Map())

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate schema: %w", err)
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}

	return problems, nil
}
