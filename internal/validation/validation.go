package validation

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Names of the embedded schemas for the two documents this tool reads
// and writes.
const (
	SchemaConfig = "file-summary-config.json"
	SchemaReport = "file-summary-report.json"
)

//go:embed *.json
var schemaFS embed.FS

// ValidationError represents a schema validation error
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ValidateValue validates already-parsed data against an embedded schema.
// schemaName is the schema filename, e.g. "file-summary-config.json".
func ValidateValue(schemaName string, data interface{}) error {
	schemaData, err := schemaFS.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaName, err)
	}

	schema, err := jsonschema.CompileString(schemaName, string(schemaData))
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", schemaName, err)
	}

	if err := schema.Validate(data); err != nil {
		var messages []string
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			collectCauses(validationErr, &messages)
		} else {
			messages = append(messages, err.Error())
		}
		return ValidationError{Errors: messages}
	}

	return nil
}

// collectCauses flattens a validation error tree into its leaf messages,
// which name the actual violations rather than the enclosing schema rules.
func collectCauses(err *jsonschema.ValidationError, messages *[]string) {
	if len(err.Causes) == 0 {
		*messages = append(*messages, err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectCauses(cause, messages)
	}
}

// ValidateJSON validates raw JSON content against an embedded schema.
func ValidateJSON(schemaName string, content []byte) error {
	var data interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return ValidateValue(schemaName, data)
}

// ValidateYAML validates raw YAML content against an embedded schema.
func ValidateYAML(schemaName string, content []byte) error {
	var data interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return ValidateValue(schemaName, data)
}

// SchemaJSON returns the raw text of an embedded schema.
func SchemaJSON(schemaName string) (string, error) {
	data, err := schemaFS.ReadFile(schemaName)
	if err != nil {
		return "", fmt.Errorf("failed to load schema %s: %w", schemaName, err)
	}
	return string(data), nil
}

// ListSchemas returns the embedded schema filenames.
func ListSchemas() ([]string, error) {
	entries, err := schemaFS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var schemas []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			schemas = append(schemas, entry.Name())
		}
	}

	return schemas, nil
}
