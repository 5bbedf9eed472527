package validation

import (
	"testing"
)

func TestValidateYAML_ValidConfig(t *testing.T) {
	validYAML := `
output_dir: repo-report
dry_run: false

scan:
  include_patterns:
    - "*.py"
    - "*.go"
  exclude_dirs:
    - build
    - dist

languages:
  enabled: null
  disabled:
    - Zsh
`

	err := ValidateYAML(SchemaConfig, []byte(validYAML))
	if err != nil {
		t.Fatalf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidateYAML_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		expect string
	}{
		{
			name: "unknown top-level key",
			yaml: `
outputdir: typo
`,
			expect: "not allowed",
		},
		{
			name: "wrong output_dir type",
			yaml: `
output_dir: 123
`,
			expect: "expected string",
		},
		{
			name: "exclude dir with path separator",
			yaml: `
scan:
  exclude_dirs:
    - "build/output"
`,
			expect: "does not match pattern",
		},
		{
			name: "enabled languages wrong type",
			yaml: `
languages:
  enabled: "Python"
`,
			expect: "expected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYAML(SchemaConfig, []byte(tt.yaml))
			if err == nil {
				t.Fatalf("Expected validation to fail for %s", tt.name)
			}
			if !contains(err.Error(), tt.expect) {
				t.Fatalf("Expected error to contain '%s', got: %v", tt.expect, err)
			}
		})
	}
}

func TestValidateJSON_ValidReport(t *testing.T) {
	validReport := `{
  "total_files": 2,
  "files": [
    {
      "path": "main.py",
      "language": "Python",
      "summary": "Python main entry point"
    },
    {
      "path": "src/util.go",
      "language": "Go",
      "summary": "Go core implementation"
    }
  ]
}`

	err := ValidateJSON(SchemaReport, []byte(validReport))
	if err != nil {
		t.Fatalf("Expected valid report to pass validation, got error: %v", err)
	}
}

func TestValidateJSON_InvalidReport(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		expect string
	}{
		{
			name:   "missing files array",
			json:   `{"total_files": 0}`,
			expect: "missing propert",
		},
		{
			name:   "entry without summary",
			json:   `{"total_files": 1, "files": [{"path": "a.py", "language": "Python"}]}`,
			expect: "missing propert",
		},
		{
			name:   "negative total",
			json:   `{"total_files": -1, "files": []}`,
			expect: "must be >=",
		},
		{
			name:   "extra entry field",
			json:   `{"total_files": 1, "files": [{"path": "a.py", "language": "Python", "summary": "x", "size": 12}]}`,
			expect: "not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(SchemaReport, []byte(tt.json))
			if err == nil {
				t.Fatalf("Expected validation to fail for %s", tt.name)
			}
			if !contains(err.Error(), tt.expect) {
				t.Fatalf("Expected error to contain '%s', got: %v", tt.expect, err)
			}
		})
	}
}

func TestValidateJSON_MalformedInput(t *testing.T) {
	err := ValidateJSON(SchemaReport, []byte("{not json"))
	if err == nil {
		t.Fatal("Expected error for malformed JSON")
	}
	if !contains(err.Error(), "failed to parse JSON") {
		t.Fatalf("Expected parse error, got: %v", err)
	}
}

func TestValidateValue_SchemaNotFound(t *testing.T) {
	err := ValidateValue("nonexistent-schema.json", map[string]interface{}{})
	if err == nil {
		t.Fatal("Expected error for nonexistent schema")
	}
	if !contains(err.Error(), "failed to load schema") {
		t.Fatalf("Expected schema loading error, got: %v", err)
	}
}

func TestListSchemas(t *testing.T) {
	schemas, err := ListSchemas()
	if err != nil {
		t.Fatalf("Failed to list schemas: %v", err)
	}

	expectedSchemas := []string{
		SchemaConfig,
		SchemaReport,
	}

	for _, expected := range expectedSchemas {
		found := false
		for _, schema := range schemas {
			if schema == expected {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Expected to find schema '%s' in list: %v", expected, schemas)
		}
	}
}

func TestSchemaJSON(t *testing.T) {
	text, err := SchemaJSON(SchemaReport)
	if err != nil {
		t.Fatalf("Failed to load schema text: %v", err)
	}
	if !contains(text, "$schema") || !contains(text, "total_files") {
		t.Fatalf("Schema text looks wrong: %s", text)
	}

	if _, err := SchemaJSON("nope.json"); err == nil {
		t.Fatal("Expected error for unknown schema name")
	}
}

// Helper functions

func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if i+len(substr) <= len(s) && s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
