package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validList = `[
  {"id": "a", "title": "Buy milk", "completed": false, "createdAt": "2024-03-01T12:30:45.123Z"},
  {"id": "b", "title": "Walk dog", "completed": true, "createdAt": "2024-03-02T08:00:00Z"}
]`

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantValid bool
		wantTasks int
		wantPath  string
	}{
		{"empty input", "", true, 0, ""},
		{"whitespace input", "  \n", true, 0, ""},
		{"empty array", "[]", true, 0, ""},
		{"valid list", validList, true, 2, ""},
		{"not json", "{not json", false, 0, ""},
		{"object instead of array", `{"tasks": []}`, false, 0, ""},
		{"number", `42`, false, 0, ""},
		{"null", `null`, false, 0, ""},
		{"missing title", `[{"id":"a","completed":false,"createdAt":"2024-03-01T00:00:00Z"}]`, false, 0, "[0]"},
		{"blank title", `[{"id":"a","title":"   ","completed":false,"createdAt":"2024-03-01T00:00:00Z"}]`, false, 0, "[0].title"},
		{"bad timestamp", `[{"id":"a","title":"x","completed":false,"createdAt":"yesterday"}]`, false, 0, "[0].createdAt"},
		{"completed not bool", `[{"id":"a","title":"x","completed":"yes","createdAt":"2024-03-01T00:00:00Z"}]`, false, 0, "[0].completed"},
		{"duplicate ids", `[
			{"id":"a","title":"x","completed":false,"createdAt":"2024-03-01T00:00:00Z"},
			{"id":"a","title":"y","completed":false,"createdAt":"2024-03-01T00:00:00Z"}]`, false, 0, "[1].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate([]byte(tt.data), ValidationOptions{})
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid: got %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if len(result.Tasks) != tt.wantTasks {
				t.Errorf("Tasks: got %d, want %d", len(result.Tasks), tt.wantTasks)
			}
			if !tt.wantValid && len(result.Errors) == 0 {
				t.Error("expected at least one error")
			}
			if tt.wantPath != "" {
				found := false
				for _, err := range result.Errors {
					if ve, ok := err.(*ValidationError); ok && strings.HasPrefix(ve.Path, tt.wantPath) {
						found = true
					}
				}
				if !found {
					t.Errorf("expected an error at %s, got %v", tt.wantPath, result.Errors)
				}
			}
		})
	}
}

func TestValidatePresent(t *testing.T) {
	if Validate(nil, ValidationOptions{}).Present {
		t.Error("nil data should not be present")
	}
	if !Validate([]byte("[]"), ValidationOptions{}).Present {
		t.Error("[] should be present")
	}
}

func TestValidateSchemaFile(t *testing.T) {
	t.Run("custom schema is used", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "strict.schema.json")
		schema := `{
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"type": "array",
			"maxItems": 1
		}`
		if err := os.WriteFile(path, []byte(schema), 0644); err != nil {
			t.Fatal(err)
		}

		result := Validate([]byte(validList), ValidationOptions{SchemaPath: path})
		if result.Valid {
			t.Error("expected maxItems violation")
		}
		if result.Schema != path {
			t.Errorf("Schema: got %q, want %q", result.Schema, path)
		}
	})

	t.Run("missing schema falls back to embedded", func(t *testing.T) {
		result := Validate([]byte(validList), ValidationOptions{SchemaPath: filepath.Join(t.TempDir(), "nope.json")})
		if !result.Valid {
			t.Fatalf("expected valid, got %v", result.Errors)
		}
		if result.Schema != "embedded" {
			t.Errorf("Schema: got %q, want embedded", result.Schema)
		}
		if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "not found") {
			t.Errorf("expected not-found warning, got %v", result.Warnings)
		}
	})
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"/":          "",
		"/0":         "[0]",
		"/0/title":   "[0].title",
		"#/3/id":     "[3].id",
		"/0/a~1b":    "[0].a/b",
		"/0/meta/~0": "[0].meta.~",
	}
	for in, want := range tests {
		if got := jsonPointerToPath(in); got != want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	inner := os.ErrNotExist
	err := &ValidationError{Path: "[0]", Err: inner}
	if err.Unwrap() != inner {
		t.Error("Unwrap did not return inner error")
	}
	if err.Error() != "[0]: "+inner.Error() {
		t.Errorf("Error(): got %q", err.Error())
	}
}
