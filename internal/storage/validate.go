package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskpad/internal/task"
)

//go:embed tasks.schema.json
var embeddedSchema []byte

const embeddedSchemaURL = "https://github.com/nibzard/taskpad/tasks.schema.json"

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to a JSON Schema file replacing the embedded one.
	// If empty or unreadable, the embedded schema is used.
	SchemaPath string
}

// ValidationResult contains validation results for one slot value.
type ValidationResult struct {
	Valid    bool
	Present  bool // false when the slot holds no value
	Errors   []error
	Warnings []string
	Schema   string // "embedded" or the schema file used
	Tasks    []task.Task
}

// Validate decodes and checks a serialized task list. Empty input is valid
// and yields no tasks.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Present:  len(bytes.TrimSpace(data)) > 0,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
		Tasks:    []task.Task{},
	}
	if !result.Present {
		return result
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("parse task list: %w", err)})
		return result
	}

	schema, source, warnings := compileSchema(opts.SchemaPath)
	result.Schema = source
	result.Warnings = append(result.Warnings, warnings...)
	if schema != nil {
		if err := schema.Validate(doc); err != nil {
			result.Valid = false
			appendSchemaErrors(result, err)
			return result
		}
	} else if _, ok := doc.([]interface{}); !ok {
		result.fail(&ValidationError{Err: fmt.Errorf("expected an array of tasks, got %s", jsonKind(doc))})
		return result
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("decode task list: %w", err)})
		return result
	}

	validateMinimal(tasks, result)
	if result.Valid {
		result.Tasks = tasks
	}
	return result
}

func (r *ValidationResult) fail(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// validateMinimal enforces the invariants a replacement schema may not cover.
func validateMinimal(tasks []task.Task, result *ValidationResult) {
	seen := make(map[string]int, len(tasks))
	for i, t := range tasks {
		path := fmt.Sprintf("[%d]", i)
		if t.ID == "" {
			result.fail(&ValidationError{Path: path + ".id", Err: fmt.Errorf("missing required field")})
			continue
		}
		if prev, ok := seen[t.ID]; ok {
			result.fail(&ValidationError{Path: path + ".id", Err: fmt.Errorf("duplicate id %q (first at [%d])", t.ID, prev)})
		} else {
			seen[t.ID] = i
		}
		if strings.TrimSpace(t.Title) == "" {
			result.fail(&ValidationError{Path: path + ".title", Err: fmt.Errorf("title is blank")})
		}
	}
}

// compileSchema returns the schema to validate with and where it came from.
// A broken schema file falls back to the embedded schema with a warning.
func compileSchema(schemaPath string) (*jsonschema.Schema, string, []string) {
	var warnings []string
	if schemaPath != "" {
		schema, err := compileSchemaFile(schemaPath)
		if err == nil {
			return schema, schemaPath, nil
		}
		warnings = append(warnings, err.Error())
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(embeddedSchemaURL, bytes.NewReader(embeddedSchema)); err != nil {
		return nil, "", append(warnings, fmt.Sprintf("invalid embedded schema: %v", err))
	}
	schema, err := compiler.Compile(embeddedSchemaURL)
	if err != nil {
		return nil, "", append(warnings, fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return schema, "embedded", warnings
}

func compileSchemaFile(schemaPath string) (*jsonschema.Schema, error) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read schema file: %v", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %v", err)
	}
	return schema, nil
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath turns "/0/title" into "[0].title".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
