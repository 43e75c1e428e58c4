// Package taskfile reads, validates and writes the JSON task file.
package taskfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"todo/internal/service"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://todo.invalid/schema/tasks.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// MalformedError reports a task file that exists but does not hold a valid
// task sequence.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed task file: %v", e.Err)
	}
	return fmt.Sprintf("malformed task file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Options controls Load behavior.
type Options struct {
	// Strict returns malformed files as errors and rejects duplicate ids.
	// Otherwise a malformed file loads as an empty sequence.
	Strict bool

	// Logger receives the discarded error in lenient mode.
	Logger *zap.Logger
}

// Load reads the task sequence stored at path.
//
// A missing file yields an empty sequence. A file that cannot be parsed
// yields an empty sequence unless opts.Strict is set. Any other read
// failure is returned.
func Load(path string, opts Options) ([]service.Task, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("task file not found, starting empty", zap.String("path", path))
			return []service.Task{}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	tasks, err := Decode(data)
	if err == nil && opts.Strict {
		err = CheckUnique(tasks)
	}
	if err != nil {
		merr := &MalformedError{Path: path, Err: err}
		if opts.Strict {
			return nil, merr
		}
		log.Debug("discarding malformed task file", zap.String("path", path), zap.Error(err))
		return []service.Task{}, nil
	}

	log.Debug("loaded task file", zap.String("path", path), zap.Int("tasks", len(tasks)))
	return tasks, nil
}

// Save overwrites path with tasks as an indented JSON array.
func Save(path string, tasks []service.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

// Encode renders tasks with 2-space indentation and a trailing newline.
// A nil sequence is written as an empty array.
func Encode(tasks []service.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task file: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses data and checks it against the task file schema.
func Decode(data []byte) ([]service.Task, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}

	var tasks []service.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// Validate checks a decoded JSON document against the task file schema.
func Validate(doc interface{}) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile task schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return schemaError(ve)
		}
		return err
	}
	return nil
}

// schemaError flattens a validation error tree to its first leaf, which
// names the offending location.
func schemaError(ve *jsonschema.ValidationError) error {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := pointerToPath(ve.InstanceLocation)
	if loc == "" {
		return fmt.Errorf("schema: %s", ve.Message)
	}
	return fmt.Errorf("schema: %s: %s", loc, ve.Message)
}

// pointerToPath turns a JSON pointer like "/1/id" into "[1].id".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if _, err := strconv.Atoi(part); err == nil {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

// CheckUnique returns an error naming the first id that appears twice.
func CheckUnique(tasks []service.Task) error {
	seen := make(map[uint64]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
