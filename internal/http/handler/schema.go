package handler

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const maxBodyBytes = 1 << 20

var (
	//go:embed schemas/create_todo.json
	createTodoSchemaJSON string

	//go:embed schemas/update_todo.json
	updateTodoSchemaJSON string

	createTodoSchema = jsonschema.MustCompileString("create_todo.json", createTodoSchemaJSON)
	updateTodoSchema = jsonschema.MustCompileString("update_todo.json", updateTodoSchemaJSON)
)

// decodeBody validates the request body against schema before decoding it into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, schema *jsonschema.Schema, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema violation: %w", err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
