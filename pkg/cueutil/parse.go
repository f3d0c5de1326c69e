// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE compile/unify/decode flow used for
// schema-validated configuration files.
package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize caps parsed file size (1 MiB). Configuration files
// are small; anything larger is a mistake or an attack.
const DefaultMaxFileSize = 1 << 20

// ParseResult contains the result of a successful CUE parse operation.
type ParseResult[T any] struct {
	// Value is the decoded Go struct.
	Value *T

	// Unified is the unified CUE value, available for advanced use cases
	// such as extracting additional metadata.
	Unified cue.Value
}

// ParseAndDecode performs the 3-step CUE parsing flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition at schemaPath
//  3. Validate and decode to a Go struct
//
// Validation uses cue.Concrete(false) so optional fields may stay open.
func ParseAndDecode[T any](schema, data []byte, schemaPath, filename string) (*ParseResult[T], error) {
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{Value: &result, Unified: unified}, nil
}

// DecodeToMap performs the same schema-validated flow but decodes into a
// map[string]any, for callers that merge configuration into Viper rather
// than a struct.
func DecodeToMap(schema, data []byte, schemaPath, filename string) (map[string]any, error) {
	result, err := ParseAndDecode[map[string]any](schema, data, schemaPath, filename)
	if err != nil {
		return nil, err
	}
	return *result.Value, nil
}

// CheckFileSize rejects files larger than maxSize to prevent OOM from
// hostile or corrupted inputs.
func CheckFileSize(data []byte, maxSize int, filename string) error {
	if len(data) > maxSize {
		return fmt.Errorf("%s: file too large (%d bytes, max %d)", filename, len(data), maxSize)
	}
	return nil
}
