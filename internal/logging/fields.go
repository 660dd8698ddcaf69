// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"

	// Configuration fields.
	FieldFlavor = "flavor"
	FieldConfig = "config"

	// Editor fields.
	FieldBlockID   = "block_id"
	FieldOldBlock  = "old_block"
	FieldNewBlock  = "new_block"
	FieldTag       = "tag"
	FieldPattern   = "pattern"
	FieldLanguage  = "language"
	FieldOffset    = "offset"
	FieldSelection = "selection"
	FieldEvent     = "event"
	FieldKey       = "key"
	FieldBlocks    = "blocks"

	// Replay fields.
	FieldStep   = "step"
	FieldAction = "action"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
