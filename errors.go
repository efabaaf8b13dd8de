package typegraph

import "errors"

// Configuration Errors (returned by New)
var (
	// ErrInvalidRequiredMode indicates an unrecognized required-field mode.
	ErrInvalidRequiredMode = errors.New("typegraph: invalid required-field mode")

	// ErrInvalidUnion indicates a union registration whose base is not an
	// interface or whose variants do not implement it.
	ErrInvalidUnion = errors.New("typegraph: union registration requires an interface base and implementing variants")

	// ErrInvalidConstructor indicates a constructor registration that is not a
	// function returning the constructed type.
	ErrInvalidConstructor = errors.New("typegraph: constructor must be a function returning the constructed type")
)

// Generation Errors (returned by Generate)
var (
	// ErrNilTarget indicates generation was requested for a nil target.
	ErrNilTarget = errors.New("typegraph: generation target cannot be nil")

	// ErrUnsupportedTarget indicates a target the selected front-end cannot
	// introspect, such as a bare function value under reflection.
	ErrUnsupportedTarget = errors.New("typegraph: unsupported generation target")

	// ErrToolNameRequired indicates a tool definition with no resolvable name.
	ErrToolNameRequired = errors.New("typegraph: tool name is required")
)

// Registry Errors
var (
	// ErrGeneratorNotFound indicates no generator is registered for the
	// requested source/schema pair.
	ErrGeneratorNotFound = errors.New("typegraph: no generator registered for source and schema kind")

	// ErrDuplicateGenerator indicates two generators declared the same
	// source/schema pair.
	ErrDuplicateGenerator = errors.New("typegraph: duplicate generator for source and schema kind")
)

// Validation Errors (when WithValidation enabled)
var (
	// ErrSchemaValidationFailed indicates the generated document failed JSON
	// Schema validation.
	ErrSchemaValidationFailed = errors.New("typegraph: generated schema failed validation")
)
