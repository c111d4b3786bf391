// Package errors provides structured error handling for rpg-core.
//
// It provides:
//   - Structured errors with codes, messages, and metadata
//   - Error context preservation through wrapping
//   - Validation error helpers
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("class not found")
//	err := errors.InvalidArgumentf("invalid ability score: %d", score)
//
// Adding metadata:
//
//	err := errors.NotFound("class not found").
//	    WithMeta("class_id", classID)
//
// Wrapping errors:
//
//	if err := repo.Load(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load session")
//	}
//
// Changing error semantics:
//
//	if err := json.Unmarshal(data, &snapshot); err != nil {
//	    return errors.WrapWithCode(err, errors.CodeDataLoss, "snapshot corrupted")
//	}
//
// # Error Checking
//
// Type checking:
//
//	if errors.IsNotFound(err) {
//	    // Handle not found case
//	}
//
// Extracting information:
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//	meta := errors.GetMeta(err)
//
// # Validation Errors
//
// Using the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("vr_target", cfg.VRTarget, 5, 10, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return domain-specific errors (NotFound, DataLoss)
//   - Include relevant IDs in metadata
//   - Wrap storage errors with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Check state preconditions and return FailedPrecondition errors
//   - Wrap repository errors with business context
//
// CLI layer:
//   - Extract user-friendly messages
//   - Log internal errors for debugging
//
// # Error Codes
//
// The following error codes are available:
//   - NotFound: Resource not found
//   - InvalidArgument: Invalid input provided
//   - AlreadyExists: Resource already exists
//   - FailedPrecondition: Operation requirements not met
//   - OutOfRange: Value out of valid range
//   - Internal: Internal error
//   - Unavailable: Dependency temporarily unavailable
//   - DataLoss: Unrecoverable data corruption
package errors
