// Package errors provides structured errors for the dice server.
//
// Errors carry a code, a user-facing message, an optional cause, and metadata.
// Codes map onto gRPC status codes and HTTP statuses so the same error can be
// surfaced by the MCP tools, the gRPC DiceService, and the CLI.
//
// # Basic Usage
//
//	err := errors.InvalidArgumentf("sides must be at least 2, got %d", sides)
//	err := errors.InvalidExpression(expr).WithMeta("hint", "2d6+3")
//
// Wrapping keeps the code of the wrapped error:
//
//	if _, err := roller.Roll(sides); err != nil {
//	    return errors.Wrap(err, "failed to roll die")
//	}
//
// # Dice Codes
//
// Two codes exist on top of the gRPC-shaped set:
//   - InvalidExpression: dice notation did not match the grammar
//   - UnknownOperationType: a batch entry named a type the batch runner does not know
//
// Both map to gRPC InvalidArgument and HTTP 400.
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("count", count, 1, 100, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
