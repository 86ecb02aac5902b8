package dice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
)

// Operation types accepted in a batch
const (
	OperationNormal       = "normal"
	OperationAdvantage    = "advantage"
	OperationDisadvantage = "disadvantage"
	OperationExpression   = "expression"
)

// Batch defaults applied when a field is omitted
const (
	DefaultSides          = 6
	DefaultCount          = 1
	DefaultAdvantageSides = 20
	DefaultExpression     = "1d6"
)

// OperationRequest is the decoded form of one batch entry.
// Pointer fields distinguish "omitted" from an explicit zero.
type OperationRequest struct {
	Type       string  `json:"type,omitempty"`
	Sides      *int    `json:"sides,omitempty"`
	Count      *int    `json:"count,omitempty"`
	Modifier   *int    `json:"modifier,omitempty"`
	Expression *string `json:"expression,omitempty"`
}

// Operation is one entry of a batch. The set of implementations is closed:
// NormalOperation, AdvantageOperation, DisadvantageOperation,
// ExpressionOperation, UnknownOperation and InvalidOperation.
type Operation interface {
	// Type is the operation type as requested
	Type() string
	run(ctx context.Context, o *orchestrator) (*RollResult, error)
}

// NormalOperation rolls a pool of dice
type NormalOperation struct {
	Sides    int
	Count    int
	Modifier int
}

// Type implements Operation
func (NormalOperation) Type() string { return OperationNormal }

func (op NormalOperation) run(ctx context.Context, o *orchestrator) (*RollResult, error) {
	return o.RollDice(ctx, &RollDiceInput{Sides: op.Sides, Count: op.Count, Modifier: op.Modifier})
}

// AdvantageOperation rolls two dice and keeps the higher
type AdvantageOperation struct {
	Sides    int
	Modifier int
}

// Type implements Operation
func (AdvantageOperation) Type() string { return OperationAdvantage }

func (op AdvantageOperation) run(ctx context.Context, o *orchestrator) (*RollResult, error) {
	return o.RollAdvantage(ctx, &RollAdvantageInput{Sides: op.Sides, Modifier: op.Modifier})
}

// DisadvantageOperation rolls two dice and keeps the lower
type DisadvantageOperation struct {
	Sides    int
	Modifier int
}

// Type implements Operation
func (DisadvantageOperation) Type() string { return OperationDisadvantage }

func (op DisadvantageOperation) run(ctx context.Context, o *orchestrator) (*RollResult, error) {
	return o.RollDisadvantage(ctx, &RollAdvantageInput{Sides: op.Sides, Modifier: op.Modifier})
}

// ExpressionOperation rolls dice notation
type ExpressionOperation struct {
	Expression string
}

// Type implements Operation
func (ExpressionOperation) Type() string { return OperationExpression }

func (op ExpressionOperation) run(ctx context.Context, o *orchestrator) (*RollResult, error) {
	return o.RollExpression(ctx, &RollExpressionInput{Expression: op.Expression})
}

// UnknownOperation carries a type the engine does not recognize. Running it
// always fails.
type UnknownOperation struct {
	Name string
}

// Type implements Operation
func (op UnknownOperation) Type() string { return op.Name }

func (op UnknownOperation) run(context.Context, *orchestrator) (*RollResult, error) {
	return nil, errors.UnknownOperationType(op.Name)
}

// InvalidOperation is an entry whose fields could not be decoded, such as
// "sides": "six". Running it always fails.
type InvalidOperation struct {
	Name string
	Err  error
}

// Type implements Operation
func (op InvalidOperation) Type() string { return op.Name }

func (op InvalidOperation) run(context.Context, *orchestrator) (*RollResult, error) {
	return nil, errors.WrapWithCodef(op.Err, errors.CodeInvalidArgument,
		"malformed %s operation: %v", op.Name, op.Err)
}

// DecodeOperation converts one raw batch entry into an operation. Unknown keys
// are ignored. An entry with a wrongly typed field becomes an
// InvalidOperation so that it fails alone when the batch runs.
func DecodeOperation(fields map[string]any) Operation {
	if fields == nil {
		return InvalidOperation{Name: OperationNormal, Err: errors.InvalidArgument("operation is null")}
	}

	var req OperationRequest
	data, err := json.Marshal(fields)
	if err == nil {
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return InvalidOperation{Name: rawOperationType(fields), Err: err}
	}

	return NewOperation(req)
}

// DecodeOperations converts raw batch entries in order
func DecodeOperations(entries []map[string]any) []Operation {
	ops := make([]Operation, len(entries))
	for i, fields := range entries {
		ops[i] = DecodeOperation(fields)
	}
	return ops
}

// rawOperationType names an entry for its placeholder label
func rawOperationType(fields map[string]any) string {
	switch v := fields["type"].(type) {
	case nil:
		return OperationNormal
	case string:
		if v == "" {
			return OperationNormal
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

// NewOperation converts a decoded request into a typed operation, filling in
// defaults for omitted fields
func NewOperation(req OperationRequest) Operation {
	opType := req.Type
	if opType == "" {
		opType = OperationNormal
	}

	switch opType {
	case OperationNormal:
		return NormalOperation{
			Sides:    intOr(req.Sides, DefaultSides),
			Count:    intOr(req.Count, DefaultCount),
			Modifier: intOr(req.Modifier, 0),
		}
	case OperationAdvantage:
		return AdvantageOperation{
			Sides:    intOr(req.Sides, DefaultAdvantageSides),
			Modifier: intOr(req.Modifier, 0),
		}
	case OperationDisadvantage:
		return DisadvantageOperation{
			Sides:    intOr(req.Sides, DefaultAdvantageSides),
			Modifier: intOr(req.Modifier, 0),
		}
	case OperationExpression:
		expression := DefaultExpression
		if req.Expression != nil {
			expression = *req.Expression
		}
		return ExpressionOperation{Expression: expression}
	default:
		return UnknownOperation{Name: opType}
	}
}

// RollBatch runs each operation in order and totals the results
func (o *orchestrator) RollBatch(ctx context.Context, input *RollBatchInput) (*BatchSummary, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.emit(ctx, slog.LevelInfo, OpRollBatch, "Performing %d dice roll operations", len(input.Operations))

	summary := &BatchSummary{
		Operations: make([]*RollResult, 0, len(input.Operations)),
	}

	for i, op := range input.Operations {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCodef(err, contextCode(err),
				"batch stopped after %d of %d operations", i, len(input.Operations))
		}

		if op == nil {
			op = UnknownOperation{}
		}

		o.emit(ctx, slog.LevelDebug, OpRollBatch, "Operation %d: %s %+v", i+1, op.Type(), op)

		result, err := op.run(ctx, o)
		if err == nil {
			grandTotal, ok := addInt(summary.GrandTotal, result.FinalResult)
			if ok {
				summary.GrandTotal = grandTotal
			} else {
				err = errors.InvalidArgumentf("adding %d overflows the grand total", result.FinalResult)
			}
		}
		if err != nil {
			o.emit(ctx, slog.LevelError, OpRollBatch, "Operation %d failed: %s", i+1, errors.GetMessage(err))
			result = failedResult(op.Type())
		}

		summary.Operations = append(summary.Operations, result)
	}
	summary.OperationCount = len(summary.Operations)

	o.emit(ctx, slog.LevelInfo, OpRollBatch, "Completed %d operations, grand total: %d",
		summary.OperationCount, summary.GrandTotal)

	return summary, nil
}

func contextCode(err error) errors.Code {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.CodeDeadlineExceeded
	}
	return errors.CodeCanceled
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
