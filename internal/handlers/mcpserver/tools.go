package mcpserver

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/metrics"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/telemetry"
)

// RollDiceArgs is the input of roll_dice
type RollDiceArgs struct {
	Sides    *int `json:"sides,omitempty" jsonschema:"number of sides on each die (default 6)"`
	Count    *int `json:"count,omitempty" jsonschema:"number of dice to roll (default 1)"`
	Modifier int  `json:"modifier,omitempty" jsonschema:"modifier added to the total (default 0)"`
}

// RollAdvantageArgs is the input of roll_advantage and roll_disadvantage
type RollAdvantageArgs struct {
	Sides    *int `json:"sides,omitempty" jsonschema:"number of sides on the die (default 20)"`
	Modifier int  `json:"modifier,omitempty" jsonschema:"modifier added to the kept roll (default 0)"`
}

// RollExpressionArgs is the input of roll_dice_expression
type RollExpressionArgs struct {
	Expression string `json:"expression" jsonschema:"dice notation such as 2d6+3 or 1d20"`
}

// RollBatchArgs is the input of roll_multiple_operations. Entries stay
// untyped here so one malformed entry fails alone inside the batch.
type RollBatchArgs struct {
	Operations []map[string]any `json:"operations"`
}

// RollCharacterStatsArgs is the input of roll_character_stats
type RollCharacterStatsArgs struct {
	Method string `json:"method,omitempty" jsonschema:"4d6_drop_lowest (default), 3d6, 1d20 or point_buy"`
}

// RollDiceTool defines the roll_dice tool
func RollDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: "Roll one or more dice with the same number of sides and add a modifier",
	}
}

// RollAdvantageTool defines the roll_advantage tool
func RollAdvantageTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_advantage",
		Description: "Roll a die twice and keep the higher result (D&D advantage)",
	}
}

// RollDisadvantageTool defines the roll_disadvantage tool
func RollDisadvantageTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_disadvantage",
		Description: "Roll a die twice and keep the lower result (D&D disadvantage)",
	}
}

// RollExpressionTool defines the roll_dice_expression tool
func RollExpressionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice_expression",
		Description: "Parse and roll standard dice notation like '2d6+3', '1d20', '4d4' or 'd6'",
	}
}

// RollBatchTool defines the roll_multiple_operations tool. Entry fields are
// documented but not typed in the schema; they are checked per entry.
func RollBatchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_multiple_operations",
		Description: "Perform multiple dice roll operations in sequence and report a grand total",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"operations"},
			Properties: map[string]*jsonschema.Schema{
				"operations": {
					Type:        "array",
					Description: "operations to perform in order",
					Items: &jsonschema.Schema{
						Type: "object",
						Properties: map[string]*jsonschema.Schema{
							"type":       {Description: "normal, advantage, disadvantage or expression (default normal)"},
							"sides":      {Description: "number of sides (normal/advantage/disadvantage)"},
							"count":      {Description: "number of dice (normal)"},
							"modifier":   {Description: "modifier to add"},
							"expression": {Description: "dice expression (expression)"},
						},
					},
				},
			},
		},
	}
}

// RollCharacterStatsTool defines the roll_character_stats tool
func RollCharacterStatsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_character_stats",
		Description: "Roll six character ability scores with modifiers",
	}
}

// RollDiceHandler handles roll_dice
func RollDiceHandler(svc dice.Service) mcp.ToolHandlerFor[RollDiceArgs, *dice.RollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args RollDiceArgs) (*mcp.CallToolResult, *dice.RollResult, error) {
		result, err := svc.RollDice(ctx, &dice.RollDiceInput{
			Sides:    intOr(args.Sides, dice.DefaultSides),
			Count:    intOr(args.Count, dice.DefaultCount),
			Modifier: args.Modifier,
		})
		if err != nil {
			return nil, nil, err
		}
		countDice(result)
		return nil, result, nil
	}
}

// RollAdvantageHandler handles roll_advantage
func RollAdvantageHandler(svc dice.Service) mcp.ToolHandlerFor[RollAdvantageArgs, *dice.RollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args RollAdvantageArgs) (*mcp.CallToolResult, *dice.RollResult, error) {
		result, err := svc.RollAdvantage(ctx, advantageInput(args))
		if err != nil {
			return nil, nil, err
		}
		countDice(result)
		return nil, result, nil
	}
}

// RollDisadvantageHandler handles roll_disadvantage
func RollDisadvantageHandler(svc dice.Service) mcp.ToolHandlerFor[RollAdvantageArgs, *dice.RollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args RollAdvantageArgs) (*mcp.CallToolResult, *dice.RollResult, error) {
		result, err := svc.RollDisadvantage(ctx, advantageInput(args))
		if err != nil {
			return nil, nil, err
		}
		countDice(result)
		return nil, result, nil
	}
}

// RollExpressionHandler handles roll_dice_expression
func RollExpressionHandler(svc dice.Service) mcp.ToolHandlerFor[RollExpressionArgs, *dice.RollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args RollExpressionArgs) (*mcp.CallToolResult, *dice.RollResult, error) {
		result, err := svc.RollExpression(ctx, &dice.RollExpressionInput{Expression: args.Expression})
		if err != nil {
			return nil, nil, err
		}
		countDice(result)
		return nil, result, nil
	}
}

// RollBatchHandler handles roll_multiple_operations
func RollBatchHandler(svc dice.Service) mcp.ToolHandlerFor[RollBatchArgs, *dice.BatchSummary] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args RollBatchArgs) (*mcp.CallToolResult, *dice.BatchSummary, error) {
		summary, err := svc.RollBatch(ctx, &dice.RollBatchInput{
			Operations: dice.DecodeOperations(args.Operations),
		})
		if err != nil {
			return nil, nil, err
		}

		for _, result := range summary.Operations {
			if result.IsFailed() {
				metrics.IncBatchFailure(strings.TrimPrefix(result.Label, "FAILED: "))
				continue
			}
			countDice(result)
		}
		return nil, summary, nil
	}
}

// RollCharacterStatsHandler handles roll_character_stats
func RollCharacterStatsHandler(svc dice.Service) mcp.ToolHandlerFor[RollCharacterStatsArgs, *dice.AbilityScoreSet] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args RollCharacterStatsArgs) (*mcp.CallToolResult, *dice.AbilityScoreSet, error) {
		set, err := svc.RollCharacterStats(ctx, &dice.RollCharacterStatsInput{Method: args.Method})
		if err != nil {
			return nil, nil, err
		}
		return nil, set, nil
	}
}

func registerTools(server *mcp.Server, svc dice.Service, logger *slog.Logger) {
	tracer := telemetry.Tracer()

	mcp.AddTool(server, RollDiceTool(), instrument(tracer, logger, "roll_dice", RollDiceHandler(svc)))
	mcp.AddTool(server, RollAdvantageTool(), instrument(tracer, logger, "roll_advantage", RollAdvantageHandler(svc)))
	mcp.AddTool(server, RollDisadvantageTool(), instrument(tracer, logger, "roll_disadvantage", RollDisadvantageHandler(svc)))
	mcp.AddTool(server, RollExpressionTool(), instrument(tracer, logger, "roll_dice_expression", RollExpressionHandler(svc)))
	mcp.AddTool(server, RollBatchTool(), instrument(tracer, logger, "roll_multiple_operations", RollBatchHandler(svc)))
	mcp.AddTool(server, RollCharacterStatsTool(), instrument(tracer, logger, "roll_character_stats", RollCharacterStatsHandler(svc)))
}

// instrument wraps a tool handler with a span, metrics, error logging and
// session propagation for the engine observer
func instrument[In, Out any](
	tracer trace.Tracer,
	logger *slog.Logger,
	name string,
	next mcp.ToolHandlerFor[In, Out],
) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		start := time.Now()

		ctx, span := tracer.Start(ctx, "mcp.tool/"+name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", name)),
		)
		defer span.End()

		if req != nil {
			ctx = withSession(ctx, req.Session)
		}

		res, out, err := next(ctx, req, in)
		metrics.ObserveToolCall(name, err, time.Since(start))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, errors.GetMessage(err))
			span.SetAttributes(attribute.String("error.code", errors.GetCode(err).String()))

			logger.WarnContext(ctx, "Tool call failed",
				"tool", name,
				"code", errors.GetCode(err),
				"error", errors.GetMessage(err),
			)
			return res, out, toolError{err: err}
		}

		return res, out, nil
	}
}

// toolError reports only the user facing message to the client
type toolError struct {
	err error
}

func (e toolError) Error() string { return errors.GetMessage(e.err) }
func (e toolError) Unwrap() error { return e.err }

func advantageInput(args RollAdvantageArgs) *dice.RollAdvantageInput {
	return &dice.RollAdvantageInput{
		Sides:    intOr(args.Sides, dice.DefaultAdvantageSides),
		Modifier: args.Modifier,
	}
}

func countDice(result *dice.RollResult) {
	if result == nil {
		return
	}
	metrics.AddDice(strconv.Itoa(result.Sides), len(result.Rolls))
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
