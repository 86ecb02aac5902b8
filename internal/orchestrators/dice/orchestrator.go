// Package dice implements the dice engine: pools, advantage, notation,
// batches and ability score generation over an injected random source
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/rpg-dice-mcp/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
)

const (
	// MinSides is the smallest die that can be rolled
	MinSides = 2
	// MinCount and MaxCount bound the number of dice in one pool
	MinCount = 1
	MaxCount = 100

	// Operation names reported on events
	OpRollDice          = "roll_dice"
	OpRollAdvantage     = "roll_advantage"
	OpRollDisadvantage  = "roll_disadvantage"
	OpRollExpression    = "roll_dice_expression"
	OpRollBatch         = "roll_multiple_operations"
	OpRollCharacterStat = "roll_character_stats"
)

// Service defines the interface for dice operations
type Service interface {
	RollDice(ctx context.Context, input *RollDiceInput) (*RollResult, error)
	RollAdvantage(ctx context.Context, input *RollAdvantageInput) (*RollResult, error)
	RollDisadvantage(ctx context.Context, input *RollAdvantageInput) (*RollResult, error)
	RollExpression(ctx context.Context, input *RollExpressionInput) (*RollResult, error)

	// RollBatch runs operations in order. Failing entries become
	// "FAILED: {type}" placeholders and the batch still returns a summary.
	// The one exception is ctx: once it is canceled or past its deadline the
	// remaining entries are not rolled and RollBatch returns a Canceled or
	// DeadlineExceeded error with no summary. Callers that need a summary
	// every time pass a context that is never canceled.
	RollBatch(ctx context.Context, input *RollBatchInput) (*BatchSummary, error)

	RollCharacterStats(ctx context.Context, input *RollCharacterStatsInput) (*AbilityScoreSet, error)
}

// Config holds the dependencies for the dice engine
type Config struct {
	// Roller is the uniform random source. It must be safe for concurrent use.
	Roller dice.Roller
	// Observer is optional
	Observer Observer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type orchestrator struct {
	roller   dice.Roller
	observer Observer
}

// NewOrchestrator creates a new dice engine with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		roller:   cfg.Roller,
		observer: cfg.Observer,
	}, nil
}

// RollDice rolls count dice with the given number of sides and adds the modifier
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollResult, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.emit(ctx, slog.LevelInfo, OpRollDice, "Rolling %dd%d with modifier %+d",
		input.Count, input.Sides, input.Modifier)

	if err := validatePool(input.Sides, input.Count); err != nil {
		return nil, err
	}

	label := poolLabel(input.Sides, input.Count)
	result, err := o.rollPool(label, input.Sides, input.Count, input.Modifier)
	if err != nil {
		return nil, err
	}

	o.emit(ctx, slog.LevelDebug, OpRollDice, "Rolled: %s, Total: %d, Final: %d",
		formatRolls(result.Rolls), result.Total, result.FinalResult)

	return result, nil
}

// RollAdvantage rolls two dice and keeps the higher
func (o *orchestrator) RollAdvantage(ctx context.Context, input *RollAdvantageInput) (*RollResult, error) {
	return o.rollPair(ctx, input, true)
}

// RollDisadvantage rolls two dice and keeps the lower
func (o *orchestrator) RollDisadvantage(ctx context.Context, input *RollAdvantageInput) (*RollResult, error) {
	return o.rollPair(ctx, input, false)
}

func (o *orchestrator) rollPair(ctx context.Context, input *RollAdvantageInput, advantage bool) (*RollResult, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	op, mode := OpRollAdvantage, "advantage"
	if !advantage {
		op, mode = OpRollDisadvantage, "disadvantage"
	}

	o.emit(ctx, slog.LevelInfo, op, "Rolling d%d with %s (modifier %+d)", input.Sides, mode, input.Modifier)

	vb := errors.NewValidationBuilder()
	validateSides(input.Sides, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	rolls, err := o.draw(input.Sides, 2)
	if err != nil {
		return nil, err
	}

	kept := max(rolls[0], rolls[1])
	if !advantage {
		kept = min(rolls[0], rolls[1])
	}

	result, err := newRollResult(
		fmt.Sprintf("d%d (%s)", input.Sides, mode),
		input.Sides, rolls, kept, input.Modifier,
	)
	if err != nil {
		return nil, err
	}

	o.emit(ctx, slog.LevelDebug, op, "Rolled: %d and %d, taking %d, final: %d",
		rolls[0], rolls[1], kept, result.FinalResult)

	return result, nil
}

// RollExpression parses dice notation and rolls it. The result label is the
// expression exactly as given.
func (o *orchestrator) RollExpression(ctx context.Context, input *RollExpressionInput) (*RollResult, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.emit(ctx, slog.LevelInfo, OpRollExpression, "Parsing and rolling dice expression: %s", input.Expression)

	parsed, err := ParseExpression(input.Expression)
	if err != nil {
		return nil, err
	}

	result, err := o.rollPool(input.Expression, parsed.Sides, parsed.Count, parsed.Modifier)
	if err != nil {
		return nil, err
	}

	o.emit(ctx, slog.LevelDebug, OpRollExpression, "Expression '%s' -> %s -> %s -> %d",
		input.Expression, parsed, formatRolls(result.Rolls), result.FinalResult)

	return result, nil
}

// rollPool draws and sums an already validated pool
func (o *orchestrator) rollPool(label string, sides, count, modifier int) (*RollResult, error) {
	rolls, err := o.draw(sides, count)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, r := range rolls {
		var ok bool
		if total, ok = addInt(total, r); !ok {
			return nil, errors.InvalidArgumentf("%s total is out of range", label).
				WithMeta("sides", sides)
		}
	}

	return newRollResult(label, sides, rolls, total, modifier)
}

// draw returns count values in [1, sides] in draw order
func (o *orchestrator) draw(sides, count int) ([]int, error) {
	rolls, err := o.roller.RollN(count, sides)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %dd%d", count, sides)
	}
	if len(rolls) != count {
		return nil, errors.Internalf("random source returned %d values, expected %d", len(rolls), count)
	}
	for _, r := range rolls {
		if r < 1 || r > sides {
			return nil, errors.Internalf("random source returned %d for a d%d", r, sides)
		}
	}

	return rolls, nil
}

func poolLabel(sides, count int) string {
	if count == 1 {
		return fmt.Sprintf("d%d", sides)
	}
	return fmt.Sprintf("%dd%d", count, sides)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
