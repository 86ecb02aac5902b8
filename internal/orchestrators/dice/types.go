package dice

import (
	"fmt"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
)

// RollResult is the outcome of a single dice roll
type RollResult struct {
	// Label describes what was rolled, e.g. "2d6", "d20 (advantage)" or the
	// caller's expression verbatim
	Label       string `json:"dice_type" jsonschema:"what was rolled"`
	Sides       int    `json:"sides" jsonschema:"number of sides per die"`
	Rolls       []int  `json:"rolls" jsonschema:"individual die results in draw order"`
	Total       int    `json:"total" jsonschema:"total before the modifier"`
	Modifier    int    `json:"modifier" jsonschema:"modifier added to the total"`
	FinalResult int    `json:"final_result" jsonschema:"total plus modifier"`
}

// IsFailed reports whether the result is a placeholder for a failed batch entry
func (r *RollResult) IsFailed() bool {
	return r.Sides == 0 && len(r.Rolls) == 0
}

// newRollResult fails when total plus modifier does not fit in an int
func newRollResult(label string, sides int, rolls []int, total, modifier int) (*RollResult, error) {
	final, ok := addInt(total, modifier)
	if !ok {
		return nil, errors.InvalidArgumentf("%s with modifier %+d is out of range", label, modifier).
			WithMeta("modifier", modifier)
	}

	return &RollResult{
		Label:       label,
		Sides:       sides,
		Rolls:       rolls,
		Total:       total,
		Modifier:    modifier,
		FinalResult: final,
	}, nil
}

// addInt reports false when a+b overflows
func addInt(a, b int) (int, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, true
}

func failedResult(opType string) *RollResult {
	return &RollResult{
		Label: fmt.Sprintf("FAILED: %s", opType),
		Rolls: []int{},
	}
}

// BatchSummary is the outcome of RollBatch
type BatchSummary struct {
	Operations     []*RollResult `json:"operations" jsonschema:"one result per requested operation, in request order"`
	GrandTotal     int           `json:"grand_total" jsonschema:"sum of final_result over all operations"`
	OperationCount int           `json:"operation_count" jsonschema:"number of operations performed"`
}

// AbilityScoreSet holds six generated ability scores
type AbilityScoreSet struct {
	Method    string         `json:"method" jsonschema:"generation method used"`
	Scores    map[string]int `json:"scores" jsonschema:"ability name to score"`
	Modifiers map[string]int `json:"modifiers" jsonschema:"ability name to modifier"`
	// TotalPoints is nil for point_buy
	TotalPoints *int `json:"total_points,omitempty" jsonschema:"sum of all scores, absent for point_buy"`
}

// RollDiceInput defines the request for rolling a pool of identical dice
type RollDiceInput struct {
	Sides    int
	Count    int
	Modifier int
}

// RollAdvantageInput defines the request for advantage and disadvantage rolls
type RollAdvantageInput struct {
	Sides    int
	Modifier int
}

// RollExpressionInput defines the request for rolling dice notation
type RollExpressionInput struct {
	Expression string
}

// RollBatchInput defines the request for a sequence of rolls
type RollBatchInput struct {
	Operations []Operation
}

// RollCharacterStatsInput defines the request for generating ability scores
type RollCharacterStatsInput struct {
	// Method defaults to MethodDropLowest when empty
	Method string
}
