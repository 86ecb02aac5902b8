package dice

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
)

// Ability score generation methods
const (
	MethodDropLowest = "4d6_drop_lowest"
	Method3d6        = "3d6"
	Method1d20       = "1d20"
	MethodPointBuy   = "point_buy"
)

// Methods lists the supported generation methods
var Methods = []string{MethodDropLowest, Method3d6, Method1d20, MethodPointBuy}

// Abilities lists the six ability names in presentation order
var Abilities = []string{"Strength", "Dexterity", "Constitution", "Intelligence", "Wisdom", "Charisma"}

// Point buy bounds and costs. The table is published for clients; point_buy
// generation draws uniformly from the range and does not spend a budget.
const (
	PointBuyMin    = 8
	PointBuyMax    = 15
	PointBuyBudget = 27
)

// PointBuyCosts maps a score to its point cost
var PointBuyCosts = map[int]int{8: 0, 9: 1, 10: 2, 11: 3, 12: 4, 13: 5, 14: 7, 15: 9}

// AbilityModifier returns floor((score-10)/2)
func AbilityModifier(score int) int {
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// RollCharacterStats generates six ability scores with the requested method
func (o *orchestrator) RollCharacterStats(ctx context.Context, input *RollCharacterStatsInput) (*AbilityScoreSet, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	method := input.Method
	if method == "" {
		method = MethodDropLowest
	}

	var generate func() (int, error)
	switch method {
	case MethodDropLowest:
		generate = o.rollDropLowest
	case Method3d6:
		generate = func() (int, error) { return o.rollSum(6, 3) }
	case Method1d20:
		generate = func() (int, error) { return o.rollSum(20, 1) }
	case MethodPointBuy:
		generate = o.rollPointBuy
	default:
		return nil, errors.InvalidArgumentf("unknown method: %s. Use %s", method, quoteMethods()).
			WithMeta("method", method)
	}

	o.emit(ctx, slog.LevelInfo, OpRollCharacterStat, "Rolling character stats using method: %s", method)

	set := &AbilityScoreSet{
		Method:    method,
		Scores:    make(map[string]int, len(Abilities)),
		Modifiers: make(map[string]int, len(Abilities)),
	}

	total := 0
	for _, ability := range Abilities {
		score, err := generate()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll %s", ability)
		}
		set.Scores[ability] = score
		set.Modifiers[ability] = AbilityModifier(score)
		total += score
	}

	if method != MethodPointBuy {
		set.TotalPoints = &total
	}

	o.emit(ctx, slog.LevelDebug, OpRollCharacterStat, "Generated scores: %s", formatScores(set.Scores))

	return set, nil
}

// rollDropLowest rolls 4d6 and discards exactly one lowest die
func (o *orchestrator) rollDropLowest() (int, error) {
	rolls, err := o.draw(6, 4)
	if err != nil {
		return 0, err
	}
	slices.Sort(rolls)
	return sum(rolls[1:]), nil
}

func (o *orchestrator) rollSum(sides, count int) (int, error) {
	rolls, err := o.draw(sides, count)
	if err != nil {
		return 0, err
	}
	return sum(rolls), nil
}

func (o *orchestrator) rollPointBuy() (int, error) {
	span := PointBuyMax - PointBuyMin + 1
	rolls, err := o.draw(span, 1)
	if err != nil {
		return 0, err
	}
	return PointBuyMin - 1 + rolls[0], nil
}

func quoteMethods() string {
	quoted := make([]string, len(Methods))
	for i, m := range Methods {
		quoted[i] = "'" + m + "'"
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// formatScores renders scores in ability order
func formatScores(scores map[string]int) string {
	parts := make([]string, 0, len(scores))
	for _, ability := range Abilities {
		parts = append(parts, fmt.Sprintf("%s: %d", ability, scores[ability]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
