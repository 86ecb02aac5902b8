package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
)

var expressionRegex = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// Expression is parsed dice notation such as "2d6+3"
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

// String renders the expression in canonical form
func (e *Expression) String() string {
	if e.Modifier == 0 {
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
	return fmt.Sprintf("%dd%d%+d", e.Count, e.Sides, e.Modifier)
}

// ParseExpression parses notation of the form [count]d{sides}[+/-modifier].
// Matching ignores case and whitespace. Count defaults to 1 and the modifier
// to 0. Bounds are checked the same way as RollDice.
func ParseExpression(expression string) (*Expression, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(expression), ""))

	matches := expressionRegex.FindStringSubmatch(normalized)
	if matches == nil {
		return nil, errors.InvalidExpression(expression)
	}

	vb := errors.NewValidationBuilder()
	parsed := &Expression{Count: 1}

	if matches[1] != "" {
		parsed.Count = parseField("count", matches[1], vb)
	}
	parsed.Sides = parseField("sides", matches[2], vb)
	if matches[3] != "" {
		parsed.Modifier = parseField("modifier", matches[3], vb)
	}
	if err := vb.Build(); err != nil {
		return nil, errors.Wrapf(err, "invalid dice expression: %s", expression)
	}

	if err := validatePool(parsed.Sides, parsed.Count); err != nil {
		return nil, err
	}

	return parsed, nil
}

func parseField(field, value string, vb *errors.ValidationBuilder) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		vb.Fieldf(field, "%s is out of range", value)
		return 0
	}
	return n
}

func validatePool(sides, count int) error {
	vb := errors.NewValidationBuilder()
	validateSides(sides, vb)
	errors.ValidateRange("count", count, MinCount, MaxCount, vb)
	return vb.Build()
}

func validateSides(sides int, vb *errors.ValidationBuilder) {
	if sides < MinSides {
		vb.Fieldf("sides", "must be at least %d", MinSides)
	}
}
