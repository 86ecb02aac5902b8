package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/pkg/roller"
)

var demoSeed uint64

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Roll a sample of every dice operation without a client",
	Long:  `Demo calls the dice engine directly and prints the results, the same rolls the MCP tools serve.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var s *uint64
		if cmd.Flags().Changed("seed") {
			s = &demoSeed
		}

		svc, err := dice.NewOrchestrator(&dice.Config{Roller: roller.New(s)})
		if err != nil {
			return err
		}
		return runDemo(cmd.Context(), cmd.OutOrStdout(), svc)
	},
}

func init() {
	demoCmd.Flags().Uint64Var(&demoSeed, "seed", 0, "Seed for reproducible rolls")
}

func runDemo(ctx context.Context, out io.Writer, svc dice.Service) error {
	fmt.Fprintln(out, "🎲 MCP Dice Rolling Server - Test Demo")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "1. Basic Dice Rolling:")
	result, err := svc.RollDice(ctx, &dice.RollDiceInput{Sides: 6, Count: 2, Modifier: 3})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "   %s+%d: %s = %d + %d = %d\n",
		result.Label, result.Modifier, listRolls(result.Rolls), result.Total, result.Modifier, result.FinalResult)

	fmt.Fprintln(out, "\n2. Advantage Roll:")
	result, err = svc.RollAdvantage(ctx, &dice.RollAdvantageInput{Sides: 20, Modifier: 5})
	if err != nil {
		return err
	}
	printPair(out, result)

	fmt.Fprintln(out, "\n3. Disadvantage Roll:")
	result, err = svc.RollDisadvantage(ctx, &dice.RollAdvantageInput{Sides: 20, Modifier: 5})
	if err != nil {
		return err
	}
	printPair(out, result)

	fmt.Fprintln(out, "\n4. Character Stats (4d6 drop lowest):")
	stats, err := svc.RollCharacterStats(ctx, &dice.RollCharacterStatsInput{Method: dice.MethodDropLowest})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "   Ability Scores:")
	for _, ability := range dice.Abilities {
		fmt.Fprintf(out, "   %s: %d (%+d)\n", ability, stats.Scores[ability], stats.Modifiers[ability])
	}
	if stats.TotalPoints != nil {
		fmt.Fprintf(out, "   Total Points: %d\n", *stats.TotalPoints)
	}

	fmt.Fprintln(out, "\n5. Multiple Rolls:")
	for i := range 3 {
		result, err = svc.RollDice(ctx, &dice.RollDiceInput{Sides: 20, Count: 1})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "   Roll %d: %d\n", i+1, result.Rolls[0])
	}

	fmt.Fprintln(out, "\n🎲 Demo complete! The MCP server provides all these functions and more.")
	return nil
}

func printPair(out io.Writer, result *dice.RollResult) {
	fmt.Fprintf(out, "   %s+%d: rolled %s, taking %d, final = %d\n",
		result.Label, result.Modifier, listRolls(result.Rolls), result.Total, result.FinalResult)
}

func listRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = fmt.Sprint(r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
