package client

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

var (
	rollEntityID    string
	rollContext     string
	rollDescription string
)

var rollDiceCmd = &cobra.Command{
	Use:   "roll-dice [notation]",
	Short: "Roll dice using dice notation",
	Long: `Roll dice and see individual results. Examples:

  roll-dice 4d6
  roll-dice 1d20+5 --description "+5 attack"
  roll-dice 2d8-1 --entity char-789 --context damage`,
	Args: cobra.ExactArgs(1),
	RunE: rollDice,
}

func init() {
	rollDiceCmd.Flags().StringVar(&rollEntityID, "entity", "", "Entity rolling the dice")
	rollDiceCmd.Flags().StringVar(&rollContext, "context", "", "Why the dice are rolled")
	rollDiceCmd.Flags().StringVar(&rollDescription, "description", "", "Description of the modifier")
}

func rollDice(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Rolling %s...\n", args[0])

	resp, err := client.RollDice(ctx, &apiv1alpha1.RollDiceRequest{
		EntityId:            rollEntityID,
		Context:             rollContext,
		Notation:            args[0],
		ModifierDescription: rollDescription,
	})
	if err != nil {
		return fmt.Errorf("failed to roll dice: %w", err)
	}

	printRolls(out, resp)
	return nil
}

func printRolls(out io.Writer, resp *apiv1alpha1.RollDiceResponse) {
	fmt.Fprintf(out, "\n🎲 Dice Roll Results:\n")
	fmt.Fprintf(out, "===================\n")

	for i, roll := range resp.GetRolls() {
		fmt.Fprintf(out, "\nRoll %d:\n", i+1)
		fmt.Fprintf(out, "  Roll ID: %s\n", roll.GetRollId())
		fmt.Fprintf(out, "  Notation: %s\n", roll.GetNotation())
		fmt.Fprintf(out, "  Individual Dice: %v\n", roll.GetDice())
		fmt.Fprintf(out, "  Dice Total: %d\n", roll.GetDiceTotal())
		fmt.Fprintf(out, "  Modifier: %+d\n", roll.GetModifier())
		fmt.Fprintf(out, "  Total: %d\n", roll.GetTotal())
		if roll.GetDescription() != "" {
			fmt.Fprintf(out, "  Description: %s\n", roll.GetDescription())
		}
	}
}
