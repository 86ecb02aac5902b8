package mcpserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
)

// Prompt names
const (
	InitiativePrompt = "roll_initiative"
	AttackPrompt     = "roll_attack"
)

// Prompt argument defaults
const (
	DefaultCharacterName = "Character"
	DefaultWeapon        = "sword"
	DefaultDamageDice    = "1d8"
)

// RollInitiativePrompt describes roll_initiative
func RollInitiativePrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        InitiativePrompt,
		Title:       "Roll Initiative",
		Description: "Generate a prompt for rolling initiative in combat",
		Arguments: []*mcp.PromptArgument{
			{Name: "character_name", Description: "Name of the character (default Character)"},
			{Name: "modifier", Description: "Dexterity modifier as an integer (default 0)"},
		},
	}
}

// RollAttackPrompt describes roll_attack
func RollAttackPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        AttackPrompt,
		Title:       "Attack Roll",
		Description: "Generate a prompt for making an attack roll",
		Arguments: []*mcp.PromptArgument{
			{Name: "weapon", Description: "Weapon being used (default sword)"},
			{Name: "attack_bonus", Description: "Attack bonus as an integer (default 0)"},
			{Name: "damage_dice", Description: "Damage dice notation (default 1d8)"},
		},
	}
}

func registerPrompts(server *mcp.Server) {
	server.AddPrompt(RollInitiativePrompt(), handleInitiative)
	server.AddPrompt(RollAttackPrompt(), handleAttack)
}

// InitiativeText renders the initiative prompt
func InitiativeText(name string, modifier int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Roll initiative for %s!\n\n", name)
	b.WriteString("Initiative determines the order of combat. Roll 1d20 and add your Dexterity modifier.\n\n")
	fmt.Fprintf(&b, "%s's Dexterity modifier: %+d\n\n", name, modifier)
	fmt.Fprintf(&b, "Roll: 1d20%+d\n\n", modifier)
	b.WriteString("The higher the result, the earlier you act in combat. " +
		"In case of ties, characters with higher Dexterity scores go first.")
	return b.String()
}

// AttackText renders the attack prompt
func AttackText(weapon string, attackBonus int, damageDice string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Make an attack roll with your %s!\n\n", weapon)
	fmt.Fprintf(&b, "Attack Roll: 1d20+%d\n", attackBonus)
	b.WriteString("- Roll 1d20 and add your attack bonus\n")
	b.WriteString("- If the result meets or exceeds the target's Armor Class (AC), you hit!\n\n")
	b.WriteString("If you hit, roll for damage:\n")
	fmt.Fprintf(&b, "Damage: %s\n", damageDice)
	b.WriteString("- Roll the damage dice and add your Strength modifier (for melee) " +
		"or Dexterity modifier (for ranged)\n\n")
	b.WriteString("Example: If you roll 15 on the d20 and your attack bonus is +5, your total is 20. " +
		"If the target's AC is 18, you hit!")
	return b.String()
}

func handleInitiative(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := promptArgs(req)

	modifier, err := intArg(args, "modifier")
	if err != nil {
		return nil, err
	}
	name := stringArg(args, "character_name", DefaultCharacterName)

	return userPrompt("Initiative roll for "+name, InitiativeText(name, modifier)), nil
}

func handleAttack(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := promptArgs(req)

	bonus, err := intArg(args, "attack_bonus")
	if err != nil {
		return nil, err
	}
	weapon := stringArg(args, "weapon", DefaultWeapon)
	damage := stringArg(args, "damage_dice", DefaultDamageDice)

	return userPrompt("Attack roll with "+weapon, AttackText(weapon, bonus, damage)), nil
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}
}

func promptArgs(req *mcp.GetPromptRequest) map[string]string {
	if req == nil || req.Params == nil {
		return nil
	}
	return req.Params.Arguments
}

func stringArg(args map[string]string, key, def string) string {
	if v, ok := args[key]; ok && v != "" {
		return v
	}
	return def
}

// intArg reads an optional integer argument, defaulting to 0
func intArg(args map[string]string, key string) (int, error) {
	raw := strings.TrimSpace(args[key])
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("%s must be an integer, got %q", key, raw).
			WithMeta("argument", key)
	}
	return n, nil
}
