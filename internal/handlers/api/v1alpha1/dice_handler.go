// Package v1alpha1 serves the api.v1alpha1 DiceService over gRPC
package v1alpha1

import (
	"context"
	"math"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/pkg/idgen"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

// DiceHandlerConfig holds dependencies for the dice handler
type DiceHandlerConfig struct {
	DiceService dice.Service
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are present
func (c *DiceHandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// DiceHandler implements the dice gRPC service. Rolls are not stored, so the
// session RPCs report Unimplemented.
type DiceHandler struct {
	apiv1alpha1.UnimplementedDiceServiceServer
	diceService dice.Service
	idGen       idgen.Generator
}

// NewDiceHandler creates a new dice handler with the given configuration
func NewDiceHandler(cfg *DiceHandlerConfig) (*DiceHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &DiceHandler{
		diceService: cfg.DiceService,
		idGen:       cfg.IDGenerator,
	}, nil
}

// RollDice rolls the requested notation, e.g. "2d6+3", and returns a single roll
func (h *DiceHandler) RollDice(
	ctx context.Context,
	req *apiv1alpha1.RollDiceRequest,
) (*apiv1alpha1.RollDiceResponse, error) {
	if req.GetNotation() == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("notation is required"))
	}

	result, err := h.diceService.RollExpression(ctx, &dice.RollExpressionInput{
		Expression: req.GetNotation(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	roll, err := h.toProtoRoll(result, req.GetModifierDescription())
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &apiv1alpha1.RollDiceResponse{
		Rolls:     []*apiv1alpha1.DiceRoll{roll},
		ExpiresAt: 0,
	}, nil
}

// GetRollSession is not supported since rolls are not persisted
func (h *DiceHandler) GetRollSession(
	_ context.Context,
	_ *apiv1alpha1.GetRollSessionRequest,
) (*apiv1alpha1.GetRollSessionResponse, error) {
	return nil, errors.ToGRPCError(errors.Unimplemented("roll sessions are not stored by this server"))
}

// ClearRollSession is not supported since rolls are not persisted
func (h *DiceHandler) ClearRollSession(
	_ context.Context,
	_ *apiv1alpha1.ClearRollSessionRequest,
) (*apiv1alpha1.ClearRollSessionResponse, error) {
	return nil, errors.ToGRPCError(errors.Unimplemented("roll sessions are not stored by this server"))
}

// toProtoRoll fails when a value does not fit the int32 wire fields
func (h *DiceHandler) toProtoRoll(result *dice.RollResult, description string) (*apiv1alpha1.DiceRoll, error) {
	vb := errors.NewValidationBuilder()

	rolls := make([]int32, len(result.Rolls))
	for i, r := range result.Rolls {
		if !fitsInt32(r) {
			vb.Fieldf("dice", "%d exceeds the int32 range", r)
			break
		}
		rolls[i] = int32(r)
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"total", result.FinalResult},
		{"dice_total", result.Total},
		{"modifier", result.Modifier},
	} {
		if !fitsInt32(f.value) {
			vb.Fieldf(f.name, "%d exceeds the int32 range", f.value)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, errors.Wrapf(err, "roll %s is too large for the dice service", result.Label)
	}

	return &apiv1alpha1.DiceRoll{
		RollId:      h.idGen.Generate(),
		Notation:    result.Label,
		Dice:        rolls,
		Total:       int32(result.FinalResult),
		Description: description,
		DiceTotal:   int32(result.Total),
		Modifier:    int32(result.Modifier),
	}, nil
}

func fitsInt32(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
