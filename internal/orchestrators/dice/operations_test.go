package dice_test

import (
	"context"
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/orchestrators/dice"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newOperations(reqs []dice.OperationRequest) []dice.Operation {
	ops := make([]dice.Operation, len(reqs))
	for i, req := range reqs {
		ops[i] = dice.NewOperation(req)
	}
	return ops
}

func (s *OrchestratorTestSuite) TestNewOperation_Defaults() {
	testCases := []struct {
		name     string
		req      dice.OperationRequest
		expected dice.Operation
	}{
		{"empty is normal d6", dice.OperationRequest{}, dice.NormalOperation{Sides: 6, Count: 1}},
		{"normal keeps fields", dice.OperationRequest{Type: "normal", Sides: intPtr(8), Count: intPtr(3), Modifier: intPtr(-1)},
			dice.NormalOperation{Sides: 8, Count: 3, Modifier: -1}},
		{"explicit zero is kept", dice.OperationRequest{Sides: intPtr(0)}, dice.NormalOperation{Sides: 0, Count: 1}},
		{"advantage defaults to d20", dice.OperationRequest{Type: "advantage", Modifier: intPtr(5)},
			dice.AdvantageOperation{Sides: 20, Modifier: 5}},
		{"disadvantage defaults to d20", dice.OperationRequest{Type: "disadvantage"},
			dice.DisadvantageOperation{Sides: 20}},
		{"expression defaults to 1d6", dice.OperationRequest{Type: "expression"},
			dice.ExpressionOperation{Expression: "1d6"}},
		{"expression keeps text", dice.OperationRequest{Type: "expression", Expression: strPtr("2d4+1")},
			dice.ExpressionOperation{Expression: "2d4+1"}},
		{"unknown type", dice.OperationRequest{Type: "bogus"}, dice.UnknownOperation{Name: "bogus"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, dice.NewOperation(tc.req))
		})
	}
}

func (s *OrchestratorTestSuite) TestRollBatch_IsolatesFailures() {
	s.mockRoller.EXPECT().RollN(2, 6).Return([]int{2, 3}, nil)
	s.mockRoller.EXPECT().RollN(1, 20).Return([]int{10}, nil)

	ops := newOperations([]dice.OperationRequest{
		{Type: "normal", Sides: intPtr(6), Count: intPtr(2), Modifier: intPtr(1)},
		{Type: "bogus"},
		{Type: "expression", Expression: strPtr("xyz")},
		{Type: "normal", Sides: intPtr(1)},
		{Type: "expression", Expression: strPtr("d20+2")},
	})

	summary, err := s.orchestrator.RollBatch(s.ctx, &dice.RollBatchInput{Operations: ops})
	s.Require().NoError(err)

	s.Require().Len(summary.Operations, 5)
	s.Assert().Equal(5, summary.OperationCount)

	s.Assert().Equal("2d6", summary.Operations[0].Label)
	s.Assert().Equal(6, summary.Operations[0].FinalResult)

	for i, label := range map[int]string{1: "FAILED: bogus", 2: "FAILED: expression", 3: "FAILED: normal"} {
		failed := summary.Operations[i]
		s.Assert().Equal(label, failed.Label)
		s.Assert().True(failed.IsFailed())
		s.Assert().Empty(failed.Rolls)
		s.Assert().Zero(failed.Sides)
		s.Assert().Zero(failed.Total)
		s.Assert().Zero(failed.Modifier)
		s.Assert().Zero(failed.FinalResult)
	}

	s.Assert().Equal("d20+2", summary.Operations[4].Label)
	s.Assert().Equal(12, summary.Operations[4].FinalResult)
	s.Assert().Equal(18, summary.GrandTotal)

	s.Assert().Len(s.recorder.atLevel(slog.LevelError), 3)
	info := s.recorder.atLevel(slog.LevelInfo)
	s.Assert().Equal("Performing 5 dice roll operations", info[0].Message)
	s.Assert().Equal("Completed 5 operations, grand total: 18", info[len(info)-1].Message)
}

func (s *OrchestratorTestSuite) TestRollBatch_Empty() {
	summary, err := s.orchestrator.RollBatch(s.ctx, &dice.RollBatchInput{})
	s.Require().NoError(err)
	s.Assert().Empty(summary.Operations)
	s.Assert().Zero(summary.GrandTotal)
	s.Assert().Zero(summary.OperationCount)
}

func (s *OrchestratorTestSuite) TestRollBatch_PreservesOrder() {
	draws := []int{1, 2, 3}
	for _, v := range draws {
		s.mockRoller.EXPECT().RollN(1, 6).Return([]int{v}, nil)
	}

	ops := newOperations([]dice.OperationRequest{{}, {}, {}})
	summary, err := s.orchestrator.RollBatch(s.ctx, &dice.RollBatchInput{Operations: ops})
	s.Require().NoError(err)

	for i, v := range draws {
		s.Assert().Equal(v, summary.Operations[i].Total)
	}
	s.Assert().Equal(6, summary.GrandTotal)
}

func (s *OrchestratorTestSuite) TestRollBatch_Canceled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	ops := newOperations([]dice.OperationRequest{{}})
	summary, err := s.orchestrator.RollBatch(ctx, &dice.RollBatchInput{Operations: ops})
	s.Require().Error(err)
	s.Assert().Nil(summary)
	s.Assert().True(errors.IsCanceled(err))
	s.Assert().ErrorIs(err, context.Canceled)
}

func (s *OrchestratorTestSuite) TestRollBatch_RollerFailureBecomesPlaceholder() {
	s.mockRoller.EXPECT().RollN(2, 20).Return(nil, context.DeadlineExceeded)

	ops := []dice.Operation{dice.AdvantageOperation{Sides: 20, Modifier: 3}}
	summary, err := s.orchestrator.RollBatch(s.ctx, &dice.RollBatchInput{Operations: ops})
	s.Require().NoError(err)
	s.Assert().Equal("FAILED: advantage", summary.Operations[0].Label)
	s.Assert().Zero(summary.GrandTotal)
}

func (s *OrchestratorTestSuite) TestDecodeOperation() {
	testCases := []struct {
		name     string
		fields   map[string]any
		expected dice.Operation
	}{
		{"empty is normal d6", map[string]any{}, dice.NormalOperation{Sides: 6, Count: 1}},
		{"numbers decoded from JSON", map[string]any{"type": "normal", "sides": float64(8), "count": float64(2)},
			dice.NormalOperation{Sides: 8, Count: 2}},
		{"unknown keys ignored", map[string]any{"type": "advantage", "note": "sneak attack"},
			dice.AdvantageOperation{Sides: 20}},
		{"expression", map[string]any{"type": "expression", "expression": "2d4"},
			dice.ExpressionOperation{Expression: "2d4"}},
		{"unknown type", map[string]any{"type": "bogus"}, dice.UnknownOperation{Name: "bogus"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, dice.DecodeOperation(tc.fields))
		})
	}
}

func (s *OrchestratorTestSuite) TestDecodeOperation_Malformed() {
	testCases := []struct {
		name   string
		fields map[string]any
		opType string
	}{
		{"string sides", map[string]any{"sides": "six"}, "normal"},
		{"fractional sides", map[string]any{"type": "advantage", "sides": 2.5}, "advantage"},
		{"numeric expression", map[string]any{"type": "expression", "expression": 12}, "expression"},
		{"numeric type", map[string]any{"type": float64(5)}, "5"},
		{"null entry", nil, "normal"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			op := dice.DecodeOperation(tc.fields)
			s.Require().IsType(dice.InvalidOperation{}, op)
			s.Assert().Equal(tc.opType, op.Type())
		})
	}
}

func (s *OrchestratorTestSuite) TestRollBatch_MalformedEntryFailsAlone() {
	s.mockRoller.EXPECT().RollN(1, 6).Return([]int{4}, nil)
	s.mockRoller.EXPECT().RollN(1, 20).Return([]int{10}, nil)

	ops := dice.DecodeOperations([]map[string]any{
		{"type": "normal", "sides": float64(6), "count": float64(1)},
		{"sides": "six"},
		{"type": "normal", "sides": float64(20), "count": float64(1), "modifier": float64(5), "extra": true},
	})

	summary, err := s.orchestrator.RollBatch(s.ctx, &dice.RollBatchInput{Operations: ops})
	s.Require().NoError(err)
	s.Require().Len(summary.Operations, 3)
	s.Assert().Equal("d6", summary.Operations[0].Label)
	s.Assert().Equal("FAILED: normal", summary.Operations[1].Label)
	s.Assert().Equal(15, summary.Operations[2].FinalResult)
	s.Assert().Equal(19, summary.GrandTotal)

	failures := s.recorder.atLevel(slog.LevelError)
	s.Require().Len(failures, 1)
	s.Assert().Contains(failures[0].Message, "Operation 2 failed: malformed normal operation")
}

func (s *OrchestratorTestSuite) TestRollBatch_GrandTotalOverflowFailsEntry() {
	s.mockRoller.EXPECT().RollN(1, math.MaxInt).Return([]int{math.MaxInt}, nil).Times(2)

	ops := []dice.Operation{
		dice.NormalOperation{Sides: math.MaxInt, Count: 1},
		dice.NormalOperation{Sides: math.MaxInt, Count: 1},
	}
	summary, err := s.orchestrator.RollBatch(s.ctx, &dice.RollBatchInput{Operations: ops})
	s.Require().NoError(err)
	s.Assert().Equal(math.MaxInt, summary.GrandTotal)
	s.Assert().False(summary.Operations[0].IsFailed())
	s.Assert().Equal("FAILED: normal", summary.Operations[1].Label)
}
