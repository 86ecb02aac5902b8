package dice_test

import (
	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/pkg/roller"
)

func (s *OrchestratorTestSuite) TestAbilityModifier() {
	testCases := map[int]int{1: -5, 3: -4, 8: -1, 9: -1, 10: 0, 11: 0, 12: 1, 15: 2, 18: 4, 20: 5}
	for score, expected := range testCases {
		s.Assert().Equal(expected, dice.AbilityModifier(score), "score %d", score)
	}
}

func (s *OrchestratorTestSuite) TestRollCharacterStats_DropLowest() {
	// Ties on the lowest die drop only one of them
	s.mockRoller.EXPECT().RollN(4, 6).Return([]int{2, 6, 2, 5}, nil).Times(6)

	set, err := s.orchestrator.RollCharacterStats(s.ctx, &dice.RollCharacterStatsInput{})
	s.Require().NoError(err)

	s.Assert().Equal(dice.MethodDropLowest, set.Method)
	s.Require().Len(set.Scores, 6)
	for _, ability := range dice.Abilities {
		s.Assert().Equal(13, set.Scores[ability])
		s.Assert().Equal(1, set.Modifiers[ability])
	}
	s.Require().NotNil(set.TotalPoints)
	s.Assert().Equal(78, *set.TotalPoints)
}

func (s *OrchestratorTestSuite) TestRollCharacterStats_PointBuy() {
	s.mockRoller.EXPECT().RollN(1, 8).Return([]int{1}, nil).Times(3)
	s.mockRoller.EXPECT().RollN(1, 8).Return([]int{8}, nil).Times(3)

	set, err := s.orchestrator.RollCharacterStats(s.ctx, &dice.RollCharacterStatsInput{Method: dice.MethodPointBuy})
	s.Require().NoError(err)

	s.Assert().Nil(set.TotalPoints)
	s.Assert().Equal(8, set.Scores["Strength"])
	s.Assert().Equal(-1, set.Modifiers["Strength"])
	s.Assert().Equal(15, set.Scores["Charisma"])
	s.Assert().Equal(2, set.Modifiers["Charisma"])
}

func (s *OrchestratorTestSuite) TestRollCharacterStats_Ranges() {
	o, err := dice.NewOrchestrator(&dice.Config{Roller: roller.NewSeeded(5)})
	s.Require().NoError(err)

	ranges := map[string][2]int{
		dice.MethodDropLowest: {3, 18},
		dice.Method3d6:        {3, 18},
		dice.Method1d20:       {1, 20},
		dice.MethodPointBuy:   {8, 15},
	}

	for method, bounds := range ranges {
		s.Run(method, func() {
			for i := 0; i < 20; i++ {
				set, err := o.RollCharacterStats(s.ctx, &dice.RollCharacterStatsInput{Method: method})
				s.Require().NoError(err)
				s.Require().Len(set.Scores, 6)

				total := 0
				for _, ability := range dice.Abilities {
					score := set.Scores[ability]
					s.Assert().GreaterOrEqual(score, bounds[0])
					s.Assert().LessOrEqual(score, bounds[1])
					s.Assert().Equal(dice.AbilityModifier(score), set.Modifiers[ability])
					total += score
				}

				if method == dice.MethodPointBuy {
					s.Assert().Nil(set.TotalPoints)
				} else {
					s.Require().NotNil(set.TotalPoints)
					s.Assert().Equal(total, *set.TotalPoints)
				}
			}
		})
	}
}

func (s *OrchestratorTestSuite) TestRollCharacterStats_UnknownMethod() {
	_, err := s.orchestrator.RollCharacterStats(s.ctx, &dice.RollCharacterStatsInput{Method: "2d6+6"})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(errors.GetMessage(err), "'4d6_drop_lowest', '3d6', '1d20', or 'point_buy'")
}

func (s *OrchestratorTestSuite) TestPointBuyCosts() {
	s.Assert().Len(dice.PointBuyCosts, dice.PointBuyMax-dice.PointBuyMin+1)
	s.Assert().Equal(0, dice.PointBuyCosts[dice.PointBuyMin])
	s.Assert().Equal(9, dice.PointBuyCosts[dice.PointBuyMax])
}
