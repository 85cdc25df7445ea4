package engine

// EvaluateContracts settles bids against tricks won, once per game.
// With teams configured the contract is the sum of the partners' bids
// and bags accrue per team; otherwise every player settles alone.
func EvaluateContracts(s *GameState, sc *ContractScoring) {
	if s.ContractsApplied {
		return
	}
	s.ContractsApplied = true

	if s.TeamOf != nil && len(s.TeamScores) > 0 {
		evaluateTeamContracts(s, sc)
		return
	}

	for i := range s.Players {
		pp := &s.Players[i]
		if !pp.Active || pp.Bid < 0 {
			continue
		}
		if pp.NilBid {
			if pp.TricksWon == 0 {
				s.AddScore(uint8(i), sc.NilBonus)
			} else {
				s.AddScore(uint8(i), -sc.NilPenalty)
			}
			continue
		}

		contract := int32(pp.Bid)
		tricks := pp.TricksWon
		if tricks >= contract {
			s.AddScore(uint8(i), contract*sc.PointsPerTrickBid)
			overtricks := tricks - contract
			s.AddScore(uint8(i), overtricks*sc.OvertrickPoints)
			pp.Bags += overtricks
			if sc.BagLimit > 0 && pp.Bags >= sc.BagLimit {
				s.AddScore(uint8(i), -sc.BagPenalty)
				pp.Bags -= sc.BagLimit
			}
		} else {
			s.AddScore(uint8(i), -contract*sc.FailedPenalty)
		}
	}
}

func evaluateTeamContracts(s *GameState, sc *ContractScoring) {
	for team := range s.TeamScores {
		contract := int32(0)
		tricks := int32(0)
		anchor := -1

		for i := range s.Players {
			if i >= len(s.TeamOf) || int(s.TeamOf[i]) != team {
				continue
			}
			if anchor < 0 {
				anchor = i
			}
			pp := &s.Players[i]
			tricks += pp.TricksWon

			// Nil bids settle per player, credited to the team.
			if pp.NilBid {
				if pp.TricksWon == 0 {
					s.AddScore(uint8(i), sc.NilBonus)
				} else {
					s.AddScore(uint8(i), -sc.NilPenalty)
				}
				continue
			}
			if pp.Bid > 0 {
				contract += int32(pp.Bid)
			}
		}
		if anchor < 0 || contract == 0 {
			continue
		}

		if tricks >= contract {
			s.AddScore(uint8(anchor), contract*sc.PointsPerTrickBid)
			overtricks := tricks - contract
			s.AddScore(uint8(anchor), overtricks*sc.OvertrickPoints)

			s.TeamBags[team] += overtricks
			if sc.BagLimit > 0 && s.TeamBags[team] >= sc.BagLimit {
				s.AddScore(uint8(anchor), -sc.BagPenalty)
				s.TeamBags[team] -= sc.BagLimit
			}
		} else {
			s.AddScore(uint8(anchor), -contract*sc.FailedPenalty)
		}
	}
}

// ContractPhase finds the bidding phase carrying contract scoring
// parameters, or nil when the ruleset has no bidding.
func ContractPhase(p *Program) *PhaseInfo {
	for i := range p.Phases {
		if p.Phases[i].Tag == PhaseBidding {
			return &p.Phases[i]
		}
	}
	return nil
}
