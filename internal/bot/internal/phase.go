package internal

// GamePhase describes the current strategic stage of a game.
type GamePhase string

const (
	// PhaseEarly covers the first rounds while every hand is still large.
	PhaseEarly GamePhase = "early"
	// PhaseMid indicates no one has reached the endgame threshold yet.
	PhaseMid GamePhase = "mid"
	// PhaseLate indicates some active seat is close to going out, or the game has run long.
	PhaseLate GamePhase = "late"
)

const (
	earlyRoundLimit = 3
	earlyHandSize   = 20
	lateHandSize    = 6
	lateRoundLimit  = 15
)

// DetectPhase infers the phase from the round number and the active hand sizes.
// Seats that already went out (zero cards) count toward the endgame.
func DetectPhase(round int, handCounts map[string]int) GamePhase {
	if len(handCounts) == 0 {
		return PhaseMid
	}

	minHand := -1
	for _, n := range handCounts {
		if minHand < 0 || n < minHand {
			minHand = n
		}
	}

	if minHand <= lateHandSize || round >= lateRoundLimit {
		return PhaseLate
	}
	if round <= earlyRoundLimit && minHand >= earlyHandSize {
		return PhaseEarly
	}
	return PhaseMid
}
