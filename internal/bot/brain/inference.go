package brain

import (
	"guandan/internal/domain"
)

// Estimator answers questions about the table from a seat's memory.
type Estimator struct {
	Memory *GameMemory
}

// NewEstimator creates a new reasoning engine over m.
func NewEstimator(m *GameMemory) *Estimator {
	return &Estimator{Memory: m}
}

// PartnerID returns the id of the seat opposite selfID, or "" if either is unseated.
func PartnerID(session domain.Session, selfID string) string {
	self := domain.FindPlayer(session, selfID)
	if self == nil || self.Position == nil {
		return ""
	}
	want := self.PartnerPosition()
	for _, p := range session.Room().ActivePlayers() {
		if p.Position != nil && *p.Position == want {
			return p.UserID
		}
	}
	return ""
}

// TableLeader returns the seat whose play currently holds the round.
func TableLeader(session domain.Session) string {
	if session == nil {
		return ""
	}
	round := session.CurrentRound().Number
	plays := session.Plays()
	for i := len(plays) - 1; i >= 0; i-- {
		pl := plays[i]
		if pl.Round != round {
			break
		}
		if pl.Choice == domain.ChoicePlay {
			return pl.PlayerID
		}
	}
	return ""
}

// Partner returns the memory kept about the owner's partner.
func (e *Estimator) Partner(session domain.Session) (*PlayerMemory, bool) {
	id := PartnerID(session, e.Memory.OwnerID)
	if id == "" {
		return nil, false
	}
	return e.Memory.PlayerMemory(id)
}

// Opponents returns the memories kept about seats that are neither the owner nor its partner.
func (e *Estimator) Opponents(session domain.Session) []*PlayerMemory {
	if session == nil || session.Room() == nil {
		return nil
	}
	partner := PartnerID(session, e.Memory.OwnerID)
	var out []*PlayerMemory
	for _, p := range session.Room().ActivePlayers() {
		if p.UserID == e.Memory.OwnerID || p.UserID == partner {
			continue
		}
		if pm, ok := e.Memory.PlayerMemory(p.UserID); ok {
			out = append(out, pm)
		}
	}
	return out
}

// OpponentAffinity is the strongest preference any opponent has shown for t.
func (e *Estimator) OpponentAffinity(session domain.Session, t domain.PatternType) float64 {
	best := 0.0
	for _, pm := range e.Opponents(session) {
		if v := pm.Preference(t); v > best {
			best = v
		}
	}
	return best
}

// PartnerWinning reports whether the owner's partner currently holds the round.
func (e *Estimator) PartnerWinning(session domain.Session) bool {
	partner := PartnerID(session, e.Memory.OwnerID)
	return partner != "" && TableLeader(session) == partner
}

// WinRate is the share of id's recorded plays that won their round.
func (e *Estimator) WinRate(id string) float64 {
	played, won := 0, 0
	for _, r := range e.Memory.RecordsFor(id) {
		if r.Choice != domain.ChoicePlay {
			continue
		}
		played++
		if r.Won {
			won++
		}
	}
	if played == 0 {
		return 0
	}
	return float64(won) / float64(played)
}
