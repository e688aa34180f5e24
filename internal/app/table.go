package app

import "guandan/internal/domain"

// Table is the state of one running game. It implements domain.Session and
// domain.Room; all mutation goes through Service.
type Table struct {
	phase       domain.Phase
	seats       []*domain.Player
	round       domain.Round
	plays       []domain.Play
	scores      map[string]int
	current     *domain.Pattern
	leader      string
	passes      int
	finishOrder []string
}

func (t *Table) Phase() domain.Phase             { return t.phase }
func (t *Table) CurrentRound() domain.Round      { return t.round }
func (t *Table) Plays() []domain.Play            { return t.plays }
func (t *Table) Room() domain.Room               { return t }
func (t *Table) CurrentPattern() *domain.Pattern { return t.current }

// Scores returns a copy of the table points earned so far.
func (t *Table) Scores() map[string]int {
	out := make(map[string]int, len(t.scores))
	for k, v := range t.scores {
		out[k] = v
	}
	return out
}

// ActivePlayers returns the seats still connected, in seat order.
func (t *Table) ActivePlayers() []*domain.Player {
	out := make([]*domain.Player, 0, len(t.seats))
	for _, p := range t.seats {
		if !p.IsEliminated {
			out = append(out, p)
		}
	}
	return out
}

// Leader is the seat whose play currently holds the round, "" on an open table.
func (t *Table) Leader() string {
	return t.leader
}

// FinishOrder lists seats in the order they emptied their hands.
func (t *Table) FinishOrder() []string {
	return append([]string(nil), t.finishOrder...)
}

// Player returns the seat with id, or nil.
func (t *Table) Player(id string) *domain.Player {
	for _, p := range t.seats {
		if p.UserID == id {
			return p
		}
	}
	return nil
}

func (t *Table) seatIndex(id string) int {
	for i, p := range t.seats {
		if p.UserID == id {
			return i
		}
	}
	return -1
}

// holding reports whether p is still in the game with cards in hand.
func holding(p *domain.Player) bool {
	return p != nil && !p.IsEliminated && p.HandSize() > 0
}

// nextHolder returns the first seat after id, in seat order, that still holds cards.
func (t *Table) nextHolder(id string) string {
	start := t.seatIndex(id)
	for step := 1; step <= len(t.seats); step++ {
		p := t.seats[(start+step)%len(t.seats)]
		if holding(p) {
			return p.UserID
		}
	}
	return ""
}

func (t *Table) holders() int {
	n := 0
	for _, p := range t.seats {
		if holding(p) {
			n++
		}
	}
	return n
}

// partnerOf returns the seat opposite id.
func (t *Table) partnerOf(id string) *domain.Player {
	p := t.Player(id)
	if p == nil || p.Position == nil {
		return nil
	}
	want := p.PartnerPosition()
	for _, other := range t.seats {
		if other.Position != nil && *other.Position == want {
			return other
		}
	}
	return nil
}
