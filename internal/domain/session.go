package domain

// Phase represents the lifecycle stage of a game.
type Phase string

const (
	// PhaseLobby is the pre-game state where seats are filled.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active game state where cards are played.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a game concludes.
	PhaseEnded Phase = "ended"
)

// Choice is what a seat did on its turn.
type Choice string

const (
	ChoicePlay Choice = "play"
	ChoicePass Choice = "pass"
)

// Round identifies the trick in progress and whose turn it is.
type Round struct {
	Number          int    `json:"roundNumber"`
	CurrentPlayerID string `json:"currentPlayerId"`
}

// Play is one entry of the table log.
type Play struct {
	PlayerID string   `json:"playerId"`
	Choice   Choice   `json:"choice"`
	Cards    []Card   `json:"cards,omitempty"`
	Pattern  *Pattern `json:"pattern,omitempty"`
	Round    int      `json:"round"`
}

// Room exposes the seats of a table.
type Room interface {
	ActivePlayers() []*Player
}

// Session is the read surface of a running game.
type Session interface {
	Phase() Phase
	CurrentRound() Round
	Plays() []Play
	Scores() map[string]int
	Room() Room
	// CurrentPattern is the pattern to beat, nil when the seat leads.
	CurrentPattern() *Pattern
}

// HandCounts returns the number of cards held by each active seat.
func HandCounts(s Session) map[string]int {
	out := make(map[string]int)
	if s == nil || s.Room() == nil {
		return out
	}
	for _, p := range s.Room().ActivePlayers() {
		out[p.UserID] = p.HandSize()
	}
	return out
}

// FindPlayer looks up an active seat by id.
func FindPlayer(s Session, id string) *Player {
	if s == nil || s.Room() == nil {
		return nil
	}
	for _, p := range s.Room().ActivePlayers() {
		if p.UserID == id {
			return p
		}
	}
	return nil
}
