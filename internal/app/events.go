package app

import "guandan/internal/domain"

// EventKind identifies emitted table events for dispatch.
type EventKind string

const (
	EventGameStarted   EventKind = "game_started"
	EventHandDealt     EventKind = "hand_dealt"
	EventCardPlayed    EventKind = "card_played"
	EventTurnPassed    EventKind = "turn_passed"
	EventRoundResolved EventKind = "round_resolved"
	EventPlayerOut     EventKind = "player_out"
	EventGameEnded     EventKind = "game_ended"
)

// Event is a table event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	Phase           domain.Phase
	FirstTurnUserID string
}

type HandDealtPayload struct {
	UserID string
	Hand   []domain.Card
}

type CardPlayedPayload struct {
	UserID         string
	Cards          []domain.Card
	Pattern        *domain.Pattern
	NextTurnUserID string
}

type TurnPassedPayload struct {
	UserID         string
	NextTurnUserID string
}

// RoundResolvedPayload reports the seat that took a round and who leads next.
type RoundResolvedPayload struct {
	Round        int
	WinnerID     string
	NextLeaderID string
}

type PlayerOutPayload struct {
	UserID string
	Place  int
}

type GameEndedPayload struct {
	FinishOrder []string
	Scores      map[string]int
}
