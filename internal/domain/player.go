package domain

import "fmt"

// PlayerType tells a human seat from a machine seat.
type PlayerType string

const (
	PlayerHuman PlayerType = "human"
	PlayerAI    PlayerType = "ai"
)

// PlayerState is the seat state machine.
type PlayerState string

const (
	StateWaiting   PlayerState = "waiting"
	StateReady     PlayerState = "ready"
	StateThinking  PlayerState = "thinking"
	StatePlaying   PlayerState = "playing"
	StateSurrender PlayerState = "surrender"
	StateOut       PlayerState = "out"
)

// PartnerStatus tracks the partnership negotiation of a seat.
type PartnerStatus string

const (
	PartnerNone      PartnerStatus = "none"
	PartnerPending   PartnerStatus = "pending"
	PartnerConfirmed PartnerStatus = "confirmed"
)

// TableSize is the number of seats at a table.
const TableSize = 4

// Player is a seat owned by the room. Human and AI seats share it.
type Player struct {
	UserID        string
	Nickname      string
	Type          PlayerType
	Position      *int
	IsReady       bool
	IsDealer      bool
	IsPartner     bool
	PartnerStatus PartnerStatus
	Score         int
	State         PlayerState
	TurnCount     int
	IsEliminated  bool

	hand           *CardCollection
	sessionStarted bool
}

// NewPlayer returns a waiting seat with an empty hand.
func NewPlayer(userID, nickname string, typ PlayerType) *Player {
	return &Player{
		UserID:        userID,
		Nickname:      nickname,
		Type:          typ,
		PartnerStatus: PartnerNone,
		State:         StateWaiting,
		hand:          &CardCollection{},
	}
}

// SetHandCards replaces the hand with a sorted copy of cards.
// Later changes to the caller's slice do not reach the stored hand.
func (p *Player) SetHandCards(cards []Card) error {
	cc, err := NewCardCollection(cards...)
	if err != nil {
		return err
	}
	cc.Sort(true)
	p.hand = cc
	return nil
}

// HandCards returns a copy of the hand, ascending.
func (p *Player) HandCards() []Card {
	return p.hand.Cards()
}

func (p *Player) HandSize() int {
	return p.hand.Len()
}

// SetPosition seats the player. Seats are fixed once a session starts.
func (p *Player) SetPosition(pos int) error {
	if p.sessionStarted {
		return ErrSessionStarted
	}
	if pos < 0 || pos >= TableSize {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}
	p.Position = &pos
	return nil
}

// PartnerPosition returns the seat opposite this one, or -1 if unseated.
func (p *Player) PartnerPosition() int {
	if p.Position == nil {
		return -1
	}
	return (*p.Position + 2) % TableSize
}

func (p *Player) StartSession() {
	p.sessionStarted = true
}

func (p *Player) EndSession() {
	p.sessionStarted = false
}

func (p *Player) SessionStarted() bool {
	return p.sessionStarted
}

// SetReady moves a waiting seat to ready.
func (p *Player) SetReady() error {
	if p.State != StateWaiting && p.State != StateReady {
		return p.transitionError(StateReady)
	}
	p.IsReady = true
	p.State = StateReady
	return nil
}

// StartThinking marks the start of this seat's turn.
func (p *Player) StartThinking() error {
	if p.State != StateReady || p.IsEliminated {
		return p.transitionError(StateThinking)
	}
	p.State = StateThinking
	return nil
}

// CanPlay reports whether the seat may act this turn.
func (p *Player) CanPlay() bool {
	if p.IsEliminated || p.hand.Len() == 0 {
		return false
	}
	return p.State == StateReady || p.State == StateThinking
}

// PlayCards removes cards from the hand. Every card must be present by value.
func (p *Player) PlayCards(cards []Card) error {
	if !p.CanPlay() {
		return fmt.Errorf("%w: %s in state %s", ErrCannotPlay, p.UserID, p.State)
	}
	if len(cards) == 0 {
		return ErrEmptyPattern
	}
	if !p.hand.ContainsAll(cards) {
		return fmt.Errorf("%w: %v", ErrCardNotInHand, cards)
	}
	for _, c := range cards {
		p.hand.RemoveValue(c)
	}
	p.State = StatePlaying
	p.TurnCount++
	return nil
}

// EndTurn returns the seat to ready after a play or a pass.
func (p *Player) EndTurn() error {
	switch p.State {
	case StatePlaying, StateThinking:
		p.State = StateReady
		return nil
	}
	return p.transitionError(StateReady)
}

// Surrender is terminal for the current game.
func (p *Player) Surrender() {
	p.State = StateSurrender
}

// GoOffline drops the seat out of the game and releases its position.
func (p *Player) GoOffline() {
	p.State = StateOut
	p.IsEliminated = true
	p.IsReady = false
	p.Position = nil
}

// Reconnect clears elimination. The seat must be re-seated explicitly.
func (p *Player) Reconnect() {
	p.IsEliminated = false
	p.State = StateWaiting
}

func (p *Player) transitionError(to PlayerState) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.State, to)
}

// PlayerSnapshot is the serializable form of a seat.
type PlayerSnapshot struct {
	UserID        string        `json:"userId"`
	Nickname      string        `json:"nickname"`
	Type          PlayerType    `json:"type"`
	Position      *int          `json:"position,omitempty"`
	IsReady       bool          `json:"isReady"`
	IsDealer      bool          `json:"isDealer"`
	IsPartner     bool          `json:"isPartner"`
	PartnerStatus PartnerStatus `json:"partnerStatus"`
	Score         int           `json:"score"`
	HandCards     []Card        `json:"handCards,omitempty"`
	State         PlayerState   `json:"state"`
	TurnCount     int           `json:"turnCount"`
	IsEliminated  bool          `json:"isEliminated"`
}

func (p *Player) ToSnapshot() PlayerSnapshot {
	var pos *int
	if p.Position != nil {
		v := *p.Position
		pos = &v
	}
	return PlayerSnapshot{
		UserID:        p.UserID,
		Nickname:      p.Nickname,
		Type:          p.Type,
		Position:      pos,
		IsReady:       p.IsReady,
		IsDealer:      p.IsDealer,
		IsPartner:     p.IsPartner,
		PartnerStatus: p.PartnerStatus,
		Score:         p.Score,
		HandCards:     p.hand.Cards(),
		State:         p.State,
		TurnCount:     p.TurnCount,
		IsEliminated:  p.IsEliminated,
	}
}

// PlayerFromSnapshot rebuilds a seat. A snapshot without cards yields an empty hand.
func PlayerFromSnapshot(s PlayerSnapshot) (*Player, error) {
	p := NewPlayer(s.UserID, s.Nickname, s.Type)
	if s.Position != nil {
		v := *s.Position
		p.Position = &v
	}
	p.IsReady = s.IsReady
	p.IsDealer = s.IsDealer
	p.IsPartner = s.IsPartner
	if s.PartnerStatus != "" {
		p.PartnerStatus = s.PartnerStatus
	}
	p.Score = s.Score
	if s.State != "" {
		p.State = s.State
	}
	p.TurnCount = s.TurnCount
	p.IsEliminated = s.IsEliminated
	if err := p.SetHandCards(s.HandCards); err != nil {
		return nil, err
	}
	return p, nil
}
