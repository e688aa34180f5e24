package brain

import (
	"time"

	"guandan/internal/bot/internal"
	"guandan/internal/domain"
)

const (
	// MaxSnapshots bounds the per-round table summaries kept in memory.
	MaxSnapshots = 200
	// MaxPlayRecords bounds the observed play log.
	MaxPlayRecords = 1000
)

// Snapshot is a per-round summary of the table as one seat saw it.
type Snapshot struct {
	Round          int                `json:"round"`
	HandCounts     map[string]int     `json:"handCounts"`
	CurrentPattern *domain.Pattern    `json:"currentPattern,omitempty"`
	TeamScores     map[string]int     `json:"teamScores"`
	Phase          internal.GamePhase `json:"phase"`
	Timestamp      time.Time          `json:"timestamp"`
}

// PlayRecord is one observed action by any seat. Resolved is set once the
// round it belongs to has a winner, and Won tells whether this play took it.
type PlayRecord struct {
	PlayerID  string          `json:"playerId"`
	Cards     []domain.Card   `json:"cards,omitempty"`
	Pattern   *domain.Pattern `json:"pattern,omitempty"`
	Choice    domain.Choice   `json:"choice"`
	Round     int             `json:"round"`
	Valid     bool            `json:"valid"`
	Resolved  bool            `json:"resolved"`
	Won       bool            `json:"won"`
	Timestamp time.Time       `json:"timestamp"`
}

// GameMemory stores a seat's private view of the game.
// Snapshots, PlayRecords and PlayerMemories are independent collections.
type GameMemory struct {
	OwnerID        string                   `json:"ownerId"`
	Snapshots      []Snapshot               `json:"snapshots"`
	PlayRecords    []PlayRecord             `json:"playRecords"`
	PlayerMemories map[string]*PlayerMemory `json:"playerMemories"`
}

// NewMemory initializes a fresh memory for the seat ownerID.
func NewMemory(ownerID string) *GameMemory {
	return &GameMemory{
		OwnerID:        ownerID,
		PlayerMemories: make(map[string]*PlayerMemory),
	}
}

// Clone returns a deep copy. Patterns are shared; they are never mutated.
func (m *GameMemory) Clone() *GameMemory {
	out := &GameMemory{
		OwnerID:        m.OwnerID,
		PlayerMemories: make(map[string]*PlayerMemory, len(m.PlayerMemories)),
	}
	if m.Snapshots != nil {
		out.Snapshots = make([]Snapshot, len(m.Snapshots))
		for i, snap := range m.Snapshots {
			snap.HandCounts = copyCounts(snap.HandCounts)
			snap.TeamScores = copyCounts(snap.TeamScores)
			out.Snapshots[i] = snap
		}
	}
	if m.PlayRecords != nil {
		out.PlayRecords = make([]PlayRecord, len(m.PlayRecords))
		for i, r := range m.PlayRecords {
			r.Cards = append([]domain.Card(nil), r.Cards...)
			out.PlayRecords[i] = r
		}
	}
	for id, pm := range m.PlayerMemories {
		out.PlayerMemories[id] = pm.clone()
	}
	return out
}

func copyCounts(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Reset clears all three collections at once. The owner is kept.
func (m *GameMemory) Reset() {
	m.Snapshots = nil
	m.PlayRecords = nil
	m.PlayerMemories = make(map[string]*PlayerMemory)
}

// AddSnapshot appends a round summary, dropping the oldest past MaxSnapshots.
func (m *GameMemory) AddSnapshot(s Snapshot) {
	m.Snapshots = append(m.Snapshots, s)
	if len(m.Snapshots) > MaxSnapshots {
		m.Snapshots = m.Snapshots[len(m.Snapshots)-MaxSnapshots:]
	}
}

// AddPlayRecord appends an observed play, dropping the oldest past MaxPlayRecords.
func (m *GameMemory) AddPlayRecord(r PlayRecord) {
	m.PlayRecords = append(m.PlayRecords, r)
	if len(m.PlayRecords) > MaxPlayRecords {
		m.PlayRecords = m.PlayRecords[len(m.PlayRecords)-MaxPlayRecords:]
	}
}

// LastSnapshot returns the most recent round summary.
func (m *GameMemory) LastSnapshot() (Snapshot, bool) {
	if len(m.Snapshots) == 0 {
		return Snapshot{}, false
	}
	return m.Snapshots[len(m.Snapshots)-1], true
}

// PlayerMemory returns the memory kept for a seat, if any.
func (m *GameMemory) PlayerMemory(id string) (*PlayerMemory, bool) {
	pm, ok := m.PlayerMemories[id]
	return pm, ok
}

// EnsurePlayer returns the memory for id, creating a neutral one if missing.
func (m *GameMemory) EnsurePlayer(id string) *PlayerMemory {
	if m.PlayerMemories == nil {
		m.PlayerMemories = make(map[string]*PlayerMemory)
	}
	pm, ok := m.PlayerMemories[id]
	if !ok {
		pm = NewPlayerMemory(id)
		m.PlayerMemories[id] = pm
	}
	return pm
}

// UpdatePlayerMemory merges update into the memory for id. Fields left nil in
// update keep their previous values.
func (m *GameMemory) UpdatePlayerMemory(id string, update PlayerMemoryUpdate) *PlayerMemory {
	pm := m.EnsurePlayer(id)
	pm.Merge(update)
	return pm
}

// Size is the total number of entries across the three collections.
func (m *GameMemory) Size() int {
	return len(m.Snapshots) + len(m.PlayRecords) + len(m.PlayerMemories)
}

// RecordsFor returns the play records of one seat, oldest first.
func (m *GameMemory) RecordsFor(id string) []PlayRecord {
	var out []PlayRecord
	for _, r := range m.PlayRecords {
		if r.PlayerID == id {
			out = append(out, r)
		}
	}
	return out
}

// TakeSnapshot summarizes the visible table state of session.
func TakeSnapshot(session domain.Session) Snapshot {
	s := Snapshot{
		HandCounts: domain.HandCounts(session),
		TeamScores: make(map[string]int),
		Timestamp:  time.Now(),
	}
	if session == nil {
		s.Phase = internal.DetectPhase(0, s.HandCounts)
		return s
	}
	s.Round = session.CurrentRound().Number
	s.CurrentPattern = session.CurrentPattern()
	for id, v := range session.Scores() {
		s.TeamScores[id] = v
	}
	s.Phase = internal.DetectPhase(s.Round, s.HandCounts)
	return s
}
