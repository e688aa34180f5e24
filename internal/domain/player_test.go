package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seatedPlayer(t *testing.T, hand string) *Player {
	t.Helper()
	p := NewPlayer("u1", "alice", PlayerHuman)
	require.NoError(t, p.SetPosition(0))
	require.NoError(t, p.SetHandCards(parseCards(hand)))
	require.NoError(t, p.SetReady())
	p.StartSession()
	return p
}

func TestPlayerTurnCycle(t *testing.T) {
	p := seatedPlayer(t, "3S 4S 5S")
	require.True(t, p.CanPlay())

	require.NoError(t, p.StartThinking())
	require.Equal(t, StateThinking, p.State)

	require.NoError(t, p.PlayCards(parseCards("4S")))
	require.Equal(t, StatePlaying, p.State)
	require.Equal(t, 2, p.HandSize())
	require.Equal(t, 1, p.TurnCount)
	require.False(t, p.CanPlay())

	require.NoError(t, p.EndTurn())
	require.Equal(t, StateReady, p.State)
	require.True(t, p.CanPlay())
}

func TestPlayerPlayCardsRequiresValuePresence(t *testing.T) {
	p := seatedPlayer(t, "3S 4S")
	err := p.PlayCards(parseCards("4H"))
	require.ErrorIs(t, err, ErrCardNotInHand)
	require.Equal(t, 2, p.HandSize())

	err = p.PlayCards(parseCards("3S 3S"))
	require.ErrorIs(t, err, ErrCardNotInHand, "duplicates must be present twice")
}

func TestPlayerCannotPlayWhenWaiting(t *testing.T) {
	p := NewPlayer("u1", "alice", PlayerAI)
	require.NoError(t, p.SetHandCards(parseCards("3S")))
	require.ErrorIs(t, p.PlayCards(parseCards("3S")), ErrCannotPlay)
	require.ErrorIs(t, p.StartThinking(), ErrInvalidTransition)
}

func TestPlayerPositionLockedAfterSessionStart(t *testing.T) {
	p := seatedPlayer(t, "3S")
	require.ErrorIs(t, p.SetPosition(1), ErrSessionStarted)
	require.Equal(t, 0, *p.Position)

	p.EndSession()
	require.NoError(t, p.SetPosition(1))
	require.Equal(t, 3, p.PartnerPosition())

	require.ErrorIs(t, p.SetPosition(4), ErrInvalidPosition)
}

func TestPlayerOfflineAndReconnect(t *testing.T) {
	p := seatedPlayer(t, "3S")
	p.GoOffline()
	require.Equal(t, StateOut, p.State)
	require.True(t, p.IsEliminated)
	require.Nil(t, p.Position)
	require.False(t, p.CanPlay())

	p.Reconnect()
	require.False(t, p.IsEliminated)
	require.Equal(t, StateWaiting, p.State)
	require.Nil(t, p.Position, "position is not restored automatically")
}

func TestPlayerSurrender(t *testing.T) {
	p := seatedPlayer(t, "3S")
	p.Surrender()
	require.Equal(t, StateSurrender, p.State)
	require.False(t, p.CanPlay())
}

func TestPlayerHandCopySafety(t *testing.T) {
	p := NewPlayer("u1", "alice", PlayerAI)
	cards := parseCards("AS KS QS")
	require.NoError(t, p.SetHandCards(cards))

	cards[0] = MustCard("x", SuitHeart, "3")

	got := p.HandCards()
	require.Len(t, got, 3)
	require.Equal(t, []string{"Q", "K", "A"}, []string{got[0].Rank, got[1].Rank, got[2].Rank})
}

func TestPlayerSnapshotRoundTrip(t *testing.T) {
	p := seatedPlayer(t, "3S 4H")
	p.Score = 12
	p.IsDealer = true

	snap := p.ToSnapshot()
	restored, err := PlayerFromSnapshot(snap)
	require.NoError(t, err)
	require.Equal(t, p.UserID, restored.UserID)
	require.Equal(t, 0, *restored.Position)
	require.Equal(t, 12, restored.Score)
	require.True(t, restored.IsDealer)
	require.Equal(t, 2, restored.HandSize())

	snap.HandCards = nil
	empty, err := PlayerFromSnapshot(snap)
	require.NoError(t, err)
	require.Zero(t, empty.HandSize())
}
