package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardCollection(t *testing.T) {
	t.Run("duplicate values allowed, duplicate identities rejected", func(t *testing.T) {
		a := MustCard("a", SuitHeart, "5")
		b := MustCard("b", SuitHeart, "5")

		cc, err := NewCardCollection(a, b)
		require.NoError(t, err)
		require.Equal(t, 2, cc.Len())

		require.ErrorIs(t, cc.Add(a), ErrDuplicateCard)
	})

	t.Run("remove by identity", func(t *testing.T) {
		cc, err := NewCardCollection(parseCards("3S 4S")...)
		require.NoError(t, err)

		require.NoError(t, cc.Remove("c0"))
		require.Equal(t, 1, cc.Len())
		require.ErrorIs(t, cc.Remove("c0"), ErrCardNotFound)
	})

	t.Run("membership by value", func(t *testing.T) {
		cc, err := NewCardCollection(parseCards("3S 4S 4S")...)
		require.NoError(t, err)

		require.True(t, cc.Contains(MustCard("z", SuitSpade, "4")))
		require.False(t, cc.Contains(MustCard("z", SuitHeart, "4")))
		require.True(t, cc.ContainsAll(parseCards("4S 4S")))
		require.False(t, cc.ContainsAll(parseCards("3S 3S")))
	})

	t.Run("sort both directions", func(t *testing.T) {
		cc, err := NewCardCollection(parseCards("KS 3H BJ 9D")...)
		require.NoError(t, err)

		cc.Sort(true)
		require.Equal(t, "3", cc.Cards()[0].Rank)
		require.Equal(t, "BJ", cc.Cards()[3].Rank)

		cc.Sort(false)
		require.Equal(t, "BJ", cc.Cards()[0].Rank)
		require.Equal(t, "3", cc.Cards()[3].Rank)
	})

	t.Run("group by suit", func(t *testing.T) {
		cc, err := NewCardCollection(parseCards("3S 4S 5H SJ")...)
		require.NoError(t, err)

		groups := cc.GroupBySuit()
		require.Len(t, groups[SuitSpade], 2)
		require.Len(t, groups[SuitHeart], 1)
		require.Len(t, groups[SuitJoker], 1)
	})

	t.Run("cards returns a copy", func(t *testing.T) {
		cc, err := NewCardCollection(parseCards("3S")...)
		require.NoError(t, err)

		cards := cc.Cards()
		cards[0] = MustCard("x", SuitHeart, "A")
		require.Equal(t, "3", cc.Cards()[0].Rank)
	})
}
