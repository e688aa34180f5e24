package app

import "guandan/internal/domain"

// MinPlayersToStartGame is the number of occupied seats a game needs.
const MinPlayersToStartGame = domain.TableSize

const (
	// DecksPerGame is how many 54-card decks are shuffled together for a deal.
	DecksPerGame = 2
	// HandSize is the number of cards each seat is dealt.
	HandSize = DecksPerGame * domain.CardsPerDeck / domain.TableSize
)

// finishPoints awards table points by finishing place, first place first.
var finishPoints = []int{3, 2, 1, 0}
