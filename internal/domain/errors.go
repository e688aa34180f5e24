package domain

import "errors"

var (
	ErrInvalidCard       = errors.New("invalid card")
	ErrDuplicateCard     = errors.New("card identity already in collection")
	ErrCardNotFound      = errors.New("card identity not in collection")
	ErrCardNotInHand     = errors.New("card not in hand")
	ErrEmptyPattern      = errors.New("pattern has no cards")
	ErrInvalidPattern    = errors.New("cards do not form a pattern")
	ErrSessionStarted    = errors.New("session already started")
	ErrCannotPlay        = errors.New("player cannot play now")
	ErrInvalidTransition = errors.New("invalid player state transition")
	ErrInvalidPosition   = errors.New("invalid seat position")
)
