package deck

import "errors"

// ErrDeckFull is returned when adding a card to a deck that already holds
// MaxCards cards. The deck is left unchanged.
var ErrDeckFull = errors.New("deck is full")

// ErrEmptyCode is returned when a deck code yields no catalogued card.
var ErrEmptyCode = errors.New("deck code contains no known cards")
