// Package strategy provides the basic-strategy lookup used to drive
// simulated play.
package strategy

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/deck"
)

// Action is a basic-strategy recommendation. The conditional actions name
// what to do when the preferred move is not allowed.
type Action uint8

const (
	Hit Action = iota
	Stand
	Split
	Surrender
	Double
	DoubleOrHit
	DoubleOrStand
	SplitOrHit
	SurrenderOrHit
	numActions
)

var actionCodes = [numActions]string{
	Hit:            "H",
	Stand:          "S",
	Split:          "P",
	Surrender:      "R",
	Double:         "D",
	DoubleOrHit:    "Dh",
	DoubleOrStand:  "Ds",
	SplitOrHit:     "Ph",
	SurrenderOrHit: "Rh",
}

var actionNames = [numActions]string{
	Hit:            "hit",
	Stand:          "stand",
	Split:          "split",
	Surrender:      "surrender",
	Double:         "double",
	DoubleOrHit:    "double_or_hit",
	DoubleOrStand:  "double_or_stand",
	SplitOrHit:     "split_or_hit",
	SurrenderOrHit: "surrender_or_hit",
}

// Code returns the chart abbreviation, e.g. "Dh".
func (a Action) Code() string {
	if a < numActions {
		return actionCodes[a]
	}
	return "?"
}

// String returns the action name, e.g. "double_or_hit".
func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction parses a chart abbreviation.
func ParseAction(code string) (Action, error) {
	for a, c := range actionCodes {
		if c == code {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy action %q", code)
}

// Func picks an action for the player's cards against the dealer upcard.
// Implementations must be pure so they can be shared between workers.
type Func func(cards []deck.Rank, upcard deck.Rank) Action
