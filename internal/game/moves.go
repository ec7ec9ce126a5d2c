package game

import "strings"

// Move is a player decision at a decision point.
type Move uint8

const (
	MoveHit Move = iota
	MoveStand
	MoveDouble
	MoveSplit
	MoveSurrender
	MoveEvenMoney
	MoveKeepBlackjack
	numMoves
)

var moveNames = [numMoves]string{
	MoveHit:           "hit",
	MoveStand:         "stand",
	MoveDouble:        "double",
	MoveSplit:         "split",
	MoveSurrender:     "surrender",
	MoveEvenMoney:     "even_money",
	MoveKeepBlackjack: "keep_blackjack",
}

// String returns the move's wire name, e.g. "even_money".
func (m Move) String() string {
	if m < numMoves {
		return moveNames[m]
	}
	return "unknown"
}

// ParseMove looks up a move by name.
func ParseMove(s string) (Move, bool) {
	for m, name := range moveNames {
		if name == s {
			return Move(m), true
		}
	}
	return 0, false
}

// MoveSet is a set of legal moves.
type MoveSet uint8

// NewMoveSet builds a set from moves.
func NewMoveSet(moves ...Move) MoveSet {
	var s MoveSet
	for _, m := range moves {
		s = s.With(m)
	}
	return s
}

// With returns the set with m added.
func (s MoveSet) With(m Move) MoveSet {
	return s | 1<<m
}

// Has reports whether m is in the set.
func (s MoveSet) Has(m Move) bool {
	return s&(1<<m) != 0
}

// Empty reports whether no move is legal.
func (s MoveSet) Empty() bool {
	return s == 0
}

// Moves lists the set in enumeration order.
func (s MoveSet) Moves() []Move {
	var out []Move
	for m := Move(0); m < numMoves; m++ {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s MoveSet) String() string {
	moves := s.Moves()
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}
