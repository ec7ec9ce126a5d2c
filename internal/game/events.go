package game

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/money"
)

// EventType identifies a step in a round's history.
type EventType string

const (
	EventTypeBet             EventType = "bet"
	EventTypeDeal            EventType = "deal"
	EventTypeHit             EventType = "hit"
	EventTypeStand           EventType = "stand"
	EventTypeDouble          EventType = "double"
	EventTypeSplit           EventType = "split"
	EventTypeSurrender       EventType = "surrender"
	EventTypeInsurance       EventType = "insurance"
	EventTypeEvenMoney       EventType = "even_money"
	EventTypeDealerPlay      EventType = "dealer_play"
	EventTypeInsuranceSettle EventType = "insurance_settle"
	EventTypeSettle          EventType = "settle"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// RoundEvent records one step of a round. Hand is -1 for steps that
// concern the whole round. Outcome is only meaningful on settle events.
type RoundEvent struct {
	Type        EventType
	Timestamp   time.Time
	Hand        int
	Amount      money.Amount
	Outcome     Outcome
	DealerCard  deck.Card
	PlayerCards []deck.Card
}

// String renders the event on one line for logs.
func (e RoundEvent) String() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	if e.Hand >= 0 {
		fmt.Fprintf(&b, " hand=%d", e.Hand)
	}
	if e.Type == EventTypeSettle {
		fmt.Fprintf(&b, " outcome=%s", e.Outcome)
	}
	if e.Amount != 0 {
		fmt.Fprintf(&b, " amount=%s", e.Amount)
	}
	if len(e.PlayerCards) > 0 {
		b.WriteString(" cards=")
		for i, c := range e.PlayerCards {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(c.String())
		}
	}
	return b.String()
}

// event appends a step to the round's history stamped with the player's
// clock. Hand cards are copied so later draws don't rewrite the entry.
func (r *Round) event(typ EventType, i int, amount money.Amount) *RoundEvent {
	e := RoundEvent{
		Type:      typ,
		Timestamp: r.player.clock.Now(),
		Hand:      i,
		Amount:    amount,
	}
	if up, ok := r.DealerUpcard(); ok {
		e.DealerCard = up
	}
	if h, ok := r.hand(i); ok {
		e.PlayerCards = slices.Clone(h.Cards)
	}
	r.events = append(r.events, e)
	return &r.events[len(r.events)-1]
}
