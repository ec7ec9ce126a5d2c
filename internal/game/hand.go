package game

import (
	"strconv"
	"strings"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/money"
)

// Hand is one player or dealer hand. Everything other than the cards, the
// stakes and the flags is derived on each call so the hand can never report
// a stale value after a mutation.
type Hand struct {
	Cards         []deck.Card
	Bet           money.Amount // current stake including any double
	OriginalBet   money.Amount // stake before doubling
	Insurance     money.Amount
	IsSplit       bool
	IsDoubled     bool
	IsSurrendered bool
	SplitFromAces bool
	TookEvenMoney bool
}

// NewHand creates an empty hand with the given stake.
func NewHand(bet money.Amount) *Hand {
	return &Hand{
		Cards:       make([]deck.Card, 0, 4),
		Bet:         bet,
		OriginalBet: bet,
	}
}

// AddCard appends a card unless the hand is already done.
func (h *Hand) AddCard(c deck.Card) bool {
	if h.IsDone() {
		return false
	}
	h.Cards = append(h.Cards, c)
	return true
}

func (h *Hand) lowTotal() (total int, aces int) {
	for _, c := range h.Cards {
		if c.Rank == deck.Ace {
			aces++
		}
		total += c.Rank.Points()
	}
	return total, aces
}

// Value returns the best total: aces count one, and one ace is promoted to
// eleven when that does not bust the hand.
func (h *Hand) Value() int {
	total, aces := h.lowTotal()
	if aces > 0 && total+10 <= 21 {
		total += 10
	}
	return total
}

// IsSoft reports whether an ace is being counted as eleven.
func (h *Hand) IsSoft() bool {
	total, aces := h.lowTotal()
	return aces > 0 && total+10 <= 21
}

// IsBusted reports a total over 21.
func (h *Hand) IsBusted() bool {
	return h.Value() > 21
}

// IsBlackjack reports a natural: two cards worth 21 on a hand that did not
// come from a split and has not already been settled with even money.
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Value() == 21 && !h.IsSplit && !h.TookEvenMoney
}

// IsDone reports whether the hand can take no further action.
func (h *Hand) IsDone() bool {
	return h.IsBusted() ||
		h.IsBlackjack() ||
		h.IsSurrendered ||
		h.TookEvenMoney ||
		(h.IsDoubled && len(h.Cards) > 2) ||
		(h.SplitFromAces && len(h.Cards) > 1)
}

// IsPair reports a two card hand of matching rank.
func (h *Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// CanSplit checks the hand-level preconditions for a split. Split count and
// bankroll limits are checked by the Round.
func (h *Hand) CanSplit(rules Rules) bool {
	if !h.IsPair() || h.IsDoubled || h.IsSurrendered {
		return false
	}
	if h.Cards[0].Rank == deck.Ace {
		return !h.IsSplit || rules.AllowResplitAces
	}
	return true
}

// CanDouble checks the hand-level preconditions for doubling down.
func (h *Hand) CanDouble(rules Rules) bool {
	return len(h.Cards) == 2 &&
		!h.IsDoubled &&
		!h.IsSurrendered &&
		(!h.IsSplit || rules.AllowDoubleAfterSplit)
}

// CanSurrender checks the hand-level preconditions for surrender.
func (h *Hand) CanSurrender(rules Rules) bool {
	return rules.AllowSurrender &&
		len(h.Cards) == 2 &&
		!h.IsSplit &&
		!h.IsDoubled &&
		!h.IsSurrendered
}

// CanTakeEvenMoney reports whether even money may be taken against upcard.
func (h *Hand) CanTakeEvenMoney(rules Rules, upcard deck.Card) bool {
	return rules.EvenMoneyOffered &&
		h.IsBlackjack() &&
		upcard.Rank == deck.Ace &&
		!h.TookEvenMoney
}

// Status summarises the hand for display.
func (h *Hand) Status() string {
	var parts []string
	switch {
	case h.IsSurrendered:
		parts = append(parts, "SURRENDERED")
	case h.IsBusted():
		parts = append(parts, "BUSTED")
	case h.IsBlackjack():
		parts = append(parts, "BLACKJACK")
	case h.TookEvenMoney:
		parts = append(parts, "EVEN MONEY")
	case h.IsDone():
		parts = append(parts, "FINAL: "+strconv.Itoa(h.Value()))
	default:
		parts = append(parts, "Current: "+strconv.Itoa(h.Value()))
	}
	if h.IsSplit {
		parts = append(parts, "(Split)")
	}
	if h.IsDoubled {
		parts = append(parts, "(Doubled)")
	}
	if h.SplitFromAces {
		parts = append(parts, "(Split Aces)")
	}
	if h.Insurance > 0 {
		parts = append(parts, "(Insured)")
	}
	return strings.Join(parts, " ")
}

// String renders the cards followed by the status, e.g. "A♠ K♦ - BLACKJACK".
func (h *Hand) String() string {
	cards := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		cards[i] = c.String()
	}
	return strings.Join(cards, " ") + " - " + h.Status()
}

// Ranks appends the hand's ranks to dst and returns it.
func (h *Hand) Ranks(dst []deck.Rank) []deck.Rank {
	for _, c := range h.Cards {
		dst = append(dst, c.Rank)
	}
	return dst
}
