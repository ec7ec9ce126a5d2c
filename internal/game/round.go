package game

import (
	"slices"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/money"
)

// RoundState is the phase of a round.
type RoundState uint8

const (
	NotStarted RoundState = iota
	InitialDeal
	PlayerTurn
	DealerTurn
	Complete
)

// String returns the string representation of the state
func (s RoundState) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case InitialDeal:
		return "InitialDeal"
	case PlayerTurn:
		return "PlayerTurn"
	case DealerTurn:
		return "DealerTurn"
	case Complete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Round plays one hand of blackjack for a single player. The round owns the
// shoe and the dealer hand while it is alive; the player outlives it.
type Round struct {
	rules  Rules
	player *Player
	shoe   *deck.Shoe
	dealer *Hand
	state  RoundState

	dealerPlayed bool
	starved      bool
	splits       int
	doubles      int
	wagers       WagerStats
	events       []RoundEvent
	result       *RoundResult
}

// NewRound creates a round in the NotStarted state.
func NewRound(rules Rules, player *Player, shoe *deck.Shoe) *Round {
	return &Round{
		rules:  rules,
		player: player,
		shoe:   shoe,
		dealer: NewHand(0),
	}
}

// State returns the current phase.
func (r *Round) State() RoundState { return r.state }

// Rules returns the rules the round is played under.
func (r *Round) Rules() Rules { return r.rules }

// Player returns the player the round settles against.
func (r *Round) Player() *Player { return r.player }

// Shoe returns the shoe cards are drawn from.
func (r *Round) Shoe() *deck.Shoe { return r.shoe }

// Hands returns the player's active hands in play order.
func (r *Round) Hands() []*Hand { return r.player.Hands }

// DealerHand returns the dealer's hand. Callers must not modify it.
func (r *Round) DealerHand() *Hand { return r.dealer }

// DealerUpcard returns the dealer's face-up card.
func (r *Round) DealerUpcard() (deck.Card, bool) {
	if len(r.dealer.Cards) == 0 {
		return deck.Card{}, false
	}
	return r.dealer.Cards[0], true
}

// Result returns the settlement of a completed round.
func (r *Round) Result() (*RoundResult, bool) {
	return r.result, r.result != nil
}

// StartRound takes the bet and deals two cards each, player first. A round
// can be started when it is new or after the previous round completed. If
// the shoe runs dry during the deal the round is settled as a dead hand and
// is Complete when StartRound returns.
func (r *Round) StartRound(bet money.Amount) error {
	if bet <= 0 || bet < r.rules.MinBet || bet > r.rules.MaxBet {
		return newError(KindInvalidBet, "bet %s must be between %s and %s", bet, r.rules.MinBet, r.rules.MaxBet)
	}
	if r.state != NotStarted && r.state != Complete {
		return newError(KindInvalidState, "previous round is %s", r.state)
	}
	if r.player.Bankroll < bet {
		return newError(KindInsufficientFunds, "bet %s exceeds bankroll %s", bet, r.player.Bankroll)
	}

	r.player.Bankroll -= bet
	r.player.Stats.Wagers.Original += bet
	r.player.ResetHands(bet)
	r.dealer = NewHand(0)
	r.dealerPlayed = false
	r.starved = false
	r.splits = 0
	r.doubles = 0
	r.wagers = WagerStats{Original: bet}
	r.events = nil
	r.result = nil
	r.state = InitialDeal
	r.event(EventTypeBet, 0, bet)

	hand := r.player.Hands[0]
	for range 2 {
		if !r.deal(hand) || !r.deal(r.dealer) {
			r.settleDead()
			return nil
		}
	}

	r.event(EventTypeDeal, 0, 0)
	r.state = PlayerTurn
	return nil
}

func (r *Round) deal(h *Hand) bool {
	c, ok := r.shoe.Draw()
	if !ok {
		r.starved = true
		return false
	}
	h.Cards = append(h.Cards, c)
	return true
}

func (r *Round) requireTurn(action string) error {
	if r.state != PlayerTurn {
		return newError(KindInvalidState, "%s requires %s, round is %s", action, PlayerTurn, r.state)
	}
	return nil
}

func (r *Round) hand(i int) (*Hand, bool) {
	if i < 0 || i >= len(r.player.Hands) {
		return nil, false
	}
	return r.player.Hands[i], true
}

func (r *Round) upcardIsAce() bool {
	up, ok := r.DealerUpcard()
	return ok && up.Rank == deck.Ace
}

// Hit draws one card to hand i. It reports false when the hand is done or
// the shoe cannot supply a card.
func (r *Round) Hit(i int) (bool, error) {
	if err := r.requireTurn("hit"); err != nil {
		return false, err
	}
	h, ok := r.hand(i)
	if !ok || h.IsDone() {
		return false, nil
	}
	c, ok := r.shoe.Draw()
	if !ok {
		return false, nil
	}
	if !h.AddCard(c) {
		return false, nil
	}
	r.event(EventTypeHit, i, 0)
	return true, nil
}

// Stand ends play on hand i.
func (r *Round) Stand(i int) (bool, error) {
	if err := r.requireTurn("stand"); err != nil {
		return false, err
	}
	h, ok := r.hand(i)
	if !ok || h.IsDone() {
		return false, nil
	}
	r.event(EventTypeStand, i, 0)
	return true, nil
}

func (r *Round) canDouble(h *Hand) bool {
	return !h.IsDone() && h.CanDouble(r.rules) && r.player.Bankroll >= h.Bet
}

// DoubleDown doubles the stake on hand i and draws exactly one card.
func (r *Round) DoubleDown(i int) (bool, error) {
	if err := r.requireTurn("double"); err != nil {
		return false, err
	}
	h, ok := r.hand(i)
	if !ok || !r.canDouble(h) {
		return false, nil
	}
	c, ok := r.shoe.Draw()
	if !ok {
		return false, nil
	}

	extra := h.Bet
	r.player.Bankroll -= extra
	r.player.Stats.Wagers.Additional += extra
	r.player.Stats.Doubles++
	r.wagers.Additional += extra
	r.doubles++

	h.Bet += extra
	h.IsDoubled = true
	h.Cards = append(h.Cards, c)
	r.event(EventTypeDouble, i, extra)
	return true, nil
}

func (r *Round) canSplit(h *Hand) bool {
	return h.CanSplit(r.rules) &&
		len(r.player.Hands)-1 < r.rules.MaxSplits &&
		r.player.Bankroll >= h.OriginalBet
}

// Split splits the pair in hand i. The second card moves to a new hand
// placed right after i and each hand receives one fresh card. Nothing
// changes unless both cards can be drawn.
func (r *Round) Split(i int) (bool, error) {
	if err := r.requireTurn("split"); err != nil {
		return false, err
	}
	h, ok := r.hand(i)
	if !ok || !r.canSplit(h) || !r.shoe.CanDraw(2) {
		return false, nil
	}

	aces := h.Cards[0].Rank == deck.Ace
	second := h.Cards[1]
	h.Cards = h.Cards[:1]
	h.IsSplit = true

	nh := NewHand(h.OriginalBet)
	nh.IsSplit = true
	nh.Cards = append(nh.Cards, second)
	if aces {
		h.SplitFromAces = true
		nh.SplitFromAces = true
	}

	r.deal(h)
	r.deal(nh)
	r.player.Hands = slices.Insert(r.player.Hands, i+1, nh)

	r.player.Bankroll -= h.OriginalBet
	r.player.Stats.Wagers.Additional += h.OriginalBet
	r.player.Stats.Splits++
	r.wagers.Additional += h.OriginalBet
	r.splits++
	r.event(EventTypeSplit, i, h.OriginalBet)
	return true, nil
}

func (r *Round) canSurrender(h *Hand) bool {
	if !h.CanSurrender(r.rules) || h.IsDone() {
		return false
	}
	return r.rules.EarlySurrender || !r.dealer.IsBlackjack()
}

// Surrender forfeits half the stake of hand i. The hand is settled
// immediately.
func (r *Round) Surrender(i int) (bool, error) {
	if err := r.requireTurn("surrender"); err != nil {
		return false, err
	}
	h, ok := r.hand(i)
	if !ok || !r.canSurrender(h) {
		return false, nil
	}

	h.IsSurrendered = true
	refund := h.Bet.Half()
	r.player.Bankroll += refund
	r.player.UpdateStats(OutcomeSurrender, refund, h)
	r.event(EventTypeSurrender, i, refund)
	return true, nil
}

// PlaceInsurance stakes half the original bet of hand i against a dealer
// natural. Only offered on an unsplit two card hand when the dealer shows
// an ace.
func (r *Round) PlaceInsurance(i int) (bool, error) {
	if err := r.requireTurn("insurance"); err != nil {
		return false, err
	}
	h, ok := r.hand(i)
	if !ok || !r.rules.InsuranceOffered || !r.upcardIsAce() {
		return false, nil
	}
	if h.Insurance > 0 || h.IsSplit || len(h.Cards) != 2 || h.TookEvenMoney || h.IsSurrendered {
		return false, nil
	}
	stake := h.OriginalBet.Half()
	if r.player.Bankroll < stake {
		return false, nil
	}

	r.player.Bankroll -= stake
	r.player.Stats.InsurancesTaken++
	r.player.Stats.Wagers.Insurance += stake
	r.wagers.Insurance += stake
	h.Insurance = stake
	r.event(EventTypeInsurance, i, stake)
	return true, nil
}

// canTakeEvenMoney is false for an insured natural.
func (r *Round) canTakeEvenMoney(h *Hand) bool {
	up, ok := r.DealerUpcard()
	return ok && h.Insurance == 0 && h.CanTakeEvenMoney(r.rules, up)
}

// TakeEvenMoney settles a natural on hand i at 1:1 against a dealer ace.
func (r *Round) TakeEvenMoney(i int) (bool, error) {
	if err := r.requireTurn("even money"); err != nil {
		return false, err
	}
	h, ok := r.hand(i)
	if !ok || !r.canTakeEvenMoney(h) {
		return false, nil
	}

	h.TookEvenMoney = true
	payout := h.Bet * 2
	r.player.Bankroll += payout
	r.player.UpdateStats(OutcomeWin, payout, h)
	r.event(EventTypeEvenMoney, i, payout)
	return true, nil
}

func (r *Round) keepBlackjack(i int) (bool, error) {
	if err := r.requireTurn("keep blackjack"); err != nil {
		return false, err
	}
	h, ok := r.hand(i)
	return ok && h.IsBlackjack(), nil
}

var moveHandlers = [numMoves]func(*Round, int) (bool, error){
	MoveHit:           (*Round).Hit,
	MoveStand:         (*Round).Stand,
	MoveDouble:        (*Round).DoubleDown,
	MoveSplit:         (*Round).Split,
	MoveSurrender:     (*Round).Surrender,
	MoveEvenMoney:     (*Round).TakeEvenMoney,
	MoveKeepBlackjack: (*Round).keepBlackjack,
}

// Execute applies move to hand i.
func (r *Round) Execute(move Move, i int) (bool, error) {
	if move >= numMoves {
		return false, nil
	}
	return moveHandlers[move](r, i)
}

// ValidMoves lists the moves currently legal for hand i given the rules,
// the bankroll and the hand. A finished hand has no moves, except a pair
// of split aces when resplitting is allowed.
func (r *Round) ValidMoves(i int) MoveSet {
	if r.state != PlayerTurn {
		return 0
	}
	h, ok := r.hand(i)
	if !ok {
		return 0
	}

	if r.canTakeEvenMoney(h) {
		return NewMoveSet(MoveEvenMoney, MoveKeepBlackjack)
	}
	if h.IsDone() {
		if h.SplitFromAces && r.canSplit(h) {
			return NewMoveSet(MoveSplit)
		}
		return 0
	}

	moves := NewMoveSet(MoveHit, MoveStand)
	if r.canSurrender(h) {
		moves = moves.With(MoveSurrender)
	}
	if r.canDouble(h) {
		moves = moves.With(MoveDouble)
	}
	if r.canSplit(h) {
		moves = moves.With(MoveSplit)
	}
	return moves
}

func (r *Round) dealerMustHit() bool {
	v := r.dealer.Value()
	return v < 17 || (v == 17 && r.rules.DealerHitsSoft17 && r.dealer.IsSoft())
}

// PlayDealerHand draws dealer cards: below 17 always, and on soft 17 when
// the rules say so. It reports false if the shoe ran out, in which case
// FinishRound settles the round as a dead hand.
func (r *Round) PlayDealerHand() (bool, error) {
	if r.state != PlayerTurn && r.state != DealerTurn {
		return false, newError(KindInvalidState, "dealer cannot play while round is %s", r.state)
	}
	r.state = DealerTurn
	if r.dealerPlayed {
		return !r.starved, nil
	}
	r.dealerPlayed = true

	for r.dealerMustHit() {
		if !r.deal(r.dealer) {
			return false, nil
		}
	}
	r.event(EventTypeDealerPlay, -1, 0)
	return true, nil
}

// needsDealer reports whether any hand still has to be compared against
// the dealer's final total.
func (r *Round) needsDealer() bool {
	for _, h := range r.player.Hands {
		if !h.IsBusted() && !h.IsSurrendered && !h.TookEvenMoney && !h.IsBlackjack() {
			return true
		}
	}
	return false
}

// ResolveHand computes the outcome of h against the dealer's current hand.
// Payout is the amount returned to the bankroll, stake included.
func (r *Round) ResolveHand(h *Hand) (Outcome, money.Amount) {
	if h.IsSurrendered {
		return OutcomeSurrender, h.Bet.Half()
	}
	if h.TookEvenMoney {
		return OutcomeWin, h.Bet * 2
	}

	playerValue, dealerValue := h.Value(), r.dealer.Value()
	playerNatural, dealerNatural := h.IsBlackjack(), r.dealer.IsBlackjack()

	switch {
	case playerValue > 21:
		return OutcomeLose, 0
	case dealerValue > 21:
		return OutcomeWin, h.Bet * 2
	case playerNatural && !dealerNatural:
		return OutcomeBlackjack, h.Bet.MulRatio(1 + r.rules.BlackjackPayout)
	case dealerNatural && !playerNatural:
		return OutcomeLose, 0
	case playerNatural && dealerNatural:
		return OutcomePush, h.Bet
	case playerValue > dealerValue:
		return OutcomeWin, h.Bet * 2
	case playerValue == dealerValue:
		return OutcomePush, h.Bet
	default:
		return OutcomeLose, 0
	}
}

// FinishRound plays the dealer if needed, settles insurance and every hand
// that was not settled early, and completes the round.
func (r *Round) FinishRound() (*RoundResult, error) {
	if r.state != PlayerTurn && r.state != DealerTurn {
		return nil, newError(KindInvalidState, "cannot finish round while %s", r.state)
	}

	if r.starved || (!r.dealerPlayed && r.needsDealer()) {
		ok, err := r.PlayDealerHand()
		if err != nil {
			return nil, err
		}
		if !ok {
			return r.settleDead(), nil
		}
	}
	r.state = DealerTurn

	res := r.newResult(false)
	r.settleInsurance(res)
	for i, h := range r.player.Hands {
		r.record(res, i, r.settle(h))
	}
	return r.complete(res), nil
}

// settleDead returns the full stake of every undecided hand and resolves
// the rest normally.
func (r *Round) settleDead() *RoundResult {
	res := r.newResult(true)
	r.settleInsurance(res)
	for i, h := range r.player.Hands {
		if h.IsDone() {
			r.record(res, i, r.settle(h))
			continue
		}
		r.player.Bankroll += h.Bet
		r.player.UpdateStats(OutcomePush, h.Bet, h)
		r.record(res, i, HandResult{Outcome: OutcomePush, Payout: h.Bet})
	}
	return r.complete(res)
}

// settle pays a hand and records it in the statistics. Surrendered and even
// money hands were paid when the action was taken and are only reported.
func (r *Round) settle(h *Hand) HandResult {
	outcome, payout := r.ResolveHand(h)
	if h.IsSurrendered || h.TookEvenMoney {
		return HandResult{Outcome: outcome, Payout: payout, Early: true}
	}
	r.player.Bankroll += payout
	r.player.UpdateStats(outcome, payout, h)
	return HandResult{Outcome: outcome, Payout: payout}
}

func (r *Round) record(res *RoundResult, i int, hr HandResult) {
	hr.Net = hr.Payout - r.player.Hands[i].Bet
	res.Hands = append(res.Hands, hr)
	res.TotalNet += hr.Net
	r.event(EventTypeSettle, i, hr.Payout).Outcome = hr.Outcome
}

// settleInsurance pays each insured hand once the dealer's hole card is
// known: stake*(1+ratio) on a dealer natural, nothing otherwise.
func (r *Round) settleInsurance(res *RoundResult) {
	dealerNatural := r.dealer.IsBlackjack()
	for i, h := range r.player.Hands {
		if h.Insurance <= 0 {
			continue
		}
		res.Insured++
		if !dealerNatural {
			res.InsuranceNet -= h.Insurance
			r.event(EventTypeInsuranceSettle, i, 0)
			continue
		}
		payout := h.Insurance.MulRatio(1 + r.rules.InsurancePayout)
		r.player.Bankroll += payout
		r.player.Stats.InsurancesWon++
		res.InsuranceWon++
		res.InsuranceNet += payout - h.Insurance
		r.event(EventTypeInsuranceSettle, i, payout)
	}
	res.TotalNet += res.InsuranceNet
}

func (r *Round) newResult(dead bool) *RoundResult {
	return &RoundResult{
		Hands:   make([]HandResult, 0, len(r.player.Hands)),
		Dead:    dead,
		Wagers:  r.wagers,
		Splits:  r.splits,
		Doubles: r.doubles,
	}
}

func (r *Round) complete(res *RoundResult) *RoundResult {
	res.DealerHand = snapshot(r.dealer)
	res.PlayerHands = make([]Hand, len(r.player.Hands))
	for i, h := range r.player.Hands {
		res.PlayerHands[i] = snapshot(h)
	}
	res.Events = r.events
	r.state = Complete
	r.result = res
	return res
}

func snapshot(h *Hand) Hand {
	c := *h
	c.Cards = slices.Clone(h.Cards)
	return c
}
