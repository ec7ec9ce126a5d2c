// Package game implements a single-player casino blackjack round.
//
// The main type is Round, an explicit state machine over a Shoe, the
// player's hands and the dealer's hand:
//
//	NotStarted -> InitialDeal -> PlayerTurn -> DealerTurn -> Complete
//
// # Basic Usage
//
//	rules := game.DefaultRules()
//	player := game.NewPlayer("sim", money.FromDollars(1000), nil)
//	shoe := deck.NewShoe(rules.Decks, rules.Penetration, rng)
//	round := game.NewRound(rules, player, shoe)
//	if err := round.StartRound(money.FromDollars(10)); err != nil {
//	    // InvalidBet, InvalidState or InsufficientFunds
//	}
//	for i := range round.Hands() {
//	    round.Execute(game.MoveStand, i)
//	}
//	result, err := round.FinishRound()
//
// # Actions and errors
//
// Per-hand actions (Hit, DoubleDown, Split, ...) return a bool reporting
// whether the action was legal and applied; illegal requests never mutate
// anything. Structural violations such as acting on a round that has not
// been started are returned as *Error values with a Kind that callers can
// branch on via errors.Is or KindOf.
//
// # Dead hands
//
// A shoe that runs out of cards mid-round never produces an error. The round
// is settled by returning the full stake of every hand that was still
// undecided while hands that were already finished resolve normally.
package game
