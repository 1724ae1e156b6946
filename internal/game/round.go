package game

import (
	"github.com/charmbracelet/log"

	"github.com/cardcount/blackjacksim/internal/deck"
)

// CardSource supplies cards to the engine. The session layer wraps the shoe
// so every drawn card is counted, and refills the shoe mid-round if it runs
// dry. Draw therefore never fails from the engine's point of view.
type CardSource interface {
	Draw() deck.Card
}

// Decider maps a hand and the dealer's up-card to an action. Implementations
// live in the strategy package and must be pure apart from their own
// generator.
type Decider interface {
	Name() string
	Decide(h *Hand, dealerUp deck.Card) Action
}

// Rules are the fixed house rules for a table.
type Rules struct {
	// DealerHitsSoft17 makes the dealer hit a soft 17 instead of standing.
	DealerHitsSoft17 bool
	// BlackjackPayout is the profit multiple for a natural (1.5 = 3:2).
	BlackjackPayout float64
}

// DefaultRules returns the rules the simulation uses unless configured
// otherwise: dealer stands on all 17s, naturals pay 3:2.
func DefaultRules() Rules {
	return Rules{
		DealerHitsSoft17: false,
		BlackjackPayout:  1.5,
	}
}

// Outcome is the settlement result for one player hand.
type Outcome int

const (
	Win Outcome = iota
	Lose
	Push
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// HandResult is the settled state of one player hand.
type HandResult struct {
	Hand      *Hand
	Outcome   Outcome
	Profit    float64
	Blackjack bool
	Busted    bool
}

// RoundResult holds every player hand of a round (more than one only after
// splits) and the dealer's final hand.
type RoundResult struct {
	Dealer *Hand
	Hands  []HandResult
}

// Engine plays blackjack rounds from a card source under fixed rules.
type Engine struct {
	source CardSource
	rules  Rules
	logger *log.Logger
}

// NewEngine creates an engine. The logger is used to flag strategies that
// propose illegal actions.
func NewEngine(source CardSource, rules Rules, logger *log.Logger) *Engine {
	return &Engine{source: source, rules: rules, logger: logger}
}

// PlayRound plays one complete round: deal, natural check, player turns,
// dealer turn, settlement.
func (e *Engine) PlayRound(strat Decider, wager float64) *RoundResult {
	player := NewHand(wager, e.source.Draw(), e.source.Draw())
	dealer := NewHand(0, e.source.Draw(), e.source.Draw())

	// Naturals settle immediately, before any player decision.
	if dealer.IsBlackjack() {
		outcome, profit := Lose, -wager
		if player.IsBlackjack() {
			outcome, profit = Push, 0
		}
		return &RoundResult{
			Dealer: dealer,
			Hands: []HandResult{{
				Hand:      player,
				Outcome:   outcome,
				Profit:    profit,
				Blackjack: player.IsBlackjack(),
			}},
		}
	}
	if player.IsBlackjack() {
		player.recordAction(Stand)
		return &RoundResult{
			Dealer: dealer,
			Hands: []HandResult{{
				Hand:      player,
				Outcome:   Win,
				Profit:    wager * e.rules.BlackjackPayout,
				Blackjack: true,
			}},
		}
	}

	hands := e.playPlayerHands(strat, player, dealer.Cards[0])

	if anyStanding(hands) {
		e.playDealer(dealer)
	}

	result := &RoundResult{Dealer: dealer}
	dealerValue := dealer.Value()
	dealerBust := dealer.IsBust()
	for _, h := range hands {
		result.Hands = append(result.Hands, settle(h, dealerValue, dealerBust))
	}
	return result
}

// playPlayerHands runs the decision loop for the player's hand, including
// any hands created by splits. Returned hands are in table order.
func (e *Engine) playPlayerHands(strat Decider, first *Hand, dealerUp deck.Card) []*Hand {
	hands := []*Hand{first}
	for i := 0; i < len(hands); i++ {
		current := hands[i]
		for {
			action := e.legalize(strat, current, strat.Decide(current, dealerUp))
			if action == Hit {
				current.recordAction(Hit)
				current.AddCard(e.source.Draw())
				if current.IsBust() {
					break
				}
				continue
			}
			if action == Stand {
				current.recordAction(Stand)
				break
			}
			if action == Double {
				current.Wager *= 2
				current.Doubled = true
				current.recordAction(Double)
				current.AddCard(e.source.Draw())
				break
			}
			// Split: replace the current hand with two single-card hands,
			// deal one new card to each, and replay from the left hand.
			left := &Hand{Wager: current.Wager, SplitHand: true, Actions: []string{Split.String()}}
			right := &Hand{Wager: current.Wager, SplitHand: true, Actions: []string{Split.String()}}
			left.AddCard(current.Cards[0])
			right.AddCard(current.Cards[1])
			left.AddCard(e.source.Draw())
			right.AddCard(e.source.Draw())
			hands[i] = left
			hands = append(hands, nil)
			copy(hands[i+2:], hands[i+1:])
			hands[i+1] = right
			current = left
		}
	}
	return hands
}

// legalize downgrades an illegal action deterministically: Double becomes
// Hit when doubling is not available, Split becomes Stand when the hand is
// not a splittable pair. Both cases indicate a strategy defect and are
// logged, never fatal.
func (e *Engine) legalize(strat Decider, h *Hand, a Action) Action {
	switch a {
	case Double:
		if !h.CanDouble() {
			e.logger.Warn("strategy proposed illegal double, downgrading to hit",
				"strategy", strat.Name(), "cards", h.CardStrings())
			return Hit
		}
	case Split:
		if !h.CanSplit() {
			e.logger.Warn("strategy proposed illegal split, downgrading to stand",
				"strategy", strat.Name(), "cards", h.CardStrings())
			return Stand
		}
	}
	return a
}

// playDealer draws for the dealer until the stand rule is met.
func (e *Engine) playDealer(dealer *Hand) {
	for {
		value, soft := dealer.Total()
		if value > 17 || value == 17 && !(soft && e.rules.DealerHitsSoft17) {
			break
		}
		dealer.recordAction(Hit)
		dealer.AddCard(e.source.Draw())
	}
	if !dealer.IsBust() {
		dealer.recordAction(Stand)
	}
}

// settle compares one player hand against the dealer's final total.
func settle(h *Hand, dealerValue int, dealerBust bool) HandResult {
	r := HandResult{Hand: h, Blackjack: h.IsBlackjack(), Busted: h.IsBust()}
	value := h.Value()
	switch {
	case r.Busted:
		r.Outcome, r.Profit = Lose, -h.Wager
	case dealerBust || value > dealerValue:
		r.Outcome, r.Profit = Win, h.Wager
	case value < dealerValue:
		r.Outcome, r.Profit = Lose, -h.Wager
	default:
		r.Outcome, r.Profit = Push, 0
	}
	return r
}

func anyStanding(hands []*Hand) bool {
	for _, h := range hands {
		if !h.IsBust() {
			return true
		}
	}
	return false
}
