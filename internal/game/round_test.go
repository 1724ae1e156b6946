package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/cardcount/blackjacksim/internal/deck"
)

// scriptedSource deals a fixed card sequence. Deal order is player, player,
// dealer, dealer, then draws as requested.
type scriptedSource struct {
	cards []deck.Card
	next  int
}

func sourceOf(t *testing.T, cards string) *scriptedSource {
	t.Helper()
	return &scriptedSource{cards: deck.MustParseCards(cards)}
}

func (s *scriptedSource) Draw() deck.Card {
	if s.next >= len(s.cards) {
		panic("scripted source exhausted")
	}
	c := s.cards[s.next]
	s.next++
	return c
}

// scriptedDecider returns a fixed sequence of actions, repeating the last
// one once exhausted.
type scriptedDecider struct {
	actions []Action
	next    int
}

func (d *scriptedDecider) Name() string { return "scripted" }

func (d *scriptedDecider) Decide(h *Hand, dealerUp deck.Card) Action {
	if d.next < len(d.actions)-1 {
		a := d.actions[d.next]
		d.next++
		return a
	}
	return d.actions[len(d.actions)-1]
}

func newTestEngine(source CardSource) *Engine {
	return NewEngine(source, DefaultRules(), log.New(io.Discard))
}

func TestPlayerBlackjackPaysThreeToTwo(t *testing.T) {
	// Player A K, dealer 9 7. No decisions are made on a natural.
	e := newTestEngine(sourceOf(t, "A K 9 7"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Stand}}, 10)

	if len(result.Hands) != 1 {
		t.Fatalf("expected 1 hand, got %d", len(result.Hands))
	}
	hr := result.Hands[0]
	if hr.Outcome != Win || hr.Profit != 15 {
		t.Errorf("natural should win 1.5x: got %s, profit %v", hr.Outcome, hr.Profit)
	}
	if !hr.Blackjack {
		t.Error("blackjack flag not set")
	}
	if len(hr.Hand.Actions) != 1 || hr.Hand.Actions[0] != "stand" {
		t.Errorf("natural should record a single stand, got %v", hr.Hand.Actions)
	}
}

func TestDealerBlackjackLosesImmediately(t *testing.T) {
	e := newTestEngine(sourceOf(t, "10 9 A K"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Stand}}, 10)

	hr := result.Hands[0]
	if hr.Outcome != Lose || hr.Profit != -10 {
		t.Errorf("dealer natural should lose the wager: got %s, profit %v", hr.Outcome, hr.Profit)
	}
	if len(hr.Hand.Actions) != 0 {
		t.Errorf("no player actions expected against dealer natural, got %v", hr.Hand.Actions)
	}
}

func TestBothBlackjackPushes(t *testing.T) {
	e := newTestEngine(sourceOf(t, "A Q A K"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Stand}}, 10)

	hr := result.Hands[0]
	if hr.Outcome != Push || hr.Profit != 0 {
		t.Errorf("mutual naturals should push: got %s, profit %v", hr.Outcome, hr.Profit)
	}
	if !hr.Blackjack {
		t.Error("player natural should still be flagged on a push")
	}
}

func TestDealerDrawsToSeventeenAndBusts(t *testing.T) {
	// Player stands on 18; dealer 10 6 draws 10 and busts.
	e := newTestEngine(sourceOf(t, "10 8 10 6 10"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Stand}}, 10)

	hr := result.Hands[0]
	if hr.Outcome != Win || hr.Profit != 10 {
		t.Errorf("dealer bust should win: got %s, profit %v", hr.Outcome, hr.Profit)
	}
	if !result.Dealer.IsBust() {
		t.Errorf("dealer should have busted, has %v", result.Dealer.CardStrings())
	}
}

func TestDealerStandsOnSoftSeventeen(t *testing.T) {
	// Dealer A 6 is soft 17 and stands under default rules; player's 18 wins.
	e := newTestEngine(sourceOf(t, "10 8 A 6"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Stand}}, 10)

	if got := len(result.Dealer.Cards); got != 2 {
		t.Fatalf("dealer should stand on soft 17, drew to %d cards", got)
	}
	if result.Hands[0].Outcome != Win {
		t.Errorf("player 18 should beat dealer 17, got %s", result.Hands[0].Outcome)
	}
}

func TestDealerHitsSoftSeventeenWhenConfigured(t *testing.T) {
	rules := Rules{DealerHitsSoft17: true, BlackjackPayout: 1.5}
	e := NewEngine(sourceOf(t, "10 8 A 6 4"), rules, log.New(io.Discard))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Stand}}, 10)

	if got := result.Dealer.Value(); got != 21 {
		t.Fatalf("dealer should draw to 21, got %d (%v)", got, result.Dealer.CardStrings())
	}
	if result.Hands[0].Outcome != Lose {
		t.Errorf("player 18 should lose to dealer 21, got %s", result.Hands[0].Outcome)
	}
}

func TestDoubleDownTakesOneCard(t *testing.T) {
	// Player 5 6 doubles, draws 10 for 21; dealer 9 5 draws 10 and busts.
	e := newTestEngine(sourceOf(t, "5 6 9 5 10 10"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Double}}, 10)

	hr := result.Hands[0]
	if !hr.Hand.Doubled {
		t.Fatal("hand should be marked doubled")
	}
	if hr.Hand.Wager != 20 {
		t.Errorf("doubled wager should be 20, got %v", hr.Hand.Wager)
	}
	if hr.Outcome != Win || hr.Profit != 20 {
		t.Errorf("doubled win should pay the doubled wager: got %s, profit %v", hr.Outcome, hr.Profit)
	}
	if len(hr.Hand.Cards) != 3 {
		t.Errorf("double takes exactly one card, hand has %d", len(hr.Hand.Cards))
	}
}

func TestSplitProducesTwoHands(t *testing.T) {
	// Player 8 8 splits; left draws 3, right draws 2; both stand.
	// Dealer 10 7 stands on 17, both hands lose.
	e := newTestEngine(sourceOf(t, "8 8 10 7 3 2"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Split, Stand}}, 10)

	if len(result.Hands) != 2 {
		t.Fatalf("split should yield 2 hands, got %d", len(result.Hands))
	}

	var totalWager float64
	totalCards := 0
	for i, hr := range result.Hands {
		if !hr.Hand.SplitHand {
			t.Errorf("hand %d should be marked split", i)
		}
		if hr.Outcome != Lose {
			t.Errorf("hand %d should lose to dealer 17, got %s", i, hr.Outcome)
		}
		if hr.Blackjack {
			t.Errorf("hand %d: a split 21 must never count as blackjack", i)
		}
		totalWager += hr.Hand.Wager
		totalCards += len(hr.Hand.Cards)
	}
	if totalWager != 20 {
		t.Errorf("split wagers should sum to 2x original, got %v", totalWager)
	}
	if totalCards != 4 {
		t.Errorf("split hands should hold original 2 cards plus 1 each, got %d", totalCards)
	}

	// Table order: left hand keeps the first card.
	if result.Hands[0].Hand.Cards[1].String() != "3" || result.Hands[1].Hand.Cards[1].String() != "2" {
		t.Errorf("hands out of table order: %v, %v",
			result.Hands[0].Hand.CardStrings(), result.Hands[1].Hand.CardStrings())
	}
}

func TestIllegalSplitDowngradesToStand(t *testing.T) {
	// 10 5 is not a pair; the proposed split becomes a stand.
	e := newTestEngine(sourceOf(t, "10 5 10 9"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Split}}, 10)

	hr := result.Hands[0]
	if len(result.Hands) != 1 || hr.Hand.SplitHand {
		t.Fatal("illegal split must not split the hand")
	}
	if len(hr.Hand.Actions) != 1 || hr.Hand.Actions[0] != "stand" {
		t.Errorf("expected a single downgraded stand, got %v", hr.Hand.Actions)
	}
}

func TestIllegalDoubleDowngradesToHit(t *testing.T) {
	// Hit first so the hand has three cards, then propose an illegal double.
	// 2 3 -> hit 5 (10) -> double downgraded to hit, draws 10 (20) -> stand.
	e := newTestEngine(sourceOf(t, "2 3 10 9 5 10"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Hit, Double, Stand}}, 10)

	hr := result.Hands[0]
	if hr.Hand.Doubled {
		t.Fatal("illegal double must not double the wager")
	}
	if hr.Hand.Wager != 10 {
		t.Errorf("wager should stay 10, got %v", hr.Hand.Wager)
	}
	want := []string{"hit", "hit", "stand"}
	if len(hr.Hand.Actions) != len(want) {
		t.Fatalf("expected actions %v, got %v", want, hr.Hand.Actions)
	}
	for i := range want {
		if hr.Hand.Actions[i] != want[i] {
			t.Fatalf("expected actions %v, got %v", want, hr.Hand.Actions)
		}
	}
	if hr.Outcome != Win {
		t.Errorf("player 20 should beat dealer 19, got %s", hr.Outcome)
	}
}

func TestPlayerBustLosesWithoutDealerPlay(t *testing.T) {
	// Player 10 9 hits into a bust; dealer never draws.
	e := newTestEngine(sourceOf(t, "10 9 10 6 5"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Hit}}, 10)

	hr := result.Hands[0]
	if hr.Outcome != Lose || !hr.Busted {
		t.Errorf("bust should lose: got %s, busted=%v", hr.Outcome, hr.Busted)
	}
	if got := len(result.Dealer.Cards); got != 2 {
		t.Errorf("dealer should not draw when every hand busts, has %d cards", got)
	}
}

func TestPushOnEqualTotals(t *testing.T) {
	e := newTestEngine(sourceOf(t, "10 9 10 9"))
	result := e.PlayRound(&scriptedDecider{actions: []Action{Stand}}, 10)

	hr := result.Hands[0]
	if hr.Outcome != Push || hr.Profit != 0 {
		t.Errorf("equal totals should push: got %s, profit %v", hr.Outcome, hr.Profit)
	}
}
