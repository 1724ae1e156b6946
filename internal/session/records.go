package session

// HandRecord is the settled state of one player hand, as exposed to
// callers. A round yields one record per player hand, so splits produce
// multiple records sharing a round id.
type HandRecord struct {
	MatchID    string `json:"match_id"`
	RoundID    int    `json:"round_id"`
	HandNumber int    `json:"hand_number"`

	PlayerCards  []string `json:"player_cards"`
	DealerCards  []string `json:"dealer_cards"`
	DealerUpCard string   `json:"dealer_upcard"`
	Actions      []string `json:"actions"`

	BetAmount float64 `json:"bet_amount"`
	Result    string  `json:"final_result"` // "win", "lose" or "push"
	Profit    float64 `json:"profit"`
	Blackjack bool    `json:"blackjack"`
	Busted    bool    `json:"busted"`
	Doubled   bool    `json:"doubled"`
	SplitHand bool    `json:"split_hand"`

	Strategy string `json:"strategy_used"`
	BetMode  string `json:"bet_mode"`

	TrueCountPrev   float64 `json:"true_count_prev_round"`
	RunningCountEnd int     `json:"running_count_end"`
	TrueCountEnd    float64 `json:"true_count_end"`
	CardsRemaining  int     `json:"cards_remaining"`
	DecksRemaining  float64 `json:"decks_remaining"`
}
