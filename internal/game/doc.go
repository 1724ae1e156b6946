// Package game implements the core blackjack round logic.
//
// The main type is Engine, which plays one full round against a Decider:
// deal, natural blackjack check, player action loop (hits, doubles and
// splits), dealer play, and settlement. Cards come from an injected
// CardSource so the session layer can interpose Hi-Lo counting and
// automatic reshuffles without the engine knowing about either.
//
// House rules are fixed per Engine via Rules. The defaults match the
// simulated table: dealer stands on all 17s (soft included) and a natural
// blackjack pays 3:2.
package game
