package simulator

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/cardcount/blackjacksim/internal/statistics"
)

// PrintSummary writes a human-readable summary of a simulation batch.
func PrintSummary(w io.Writer, stats *statistics.Statistics, cfg Config) {
	title := lipgloss.NewStyle().Bold(true)
	label := lipgloss.NewStyle().Faint(true)
	if termenv.EnvColorProfile() == termenv.Ascii {
		title = lipgloss.NewStyle()
		label = lipgloss.NewStyle()
	}

	fmt.Fprintf(w, "\n%s\n", title.Render(fmt.Sprintf("=== RESULTS: %s strategy, %s betting ===", cfg.Strategy, cfg.BetMode)))
	fmt.Fprintf(w, "%s %d sessions x %d rounds, %d decks, base bet %.2f\n",
		label.Render("Setup:"), max(cfg.Sessions, 1), cfg.Rounds, cfg.NumDecks, cfg.BaseBet)

	fmt.Fprintf(w, "\n%s\n", title.Render("=== OUTCOMES ==="))
	fmt.Fprintf(w, "%s %d hands: %d won, %d lost, %d pushed (%.1f%% win rate)\n",
		label.Render("Hands:"), stats.Hands, stats.Wins, stats.Losses, stats.Pushes, stats.WinRate()*100)
	fmt.Fprintf(w, "%s %d blackjacks, %d busts, %d doubles, %d split hands\n",
		label.Render("Detail:"), stats.Blackjacks, stats.Busts, stats.Doubles, stats.Splits)

	low, high := stats.ConfidenceInterval95()
	fmt.Fprintf(w, "\n%s\n", title.Render("=== PROFIT ==="))
	fmt.Fprintf(w, "%s %.2f over %.2f wagered\n", label.Render("Net:"), stats.NetProfit(), stats.TotalWagered)
	fmt.Fprintf(w, "%s %.4f per hand (median %.4f, stddev %.4f)\n",
		label.Render("Mean:"), stats.Mean(), stats.Median(), stats.StdDev())
	fmt.Fprintf(w, "%s [%.4f, %.4f] per hand\n", label.Render("95% CI:"), low, high)
	fmt.Fprintf(w, "%s P5=%.2f, P25=%.2f, P75=%.2f, P95=%.2f\n",
		label.Render("Percentiles:"), stats.Percentile(0.05), stats.Percentile(0.25),
		stats.Percentile(0.75), stats.Percentile(0.95))
}
