package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/highscore"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded games",
	Long: `Display the best games from the history database, a few totals, and
the high score kept in the high score file.

Examples:
  t2048 scores
  t2048 scores --limit 20
  t2048 scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the game history and the high score")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	newHighMark = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("★")
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	hsFile, err := highscore.Open(cfg.HighScoreFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.Clear(); err != nil {
			return err
		}
		if err := hsFile.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Game history and high score cleared.")
		return nil
	}

	games, err := store.TopGames(flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render("2048 - Best Games"))
	fmt.Fprintln(out)

	if len(games) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 't2048' to play the first one!")
	} else {
		fmt.Fprintln(out, gamesTable(games))
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if stats.GamesCount > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf(
			"%d games  ·  average %.0f  ·  best tile %d  ·  %d moves  ·  last played %s",
			stats.GamesCount, stats.AvgScore, stats.BestTile, stats.TotalMoves,
			stats.LastPlayed.Local().Format("2006-01-02 15:04"),
		)))
	}

	// The file is what the game shows; the ledger only knows recorded games.
	best, err := hsFile.Load()
	if err != nil {
		fmt.Fprintf(out, "\nHigh score file unreadable (%v)\n", err)
		return nil
	}
	fmt.Fprintf(out, "\nHighscore: %d\n", best)
	return nil
}

// gamesTable renders records as a bordered lipgloss table.
func gamesTable(games []storage.GameRecord) string {
	rows := make([][]string, 0, len(games))
	for i, g := range games {
		score := strconv.Itoa(g.Score)
		if g.NewHighScore {
			score += " " + newHighMark
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			score,
			strconv.Itoa(g.MaxTile),
			strconv.Itoa(g.Moves),
			g.Duration.Round(time.Second).String(),
			g.Player,
			g.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("#", "Score", "Tile", "Moves", "Time", "Player", "Date").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render()
}
