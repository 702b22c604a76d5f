// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048                   - Play locally
//	t2048 scores            - Show the best recorded games
//	t2048 serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config YAML (default: search ~/.t2048 and ./configs)
//	--highscore <path>  - High score file (default: ~/.t2048/highscore.txt)
//	--db <path>         - Game history database (default: ~/.t2048/games.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig    string
	flagHighScore string
	flagDBPath    string
	flagLogLevel  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// UI failures have already been explained to the user.
		if !errors.Is(err, errUIFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board with the arrow keys, WASD or hjkl. Equal tiles merge and
add their value to your score. The game ends when no slide can change the
board; your best score is kept between runs.

Available commands:
  scores   - View the best recorded games
  serve    - Start SSH server for remote play

Examples:
  t2048
  t2048 --seed 42
  t2048 scores --limit 5
  t2048 serve --ssh :2222`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagHighScore, "highscore", "", "Path to high score file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to game history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
