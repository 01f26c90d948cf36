package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tasklist/internal/config"
	"github.com/marcus/tasklist/internal/output"
	"github.com/marcus/tasklist/pkg/board"
	"github.com/marcus/tasklist/pkg/board/keymap"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive task board",
	Long: `Opens the task list in an interactive terminal board.

Key bindings:
  j/k            Move selection
  n              New task
  space          Toggle completed
  e/enter        Edit text (enter saves, esc discards)
  x              Delete task
  C              Clear completed
  1/2/3, s       Status filter: all, active, completed, cycle
  a              Cycle assignee filter
  esc            Reset filters
  ?              Toggle help
  q              Quit

Key overrides are read from .todos/keymap.json.`,
	GroupID: "core",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		cfg, err := config.Resolve(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		p, err := openProject()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer p.Close()

		km := keymap.NewRegistry()
		keymap.RegisterDefaults(km)
		if kc, err := keymap.LoadConfig(keymap.ConfigPath(baseDir)); err != nil {
			output.Warning("ignoring keymap.json: %v", err)
		} else {
			keymap.ApplyConfig(km, kc)
		}

		filter, err := config.GetBoardFilter(baseDir)
		if err != nil {
			slog.Warn("restore board filter", "err", err)
		}

		model := board.NewModel(p.List, board.Options{
			BaseDir:     baseDir,
			StatusDelay: config.StatusDelay(cfg),
			Keymap:      km,
			Filter:      &filter,
		})

		prog := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := prog.Run(); err != nil {
			return fmt.Errorf("error running board: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
