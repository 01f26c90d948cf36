package cmd

import (
	"strings"

	"github.com/marcus/tasklist/internal/todo"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:     "edit <n> <text...>",
	Short:   "Replace the text of a task",
	Example: `  tl edit 2 "Wash the car"`,
	GroupID: "core",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args[1:], " ")
		return mutateAt(args[0], func(l *todo.List, i int) (string, error) {
			return l.Edit(i, text)
		})
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
