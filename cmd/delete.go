package cmd

import (
	"github.com/marcus/tasklist/internal/output"
	"github.com/marcus/tasklist/internal/todo"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <n>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateAt(args[0], func(l *todo.List, i int) (string, error) {
			return l.Delete(i)
		})
	},
}

var clearCompletedCmd = &cobra.Command{
	Use:     "clear-completed",
	Short:   "Delete every completed task",
	GroupID: "core",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer p.Close()

		return p.reportMutation(p.apply((*todo.List).ClearCompleted))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCompletedCmd)
}
