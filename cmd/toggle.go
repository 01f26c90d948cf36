package cmd

import (
	"github.com/marcus/tasklist/internal/output"
	"github.com/marcus/tasklist/internal/todo"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <n>",
	Short:   "Flip a task between active and completed",
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateAt(args[0], func(l *todo.List, i int) (string, error) {
			return l.Toggle(i)
		})
	},
}

var doneCmd = &cobra.Command{
	Use:     "done <n>",
	Short:   "Mark a task completed",
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCompleted(args[0], true)
	},
}

var undoneCmd = &cobra.Command{
	Use:     "undone <n>",
	Aliases: []string{"reopen"},
	Short:   "Mark a task active again",
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCompleted(args[0], false)
	},
}

func setCompleted(arg string, completed bool) error {
	return mutateAt(arg, func(l *todo.List, i int) (string, error) {
		msg, err := l.SetCompleted(i, completed)
		if err == nil && msg == "" {
			state := "active"
			if completed {
				state = "completed"
			}
			output.Info("#%d is already %s", i+1, state)
		}
		return msg, err
	})
}

// mutateAt opens the project and applies fn to the task at position arg
func mutateAt(arg string, fn func(l *todo.List, i int) (string, error)) error {
	i, err := parsePosition(arg)
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

	return p.reportMutation(p.apply(func(l *todo.List) (string, error) {
		return fn(l, i)
	}))
}

func init() {
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
}
