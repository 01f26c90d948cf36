package cmd

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/marcus/tasklist/internal/input"
	"github.com/marcus/tasklist/internal/output"
	"github.com/marcus/tasklist/internal/todo"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add [text...]",
	Aliases: []string{"new"},
	Short:   "Add a task",
	Long: `Appends a new, incomplete task. Both the text and the assignee are
required; when either is blank after trimming nothing is added.`,
	Example: `  tl add "Buy milk" --assignee Alice
  tl add -i
  tl add @groceries.txt -a Alice     # one task per line
  cat list.txt | tl add - -a Bob`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		assignee, _ := cmd.Flags().GetString("assignee")
		if input.IsBulk(args) {
			return addBulk(cmd, args, assignee)
		}

		text := strings.Join(args, " ")

		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			if err := runAddForm(&text, &assignee); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				output.Error("%v", err)
				return err
			}
		}

		p, err := openProject()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer p.Close()

		msg, err := p.apply(func(l *todo.List) (string, error) {
			return l.Add(text, assignee)
		})
		if err != nil || msg == "" {
			return p.reportMutation(msg, err)
		}
		output.Success("%s: #%d %s", msg, p.List.Len(), strings.TrimSpace(text))
		return nil
	},
}

// addBulk adds one task per line read from stdin or files
func addBulk(cmd *cobra.Command, args []string, assignee string) error {
	texts, err := input.ExpandArgs(args, cmd.InOrStdin())
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

	added := 0
	_, err = p.apply(func(l *todo.List) (string, error) {
		added = 0
		for _, text := range texts {
			msg, err := l.Add(text, assignee)
			if err != nil {
				return "", err
			}
			if msg != "" {
				added++
			}
		}
		return todo.MsgAdded, nil
	})
	if err != nil {
		return p.reportMutation("", err)
	}
	if added > 0 {
		output.Success("%s: %d tasks", todo.MsgAdded, added)
	}
	return nil
}

// runAddForm prompts for the task fields, pre-filled with any flag values
func runAddForm(text, assignee *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(text),
			huh.NewInput().Title("Assignee").Value(assignee),
		),
	).WithTheme(huh.ThemeDracula())
	return form.Run()
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("assignee", "a", "", "Who the task is assigned to (required)")
	addCmd.Flags().BoolP("interactive", "i", false, "Prompt for the fields")
}
