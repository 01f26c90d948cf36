package cmd

import (
	"fmt"

	"github.com/marcus/tasklist/internal/models"
	"github.com/marcus/tasklist/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*models.StatusFilter)(nil)

// listedTask is the --json shape of a task, with its 1-based position
type listedTask struct {
	Position int `json:"position"`
	models.Task
}

var listStatus = models.StatusAll

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks with their positions. The status and assignee filters
combine: a task is shown only when it passes both.`,
	Example: `  tl list --status active
  tl ls --assignee Alice --status completed`,
	GroupID: "query",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer p.Close()

		assignee, _ := cmd.Flags().GetString("assignee")
		p.List.SetFilter(models.Filter{Status: listStatus, Assignee: assignee})

		idx := p.List.VisibleIndexes()
		tasks := p.List.Tasks()

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			out := make([]listedTask, 0, len(idx))
			for _, i := range idx {
				out = append(out, listedTask{Position: i + 1, Task: tasks[i]})
			}
			return output.JSON(out)
		}

		if md, _ := cmd.Flags().GetBool("markdown"); md {
			shown := make([]models.Task, 0, len(idx))
			for _, i := range idx {
				shown = append(shown, tasks[i])
			}
			if !output.IsTerminal() {
				fmt.Print(output.TaskMarkdown("Tasks", shown))
				return nil
			}
			rendered, err := output.RenderTaskList("Tasks", shown)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			fmt.Println(rendered)
			return nil
		}

		fmt.Println(output.FilterLabel(p.List.Filter()))
		if len(idx) == 0 {
			output.Info("No tasks")
			return nil
		}
		for _, i := range idx {
			fmt.Println(output.FormatTask(i+1, tasks[i]))
		}

		active, completed := p.List.Counts()
		fmt.Println()
		fmt.Println(output.Summary(active, completed))
		return nil
	},
}

var assigneesCmd = &cobra.Command{
	Use:     "assignees",
	Short:   "List the names tasks are assigned to",
	GroupID: "query",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer p.Close()

		names := p.List.Assignees()
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			if names == nil {
				names = []string{}
			}
			return output.JSON(names)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().VarP(&listStatus, "status", "s", "Filter by status: all, active, completed")
	listCmd.Flags().StringP("assignee", "a", models.AssigneeAll, "Filter by assignee, or all")
	listCmd.Flags().Bool("json", false, "Output as JSON")
	listCmd.Flags().Bool("markdown", false, "Render as a markdown checklist (raw markdown when piped)")

	rootCmd.AddCommand(assigneesCmd)
	assigneesCmd.Flags().Bool("json", false, "Output as JSON")
}
