package board

import (
	"github.com/charmbracelet/huh"
)

// AddForm holds the new task form. Blank fields are not rejected here;
// the list treats a blank add as a no-op.
type AddForm struct {
	Form     *huh.Form
	Text     string
	Assignee string
}

// NewAddForm builds an empty new task form
func NewAddForm() *AddForm {
	f := &AddForm{}
	f.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("What needs doing?").
				Value(&f.Text),
			huh.NewInput().
				Title("Assignee").
				Placeholder("Who is doing it?").
				Value(&f.Assignee),
		).Title("New Task"),
	)
	f.Form.WithTheme(huh.ThemeDracula())
	f.Form.WithShowHelp(false)
	return f
}
