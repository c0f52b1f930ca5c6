package forms

import (
	"fmt"

	"charm.land/huh/v2"
	"github.com/thenoetrevino/tandem/internal/models"
)

// UserOptions builds one option per user, preselecting the ids in selected
func UserOptions(users []*models.User, selected []string) []huh.Option[string] {
	picked := make(map[string]bool, len(selected))
	for _, id := range selected {
		picked[id] = true
	}

	options := make([]huh.Option[string], 0, len(users))
	for _, u := range users {
		label := fmt.Sprintf("%s <%s>", u.Name, u.Email)
		options = append(options, huh.NewOption(label, u.ID).Selected(picked[u.ID]))
	}
	return options
}

// CreateAssignForm creates a multi-select form for choosing a todo's assignees.
// selected holds the current assignee ids on entry and the chosen ids on submit.
func CreateAssignForm(todoTitle string, users []*models.User, selected *[]string) *huh.Form {
	field := huh.NewMultiSelect[string]().
		Key("assignees").
		Title("Assign users").
		Description(todoTitle).
		Options(UserOptions(users, *selected)...).
		Filterable(true).
		Value(selected)

	return huh.NewForm(huh.NewGroup(field))
}
