// Package forms provides huh-based prompts for clark's subcommands.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// NewConfirmClearHistoryForm asks whether to delete count recorded sessions.
// The result pointer is bound to the confirm field value.
func NewConfirmClearHistoryForm(count int, clear *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear history?").
				Description(fmt.Sprintf("This deletes %d recorded %s and their marks.", count, plural(count, "session", "sessions"))).
				Affirmative("Yes, clear").
				Negative("No, keep").
				Value(clear),
		),
	).WithTheme(Theme())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
