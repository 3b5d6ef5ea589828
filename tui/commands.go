package tui

import (
	"fmt"
	"time"

	"github.com/bassamadnan/codeshare/config"
	tea "github.com/charmbracelet/bubbletea"
)

// expireToastCmd fires once the toast with the given id should disappear.
func expireToastCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// saveLanguageCmd remembers the chosen language for the next session.
func saveLanguageCmd(cfgManager *config.Manager, lang string) tea.Cmd {
	if cfgManager == nil {
		return nil
	}
	return func() tea.Msg {
		if err := cfgManager.SetLanguage(lang); err != nil {
			return ErrorMsg{Err: fmt.Errorf("save language: %w", err)}
		}
		return nil
	}
}
