package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/enjoi/pkg/app/screens"
)

type App struct {
	controller screens.Controller
}

func NewApp(controller screens.Controller) *App {
	return &App{controller: controller}
}

// Run blocks until the user quits. Work started from the screens is
// cancelled on return.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := screens.NewRootScreen(ctx, a.controller)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
