package main

import (
	"fmt"
	"os"

	"github.com/akarpov/memopad/internal/client/api"
	"github.com/akarpov/memopad/internal/client/config"
	"github.com/akarpov/memopad/internal/client/notes"
	"github.com/akarpov/memopad/internal/client/session"
	"github.com/akarpov/memopad/internal/client/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg)
	sess := session.NewController(client)
	coll := notes.NewCollection(client)

	model := tui.NewModel(client, sess, coll)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetSend(p.Send)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
