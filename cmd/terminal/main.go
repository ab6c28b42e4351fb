package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/JackWithOneEye/weatherglass/internal/config"
	"github.com/JackWithOneEye/weatherglass/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		// stray log lines would tear the alt screen
		log.SetOutput(io.Discard)
	}

	ui, err := tui.NewUIModel(config.NewConfig().RelayHost())
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	p := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running terminal UI: %v\n", err)
		os.Exit(1)
	}
}
