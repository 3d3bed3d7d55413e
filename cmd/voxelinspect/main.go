// Command voxelinspect is an interactive terminal demo of the voxelcore
// library: it generates a toy chunk of world, then lets you steer a
// "camera" chunk position and watch ChunkedOctree.Find page through the
// nearest generated chunks to it. It stands in for the mesh/renderer
// builder a real game would drive this library from.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Printf("voxelinspect: %v", err)
		fmt.Fprintln(os.Stderr, "voxelinspect exited with an error:", err)
		os.Exit(1)
	}
}
