package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-mclib/voxelcore/pkg/octree"
	"github.com/go-mclib/voxelcore/pkg/voxel"
	"github.com/go-mclib/voxelcore/pkg/worldgen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	cameraStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// model drives the voxelinspect demo: a camera chunk position the user
// steers with the arrow keys, paging through ChunkedOctree.Find's
// nearest-first results around it.
type model struct {
	tree   *octree.ChunkedOctree[octree.ChunkState]
	chunks map[voxel.ChunkPos]*voxel.Chunk
	camera voxel.ChunkPos

	resultLimit int
	width       int
	height      int
}

func newModel() model {
	const depth = 3
	const lengthBits = 4
	tree := octree.New[octree.ChunkState](depth)
	gen := worldgen.New(1337, 8)
	chunks := gen.GenerateRegion(tree, voxel.ChunkPos{}, 4, lengthBits)

	return model{
		tree:        tree,
		chunks:      chunks,
		camera:      voxel.ChunkPos{},
		resultLimit: 12,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left":
			m.camera.X--
		case "right":
			m.camera.X++
		case "up":
			m.camera.Z--
		case "down":
			m.camera.Z++
		case "pgup":
			m.camera.Y++
		case "pgdown":
			m.camera.Y--
		}
	}
	return m, nil
}

func (m model) View() string {
	title := titleStyle.Render(fmt.Sprintf("voxelinspect — camera (%d, %d, %d)", m.camera.X, m.camera.Y, m.camera.Z))
	help := helpStyle.Render("arrows: move camera • pgup/pgdn: move up/down • q/esc: quit")

	nearest := m.nearestChunks()
	rows := make([]string, 0, len(nearest)+1)
	rows = append(rows, rowStyle.Render(fmt.Sprintf("%-18s %-10s %s", "position", "distance", "state")))
	for _, r := range nearest {
		marker := " "
		if r.pos == m.camera {
			marker = "*"
		}
		line := fmt.Sprintf("%s%-18s %-10.2f %s", marker, posString(r.pos), r.distance, stateString(r.state))
		if marker == "*" {
			rows = append(rows, cameraStyle.Render(line))
		} else {
			rows = append(rows, rowStyle.Render(line))
		}
	}

	paletteEntries := 0
	for _, c := range m.chunks {
		paletteEntries += c.UsedPaletteEntries()
	}
	stats := fmt.Sprintf("regions: %d    generated chunks: %d    palette entries in use: %d", m.tree.RegionCount(), len(m.chunks), paletteEntries)

	body := ""
	for _, r := range rows {
		body += r + "\n"
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n", title, help, body, helpStyle.Render(stats))
}

func posString(p voxel.ChunkPos) string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

func stateString(s octree.ChunkState) string {
	out := ""
	if s.Has(octree.StateExists) {
		out += "EXISTS "
	}
	if s.Has(octree.StateGenerated) {
		out += "GENERATED "
	}
	if s.Has(octree.StateMeshReady) {
		out += "MESH_READY "
	}
	if out == "" {
		return "-"
	}
	return out
}
