package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/application/services/pipeline"
	"github.com/skhandal/doi/pkg/application/services/slicer"
	"github.com/skhandal/doi/pkg/infrastructure/export"
	"github.com/skhandal/doi/pkg/infrastructure/repositories/csv"
)

type Screen int

const (
	LoadingScreen Screen = iota
	PickScreen
	ResultScreen
)

// Config holds everything the explorer needs to compute the DOI table
type Config struct {
	SalesPath     string
	InventoryPath string
	WindowDays    int
	OutputDir     string
}

// Model is the root of the interactive DOI explorer. It computes the
// table once up front, then lets the user slice it repeatedly.
type Model struct {
	config Config

	screen   Screen
	progress progress.Model
	stages   []string
	done     int
	stage    string
	stageCh  chan string

	result *dto.Result
	engine *slicer.Engine
	picker *PickerModel
	view   slicer.Result

	exportNote string
	err        error
	quitting   bool
	width      int
	height     int
}

// NewModel creates the explorer model
func NewModel(config Config) Model {
	stages := pipeline.Stages()
	return Model{
		config: config,
		screen: LoadingScreen,
		progress: progress.New(
			progress.WithSolidFill("#00aadd"),
			progress.WithoutPercentage(),
		),
		stages:  stages,
		stageCh: make(chan string, len(stages)),
	}
}

// Run starts the explorer and blocks until the user quits
func Run(config Config) error {
	p := tea.NewProgram(NewModel(config), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("explorer failed: %w", err)
	}
	return nil
}

type stageMsg string

type pipelineDoneMsg struct {
	result *dto.Result
	err    error
}

type showViewMsg struct{}

type exportDoneMsg struct {
	path string
	err  error
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runPipeline(), m.waitForStage())
}

// runPipeline computes the table in the background, reporting stages
// through the model's channel
func (m Model) runPipeline() tea.Cmd {
	config := m.config
	stageCh := m.stageCh
	return func() tea.Msg {
		service := pipeline.New(pipeline.Config{
			WindowDays: config.WindowDays,
			StageHook: func(stage string) {
				select {
				case stageCh <- stage:
				default:
				}
			},
		})

		result, err := service.Run(
			context.Background(),
			csv.NewSalesFile(config.SalesPath),
			csv.NewInventoryFile(config.InventoryPath),
		)
		close(stageCh)
		return pipelineDoneMsg{result: result, err: err}
	}
}

// waitForStage relays one stage notification into the update loop
func (m Model) waitForStage() tea.Cmd {
	stageCh := m.stageCh
	return func() tea.Msg {
		stage, ok := <-stageCh
		if !ok {
			return nil
		}
		return stageMsg(stage)
	}
}

func (m Model) exportXLSX() tea.Cmd {
	result := m.result
	outputDir := m.config.OutputDir
	return func() tea.Msg {
		path, err := export.Write(result, export.FormatXLSX, outputDir)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.picker != nil {
			m.picker.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.err != nil {
			m.quitting = true
			return m, tea.Quit
		}

		filtering := m.screen == PickScreen && m.picker != nil && m.picker.Filtering()
		if !filtering {
			switch msg.String() {
			case "q":
				m.quitting = true
				return m, tea.Quit
			case "esc":
				if m.screen == ResultScreen {
					m.screen = PickScreen
					return m, nil
				}
			case "e":
				if m.result != nil && m.screen != LoadingScreen {
					return m, m.exportXLSX()
				}
			}
		}

	case stageMsg:
		m.done++
		m.stage = string(msg)
		return m, m.waitForStage()

	case pipelineDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.result = msg.result
		m.done = len(m.stages)
		m.engine = slicer.New(msg.result.Rows, msg.result.WindowDays)
		m.picker = NewPickerModel(m.engine)
		m.picker.SetSize(m.width, m.height)
		m.screen = PickScreen
		return m, nil

	case showViewMsg:
		m.view = m.engine.Slice(m.picker.Selection())
		m.screen = ResultScreen
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.exportNote = errorStyle.Render(fmt.Sprintf("❌ Export failed: %v", msg.err))
		} else {
			m.exportNote = statusStyle.Render(fmt.Sprintf("💾 Saved %s", msg.path))
		}
		return m, nil
	}

	if m.screen == PickScreen && m.picker != nil {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "Thanks for using the DOI explorer! 👋\n"
	}

	if m.err != nil {
		content := errorStyle.Render(fmt.Sprintf("❌ %v", m.err)) + "\n" +
			helpStyle.Render("Press any key to exit")
		return content
	}

	var content string
	switch m.screen {
	case LoadingScreen:
		content = m.viewLoading()
	case PickScreen:
		content = m.picker.View()
	case ResultScreen:
		content = m.viewResult()
	}

	if m.exportNote != "" && m.screen != LoadingScreen {
		content += "\n" + m.exportNote
	}

	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	return content
}

func (m Model) viewLoading() string {
	title := titleStyle.Render("📊 Computing DOI table...")

	pct := 0.0
	if len(m.stages) > 0 {
		pct = float64(m.done) / float64(len(m.stages))
	}

	width := m.width - 10
	if width < 20 {
		width = 20
	}
	if width > 60 {
		width = 60
	}

	bar := lipgloss.NewStyle().Width(width).Render(m.progress.ViewAs(pct))
	stage := m.stage
	if stage == "" {
		stage = "starting"
	}

	content := progressStyle.Render(bar + "\n" + stage)
	help := helpStyle.Render("Ctrl+C to cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
}

func (m Model) viewResult() string {
	title := titleStyle.Render("📊 DOI View")

	var body string
	switch m.view.Shape {
	case slicer.ShapePrompt:
		body = warningStyle.Render(m.view.Prompt)
	case slicer.ShapeByCity, slicer.ShapeByProduct:
		body = renderGroupedTable(m.view.Shape.GroupKeyColumn(), dto.GroupRowsFrom(m.view.Groups))
	case slicer.ShapeDetail:
		body = renderDetailTable(dto.RowsFrom(m.view.Rows))
	}

	status := statusStyle.Render(fmt.Sprintf(
		"window of %d order dates, %d rows in the full table",
		m.result.WindowDays, len(m.result.Rows),
	))
	help := helpStyle.Render("Esc: Back to selection • e: Export XLSX • q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, status, help)
}
