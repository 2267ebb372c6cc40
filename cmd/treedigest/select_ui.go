package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/hayeah/treedigest/internal/fsx"
	"github.com/hayeah/treedigest/internal/tokens"
	"github.com/hayeah/treedigest/tree"
)

// ExitState indicates how the picker is exiting
type ExitState int

const (
	ExitStateNone    ExitState = iota // Not exiting
	ExitStateAbort                    // Exiting without generating (ESC, Ctrl+C, q)
	ExitStateConfirm                  // Exiting with confirmation (g, Enter)
)

// SelectResult is what the interactive picker hands back to the runner.
type SelectResult struct {
	Confirmed  bool
	OutputFile string // filename typed in the picker; empty means use the CLI flag
}

// row is one visible line of the checkbox tree.
type row struct {
	node  *tree.Node
	depth int
}

// model is our Bubble Tea model, holding everything needed for the TUI.
type model struct {
	tree      *tree.Tree
	fs        fsx.FS
	estimator tokens.Estimator

	// View state lives here, not on the tree: which directories are
	// unfolded and the cached listing order of their children.
	expanded map[string]bool
	children map[string][]*tree.Node

	allRows []row // visible rows before filtering
	rows    []row // visible rows after fuzzy filtering

	// Navigation
	cursor    int
	exitState ExitState

	// Fuzzy filter
	filterInput textinput.Model
	filtering   bool

	// Output filename prompt
	nameInput  textinput.Model
	naming     bool
	outputFile string

	// Viewport for scrolling
	viewport viewport.Model
	ready    bool

	// Token counting
	totalTokens int
	tokenCache  map[string]int

	errMsg string
}

// selectFilesInteractively runs the TUI for interactive selection. The
// tree is mutated in place; the result says whether the user confirmed.
func selectFilesInteractively(t *tree.Tree, fs fsx.FS, estimator tokens.Estimator) (SelectResult, error) {
	fi := textinput.New()
	fi.Placeholder = "fuzzy filter..."
	fi.Prompt = "/ "
	fi.CharLimit = 0

	ni := textinput.New()
	ni.Placeholder = "digest.txt"
	ni.CharLimit = 256
	ni.Width = 40

	m := model{
		tree:        t,
		fs:          fs,
		estimator:   estimator,
		expanded:    map[string]bool{t.Root(): true},
		children:    make(map[string][]*tree.Node),
		filterInput: fi,
		nameInput:   ni,
		viewport:    viewport.New(0, 0), // sized on the first tea.WindowSizeMsg
		tokenCache:  make(map[string]int),
	}

	if err := m.loadChildren(t.Root()); err != nil {
		return SelectResult{}, err
	}
	m.rebuildRows()
	m.recalcTotalTokens() // restored selections may already be checked

	// Output the TUI to stderr so the digest can be piped from stdout
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return SelectResult{}, err
	}

	finalM, ok := finalModel.(model)
	if !ok {
		return SelectResult{}, fmt.Errorf("could not get final model state")
	}

	return SelectResult{
		Confirmed:  finalM.exitState == ExitStateConfirm,
		OutputFile: finalM.outputFile,
	}, nil
}

// Init is the first function called by Bubble Tea.
func (m model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles key presses and window sizing.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.exitState != ExitStateNone {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2 // root line + filter line
		footerHeight := 3 // blank line + status line + usage hint
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		if !m.ready {
			m.updateViewportContent()
			m.ready = true
		}
		return m, nil

	case tea.KeyMsg:
		if m.naming {
			return m.updateNaming(msg)
		}
		if m.filtering {
			return m.updateFiltering(msg)
		}
		return m.updateNormal(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// updateNaming handles keys while the output filename prompt is open.
func (m model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.naming = false
		return m, nil
	case tea.KeyEnter:
		name := m.nameInput.Value()
		if name == "" {
			name = m.nameInput.Placeholder
		}
		m.outputFile = name
		m.exitState = ExitStateConfirm
		return m, tea.Quit
	case tea.KeyCtrlC:
		m.exitState = ExitStateAbort
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// updateFiltering handles keys while the fuzzy filter input is focused.
func (m model) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.rebuildRows()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyCtrlC:
		m.exitState = ExitStateAbort
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.rebuildRows()
	return m, cmd
}

// updateNormal handles the tree navigation keys.
func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		m.exitState = ExitStateAbort
		return m, tea.Quit

	case "g", "enter":
		m.exitState = ExitStateConfirm
		return m, tea.Quit

	case "o":
		m.naming = true
		m.nameInput.Focus()
		return m, textinput.Blink

	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.updateViewportContent()
			m.ensureCursorVisible()
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.updateViewportContent()
			m.ensureCursorVisible()
		}

	case "right", "l":
		if r, ok := m.currentRow(); ok && r.node.IsDir() && !m.expanded[r.node.Path] {
			if err := m.loadChildren(r.node.Path); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.expanded[r.node.Path] = true
			m.rebuildRows()
		}

	case "left", "h":
		if r, ok := m.currentRow(); ok {
			if r.node.IsDir() && m.expanded[r.node.Path] {
				m.expanded[r.node.Path] = false
				m.rebuildRows()
			} else if parent := filepath.Dir(r.node.Path); parent != m.tree.Root() {
				m.expanded[parent] = false
				m.rebuildRows()
				m.moveCursorTo(parent)
			}
		}

	case " ":
		if r, ok := m.currentRow(); ok {
			if err := m.tree.Toggle(r.node); err != nil {
				m.errMsg = err.Error()
			}
			m.recalcTotalTokens()
			m.updateViewportContent()
		}

	case "a":
		m.tree.ToggleAll()
		m.recalcTotalTokens()
		m.updateViewportContent()

	case "pgup":
		m.viewport.HalfViewUp()

	case "pgdown":
		m.viewport.HalfViewDown()

	case "home":
		if len(m.rows) > 0 {
			m.cursor = 0
			m.viewport.GotoTop()
			m.updateViewportContent()
		}

	case "end":
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
			m.viewport.GotoBottom()
			m.updateViewportContent()
		}
	}

	return m, nil
}

// View renders the root line, filter line, scrollable tree, and status
// footer.
func (m model) View() string {
	if m.naming {
		return fmt.Sprintf(
			"Enter output filename:\n%s\n\n(Enter to generate, Esc to cancel)",
			m.nameInput.View(),
		)
	}

	if !m.ready {
		return "Initializing..."
	}

	header := m.tree.Root() + "\n" + m.filterInput.View() + "\n"

	checkedFiles := len(m.tree.CheckedFiles())
	statusLine := fmt.Sprintf(
		"%d/%d items, %d files checked, %d tokens",
		len(m.rows),
		len(m.allRows),
		checkedFiles,
		m.totalTokens,
	)
	if m.errMsg != "" {
		statusLine += "  |  " + m.errMsg
	}
	usageHint := "(↑/↓ navigate, →/← expand/collapse, Space toggle, a toggle all, / filter, o name output, g generate, q abort)"

	return header + m.viewport.View() + fmt.Sprintf("\n%s\n%s", statusLine, usageHint)
}

// currentRow returns the row under the cursor.
func (m *model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// loadChildren materializes dir's children through the tree, caching
// the listing order for rendering. Cached directories are not re-read.
func (m *model) loadChildren(dir string) error {
	if _, ok := m.children[dir]; ok {
		return nil
	}
	nodes, err := m.tree.Expand(dir)
	if err != nil {
		return err
	}
	m.children[dir] = nodes
	return nil
}

// rebuildRows recomputes the visible rows from the expansion state and
// the fuzzy filter term.
func (m *model) rebuildRows() {
	m.allRows = m.allRows[:0]
	m.appendRows(m.tree.Root(), 0)

	term := m.filterInput.Value()
	if term == "" {
		m.rows = m.allRows
	} else {
		candidates := make([]string, len(m.allRows))
		for i, r := range m.allRows {
			rel, err := filepath.Rel(m.tree.Root(), r.node.Path)
			if err != nil {
				rel = r.node.Path
			}
			candidates[i] = rel
		}
		matched := make(map[int]bool)
		for _, match := range fuzzy.Find(term, candidates) {
			matched[match.Index] = true
		}
		m.rows = nil
		for i, r := range m.allRows {
			if matched[i] {
				m.rows = append(m.rows, r)
			}
		}
	}

	if len(m.rows) == 0 {
		m.cursor = 0
	} else if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.updateViewportContent()
}

// appendRows walks the cached children of expanded directories in
// listing order.
func (m *model) appendRows(dir string, depth int) {
	for _, n := range m.children[dir] {
		m.allRows = append(m.allRows, row{node: n, depth: depth})
		if n.IsDir() && m.expanded[n.Path] {
			m.appendRows(n.Path, depth+1)
		}
	}
}

// moveCursorTo places the cursor on the row for path, if visible.
func (m *model) moveCursorTo(path string) {
	for i, r := range m.rows {
		if r.node.Path == path {
			m.cursor = i
			m.updateViewportContent()
			m.ensureCursorVisible()
			return
		}
	}
}

// updateViewportContent renders the visible rows into the viewport.
func (m *model) updateViewportContent() {
	var sb strings.Builder

	for i, r := range m.rows {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		check := " "
		if r.node.Checked {
			check = "x"
		}

		indent := strings.Repeat("  ", r.depth)
		marker := "  "
		suffix := ""
		if r.node.IsDir() {
			suffix = "/"
			if m.expanded[r.node.Path] {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}

		line := fmt.Sprintf("%s [%s] %s%s%s%s", cursor, check, indent, marker, r.node.Name, suffix)
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render(line)
		}

		// Add newline after styling to prevent lipgloss from affecting spacing
		sb.WriteString(line + "\n")
	}

	m.viewport.SetContent(sb.String())
}

// ensureCursorVisible makes sure the cursor is visible in the viewport.
func (m *model) ensureCursorVisible() {
	top := m.viewport.YOffset
	bottom := m.viewport.YOffset + m.viewport.Height - 1

	if m.cursor < top {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor > bottom {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// recalcTotalTokens updates the running token count for checked files.
// Unreadable files count as zero here; generation reports them
// properly.
func (m *model) recalcTotalTokens() {
	total := 0
	for _, path := range m.tree.CheckedFiles() {
		count, ok := m.tokenCache[path]
		if !ok {
			content, err := m.fs.ReadFile(path)
			if err != nil {
				continue
			}
			count = m.estimator.Estimate(string(content))
			m.tokenCache[path] = count
		}
		total += count
	}
	m.totalTokens = total
}
