package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	modeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Background(lipgloss.Color("236"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	welcomeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 4)
)

var helpLines = []string{
	"flowedit Help",
	"=============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor",
	"  Shift+h/j/k/l    Move cursor 2x faster",
	"  z                Toggle pan mode (direction keys move the view)",
	"  Mouse wheel      Scroll the view",
	"",
	"Nodes:",
	"------",
	"  b                Create node at cursor, then 1/p process, 2/d decision,",
	"                   3/t terminator, 4/i input/output",
	"  e                Edit text of node under cursor (Ctrl+S to finish)",
	"  m                Move node under cursor (or drag it with the mouse)",
	"  r                Resize node under cursor",
	"  d                Delete node under cursor and its connections",
	"  c / p            Copy node under cursor / paste at cursor",
	"  P                Place the next node loaded without a position",
	"",
	"Connections:",
	"------------",
	"  a                Start a connection on a node, 'a' or Enter on the target",
	"  Enter/Space      Select node or connection under cursor",
	"  e                Edit label of selected connection",
	"  d                Delete selected connection",
	"  [ / ]            Rotate connection sides      (Ctrl+wheel)",
	"  - / +            Shrink/grow wrap margin      (Shift+wheel)",
	"  < / >            Rotate label position        (Ctrl+Shift+wheel)",
	"  Connections from a decision are labelled Yes, No, then ?",
	"",
	"Move / Resize Mode:",
	"-------------------",
	"  h/←/j/↓/k/↑/l/→  Move or resize by one grid step",
	"  Enter            Finish",
	"  Esc              Cancel",
	"",
	"Files:",
	"------",
	"  s                Save chart (.json)",
	"  o / O            Open chart or .mmd file in current / new buffer",
	"  i                Replace this chart with a Mermaid file (undoable)",
	"  v                Replace this chart with Mermaid from the clipboard",
	"  S                Export PNG",
	"  T                Export terminal drawing as text",
	"",
	"Buffers:",
	"--------",
	"  { / }            Previous / next buffer",
	"  n / N            New chart in current / new buffer",
	"  x                Close current buffer",
	"",
	"General:",
	"--------",
	"  u / U            Undo / redo",
	"  Esc              Clear selection",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) View() string {
	if m.help && m.mode != ModeStartup {
		return m.helpView()
	}
	if m.mode == ModeStartup {
		return m.startupView()
	}

	width := max(m.width, 1)
	height := m.canvasHeight()

	var result strings.Builder
	if len(m.buffers) > 1 {
		result.WriteString(m.renderBufferBar(width))
		result.WriteString("\n")
	}

	if m.mode == ModeFileInput && (m.fileOp == FileOpOpen || m.fileOp == FileOpImportMermaid) {
		result.WriteString(m.fileListView(width, height))
	} else {
		lines := m.renderCanvas()
		result.WriteString(strings.Join(lines, "\n"))
	}

	result.WriteString("\n")
	result.WriteString(m.statusLine(width))
	return result.String()
}

func (m model) renderCanvas() []string {
	canvas := m.getCanvas()
	v := m.viewport()
	if canvas == nil {
		return make([]string, v.height)
	}

	opts := noSelection()
	opts.selectedNode = m.selectedNode
	opts.selectedEdge = m.selectedEdge
	if m.mode == ModeLink {
		opts.linkFrom = m.linkFrom
		opts.preview = &point{m.cursorX, m.cursorY}
	}
	lines := canvas.Render(v, opts)

	if m.mode != ModeFileInput && m.cursorY >= 0 && m.cursorY < len(lines) {
		line := []rune(lines[m.cursorY])
		if m.cursorX >= 0 && m.cursorX < len(line) {
			line[m.cursorX] = '█'
			lines[m.cursorY] = string(line)
		}
	}
	return lines
}

func (m model) startupView() string {
	welcome := welcomeStyle.Render(strings.Join([]string{
		"Welcome to flowedit!",
		"",
		"'n' New flowchart",
		"'o' Open existing chart",
		"'q' Quit",
	}, "\n"))
	if m.errorMessage != "" {
		welcome += "\n" + errorStyle.Render(m.errorMessage)
	}
	return lipgloss.Place(max(m.width, 1), max(m.height, 1), lipgloss.Center, lipgloss.Center, welcome)
}

func (m model) renderBufferBar(width int) string {
	parts := make([]string, 0, len(m.buffers))
	for i, buf := range m.buffers {
		name := fmt.Sprintf("Buffer %d", i+1)
		if buf.filename != "" {
			name = displayName(buf.filename)
		}
		if i == m.currentBufferIndex {
			name = activeStyle.Render(name)
		}
		parts = append(parts, name)
	}
	return barStyle.MaxWidth(width).Render("Open Charts: " + strings.Join(parts, " | "))
}

func (m model) fileListView(width, height int) string {
	var b strings.Builder
	b.WriteString("Select a chart:\n")
	b.WriteString(strings.Repeat("─", width))
	b.WriteString("\n")

	maxFiles := max(height-3, 1)
	rows := 0
	if len(m.fileList) == 0 {
		b.WriteString("(No .json or .mmd files found)\n")
		rows++
	} else {
		start := 0
		if m.selectedFileIndex >= maxFiles {
			start = m.selectedFileIndex - maxFiles + 1
		}
		end := min(start+maxFiles, len(m.fileList))
		for i := start; i < end; i++ {
			if i == m.selectedFileIndex {
				b.WriteString("> " + activeStyle.Render(m.fileList[i]) + " <")
			} else {
				b.WriteString("  " + m.fileList[i])
			}
			b.WriteString("\n")
			rows++
		}
	}
	for ; rows < maxFiles; rows++ {
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("─", width))
	return b.String()
}

func editDisplay(text string, pos int) string {
	runes := []rune(strings.ReplaceAll(text, "\n", "↵"))
	if pos >= len(runes) {
		return string(runes) + "█"
	}
	runes[pos] = '█'
	return string(runes)
}

func (m model) statusLine(width int) string {
	var status string
	switch m.mode {
	case ModeCreating:
		status = "1/p process, 2/d decision, 3/t terminator, 4/i input/output | Esc=cancel"
	case ModeEditing:
		what := fmt.Sprintf("Node %d", m.selectedNode)
		if m.editingLabel {
			what = fmt.Sprintf("Label of connection %d", m.selectedEdge)
		}
		status = fmt.Sprintf("%s | %s | Enter=newline, Ctrl+S=save, Esc=cancel", what, editDisplay(m.editText, m.editCursorPos))
	case ModeMove:
		status = fmt.Sprintf("Node %d | hjkl/arrows=move, Enter=finish, Esc=cancel", m.selectedNode)
	case ModeResize:
		status = fmt.Sprintf("Node %d | hjkl/arrows=resize, Enter=finish, Esc=cancel", m.selectedNode)
	case ModeLink:
		status = fmt.Sprintf("Connection from node %d | move to target, a/Enter=connect, Esc=cancel", m.linkFrom)
	case ModeFileInput:
		status = fmt.Sprintf("%s: %s█ | Enter=confirm, Esc=cancel", fileOpString(m.fileOp), m.filename)
	case ModeConfirm:
		status = m.confirmMessage()
	default:
		status = fmt.Sprintf("Cursor: (%d,%d)", m.cursorX, m.cursorY)
		if m.selectedNode != -1 {
			status += fmt.Sprintf(" | Node %d", m.selectedNode)
		}
		if m.selectedEdge != -1 {
			if e := m.getCanvas().Edge(m.selectedEdge); e != nil {
				status += fmt.Sprintf(" | Connection %d %s label=%s", e.ID, e.Route().Case, e.LabelPosition)
			}
		}
		if m.errorMessage == "" && m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
	}

	line := modeStyle.Render(m.modeString()) + statusStyle.Render(" "+status)
	if m.errorMessage != "" {
		line += errorStyle.Render(" | ERROR: " + m.errorMessage)
	} else if m.successMessage != "" {
		line += successStyle.Render(" | " + m.successMessage)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func fileOpString(op FileOperation) string {
	switch op {
	case FileOpSave:
		return "Save as"
	case FileOpOpen:
		return "Open"
	case FileOpImportMermaid:
		return "Import Mermaid"
	case FileOpSavePNG:
		return "Export PNG"
	case FileOpSaveVisualTXT:
		return "Export text"
	}
	return ""
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDeleteNode:
		return fmt.Sprintf("Delete node %d and its connections? (y/n)", m.confirmNodeID)
	case ConfirmDeleteEdge:
		return fmt.Sprintf("Delete connection %d? (y/n)", m.confirmEdgeID)
	case ConfirmQuit:
		return "Quit flowedit? (y/n)"
	case ConfirmNewChart:
		return "Create new chart? Unsaved changes will be lost. (y/n)"
	case ConfirmCloseBuffer:
		return "Close current buffer? Unsaved changes will be lost. (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
	}
	return ""
}

func (m model) modeString() string {
	if m.zPanMode {
		return "PAN"
	}
	switch m.mode {
	case ModeStartup:
		return "STARTUP"
	case ModeNormal:
		return "NORMAL"
	case ModeCreating:
		return "CREATE"
	case ModeEditing:
		return "EDIT"
	case ModeResize:
		return "RESIZE"
	case ModeMove:
		return "MOVE"
	case ModeLink:
		return "LINK"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	start := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	end := min(start+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[start:end], "\n")
	result += "\n" + statusStyle.Render(fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		start+1, end, len(helpLines)))
	return result
}
