package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cdr.dev/slog"
	tea "github.com/charmbracelet/bubbletea"

	"flowedit/routing"
)

func (m model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.wait()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case fileChangedMsg:
		m.reload(msg.path)
		return m, m.watcher.wait()

	case tea.MouseMsg:
		if m.mode == ModeNormal && !m.help {
			m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.help && m.mode != ModeStartup {
			m.handleHelpKey(msg.String())
			return m, nil
		}

		var cmd tea.Cmd
		switch m.mode {
		case ModeStartup:
			cmd = m.handleStartupKey(msg)
		case ModeNormal:
			cmd = m.handleNormalKey(msg)
		case ModeCreating:
			m.handleCreateKey(msg)
		case ModeEditing:
			m.handleEditKey(msg)
		case ModeMove, ModeResize:
			m.handleTransformKey(msg)
		case ModeLink:
			m.handleLinkKey(msg)
		case ModeFileInput:
			cmd = m.handleFileKey(msg)
		case ModeConfirm:
			cmd = m.handleConfirmKey(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *model) handleHelpKey(key string) {
	switch key {
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
}

func (m *model) handleStartupKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "n":
		m.replaceBuffer(m.newCanvas(), "", "")
		m.mode = ModeNormal
		m.cursorX, m.cursorY = 0, 0
		m.errorMessage = ""
	case "o":
		m.startFileInput(FileOpOpen)
		m.fromStartup = true
		m.openInNewBuffer = false
	case "q", "ctrl+c":
		return tea.Quit
	}
	return nil
}

func (m *model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEscape {
		m.zPanMode = false
		m.clearSelection()
		return nil
	}

	key := msg.String()
	if isDirectionKey(key) {
		m.handleNavigation(key, m.getMoveSpeed(key))
		return nil
	}
	if key != "z" {
		m.zPanMode = false
	}
	m.successMessage = ""

	canvas := m.getCanvas()
	switch key {
	case "ctrl+c", "q":
		return m.confirm(ConfirmQuit)
	case "n":
		m.createNewBuffer = false
		return m.confirm(ConfirmNewChart)
	case "N":
		m.addNewBuffer(m.newCanvas(), "", "")
		m.cursorX, m.cursorY = 0, 0
		m.errorMessage = ""
	case "x":
		return m.confirm(ConfirmCloseBuffer)
	case "{":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + len(m.buffers) - 1) % len(m.buffers)
			m.clearSelection()
		}
	case "}":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + 1) % len(m.buffers)
			m.clearSelection()
		}
	case "?":
		m.help = !m.help
	case "z":
		m.zPanMode = !m.zPanMode

	case "b":
		m.mode = ModeCreating
	case "enter", " ":
		m.selectUnderCursor()
	case "e":
		m.startEditing()
	case "m", "r":
		id := m.nodeUnderCursor()
		if id == -1 {
			return nil
		}
		m.selectedNode = id
		m.selectedEdge = -1
		m.original = canvas.Node(id).State()
		m.mode = ModeMove
		if key == "r" {
			m.mode = ModeResize
		}
	case "d":
		if id := m.nodeUnderCursor(); id != -1 {
			m.confirmNodeID = id
			return m.confirm(ConfirmDeleteNode)
		}
		if id := m.targetEdge(); id != -1 {
			m.confirmEdgeID = id
			return m.confirm(ConfirmDeleteEdge)
		}
	case "a":
		if id := m.nodeUnderCursor(); id != -1 {
			m.linkFrom = id
			m.selectedNode = -1
			m.selectedEdge = -1
			m.mode = ModeLink
		}
	case "c":
		m.copySelection()
	case "p":
		m.pasteNode()
	case "P":
		m.placeNextNode()
	case "v":
		m.pasteMermaid()

	case "[", "]":
		m.adjustEdge(ActionReroute, func(c *Canvas, id int) (RerouteData, bool) {
			return c.RotateSides(id, key == "]")
		})
	case "-", "+", "=":
		m.adjustEdge(ActionReroute, func(c *Canvas, id int) (RerouteData, bool) {
			return c.ChangeMargin(id, key != "-")
		})
	case "<", ">":
		m.adjustEdge(ActionReroute, func(c *Canvas, id int) (RerouteData, bool) {
			return c.RotateLabel(id, key == ">")
		})

	case "s":
		m.startFileInput(FileOpSave)
		if buf := m.getCurrentBuffer(); buf != nil && buf.filename != "" {
			m.filename = strings.TrimSuffix(buf.filename, filepath.Ext(buf.filename))
		}
	case "S":
		m.startFileInput(FileOpSavePNG)
	case "T":
		m.startFileInput(FileOpSaveVisualTXT)
	case "o", "O":
		m.startFileInput(FileOpOpen)
		m.openInNewBuffer = key == "O"
	case "i":
		m.startFileInput(FileOpImportMermaid)
	case "u":
		m.undo()
	case "U":
		m.redo()
	}
	return nil
}

func (m *model) selectUnderCursor() {
	m.clearSelection()
	if id := m.nodeUnderCursor(); id != -1 {
		m.selectedNode = id
		return
	}
	m.selectedEdge = m.edgeUnderCursor()
}

// targetEdge is the selected edge, or the one under the cursor.
func (m *model) targetEdge() int {
	if m.selectedEdge != -1 && m.getCanvas().Edge(m.selectedEdge) != nil {
		return m.selectedEdge
	}
	return m.edgeUnderCursor()
}

// adjustEdge applies a routing change to the target edge and records it
// as one undoable step.
func (m *model) adjustEdge(action ActionType, fn func(*Canvas, int) (RerouteData, bool)) {
	canvas := m.getCanvas()
	id := m.targetEdge()
	if canvas == nil || id == -1 {
		m.errorMessage = "No connection selected"
		return
	}
	m.selectedEdge = id
	m.selectedNode = -1
	data, changed := fn(canvas, id)
	if !changed {
		return
	}
	m.recordAction(action, data, nil)
	m.errorMessage = ""
	m.log.Debug(m.ctx, "edge adjusted",
		slog.F("edge", id),
		slog.F("sides", canvas.Edge(id).Sides().String()),
		slog.F("label_position", string(data.After.LabelPosition)),
	)
}

func (m *model) handleCreateKey(msg tea.KeyMsg) {
	var category routing.Category
	switch msg.String() {
	case "1", "p":
		category = routing.CategoryProcess
	case "2", "d":
		category = routing.CategoryDecision
	case "3", "t":
		category = routing.CategoryTerminator
	case "4", "i":
		category = routing.CategoryIO
	case "esc":
		m.mode = ModeNormal
		return
	default:
		return
	}

	canvas := m.getCanvas()
	x, y := m.worldCoords()
	id := canvas.AddNode(category, x, y, "")
	m.recordAction(ActionAddNode, canvas.Node(id).State(), nil)
	m.mode = ModeNormal
	m.clearSelection()
	m.selectedNode = id
}

func (m *model) startEditing() {
	canvas := m.getCanvas()
	if canvas == nil {
		return
	}
	if id := m.nodeUnderCursor(); id != -1 {
		m.clearSelection()
		m.selectedNode = id
		m.editingLabel = false
		m.editText = canvas.Node(id).Text
	} else if id := m.targetEdge(); id != -1 {
		m.clearSelection()
		m.selectedEdge = id
		m.editingLabel = true
		m.editText = canvas.Edge(id).Label
	} else {
		return
	}
	m.originalEditText = m.editText
	m.editCursorPos = len([]rune(m.editText))
	m.mode = ModeEditing
}

func (m *model) handleEditKey(msg tea.KeyMsg) {
	runes := []rune(m.editText)
	pos := min(max(m.editCursorPos, 0), len(runes))

	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		return
	case tea.KeyCtrlS:
		m.finishEditing()
		return
	case tea.KeyEnter:
		runes = append(runes[:pos], append([]rune{'\n'}, runes[pos:]...)...)
		pos++
	case tea.KeyBackspace:
		if pos > 0 {
			runes = append(runes[:pos-1], runes[pos:]...)
			pos--
		}
	case tea.KeyDelete:
		if pos < len(runes) {
			runes = append(runes[:pos], runes[pos+1:]...)
		}
	case tea.KeyLeft:
		if pos > 0 {
			pos--
		}
	case tea.KeyRight:
		if pos < len(runes) {
			pos++
		}
	case tea.KeyHome:
		pos = 0
	case tea.KeyEnd:
		pos = len(runes)
	case tea.KeySpace:
		runes = append(runes[:pos], append([]rune{' '}, runes[pos:]...)...)
		pos++
	case tea.KeyRunes:
		runes = append(runes[:pos], append(append([]rune{}, msg.Runes...), runes[pos:]...)...)
		pos += len(msg.Runes)
	}
	m.editText = string(runes)
	m.editCursorPos = pos
}

func (m *model) finishEditing() {
	canvas := m.getCanvas()
	m.mode = ModeNormal
	if canvas == nil || m.editText == m.originalEditText {
		return
	}
	if m.editingLabel {
		id := m.selectedEdge
		canvas.SetEdgeLabel(id, m.editText)
		m.recordAction(ActionEditLabel,
			EditTextData{ID: id, NewText: m.editText, OldText: m.originalEditText},
			EditTextData{ID: id, NewText: m.originalEditText, OldText: m.editText})
		return
	}
	id := m.selectedNode
	canvas.SetNodeText(id, m.editText)
	m.recordAction(ActionEditNode,
		EditTextData{ID: id, NewText: m.editText, OldText: m.originalEditText},
		EditTextData{ID: id, NewText: m.originalEditText, OldText: m.editText})
}

func (m *model) handleTransformKey(msg tea.KeyMsg) {
	canvas := m.getCanvas()
	key := msg.String()
	switch {
	case isDirectionKey(key):
		if m.mode == ModeMove {
			m.handleNodeMove(key, m.getMoveSpeed(key))
		} else {
			m.handleNodeResize(key, m.getMoveSpeed(key))
		}
	case msg.Type == tea.KeyEnter:
		action := ActionMoveNode
		if m.mode == ModeResize {
			action = ActionResizeNode
		}
		if n := canvas.Node(m.selectedNode); n != nil && n.State() != m.original {
			m.recordAction(action, GeometryData{Before: m.original, After: n.State()}, nil)
		}
		m.mode = ModeNormal
		m.selectedNode = -1
	case msg.Type == tea.KeyEscape:
		canvas.SetNodeGeometry(m.original)
		m.mode = ModeNormal
		m.selectedNode = -1
	}
}

func (m *model) handleLinkKey(msg tea.KeyMsg) {
	key := msg.String()
	switch {
	case isDirectionKey(key):
		m.handleNavigation(key, m.getMoveSpeed(key))
	case key == "z":
		m.zPanMode = !m.zPanMode
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.linkFrom = -1
		m.zPanMode = false
	case key == "a" || msg.Type == tea.KeyEnter:
		to := m.nodeUnderCursor()
		if to == -1 {
			return
		}
		m.connect(m.linkFrom, to)
		m.mode = ModeNormal
		m.linkFrom = -1
		m.zPanMode = false
	}
}

func (m *model) connect(from, to int) {
	canvas := m.getCanvas()
	id, err := canvas.AddEdge(from, to)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	e := canvas.Edge(id)
	m.recordAction(ActionAddEdge, e.State(), nil)
	m.errorMessage = ""
	m.clearSelection()
	m.selectedEdge = id
	m.log.Debug(m.ctx, "edge added",
		slog.F("edge", id),
		slog.F("case", e.Route().Case.String()),
	)
}

func (m *model) copySelection() {
	canvas := m.getCanvas()
	if id := m.nodeUnderCursor(); id != -1 {
		s := canvas.Node(id).State()
		m.clipboard = &s
		if err := writeClipboardText(s.Text); err != nil {
			m.log.Debug(m.ctx, "clipboard write failed", slog.F("err", err))
		}
		m.successMessage = "Node copied"
		return
	}
	if id := m.targetEdge(); id != -1 {
		if err := writeClipboardText(canvas.Edge(id).Label); err != nil {
			m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
			return
		}
		m.successMessage = "Label copied"
	}
}

func (m *model) pasteNode() {
	canvas := m.getCanvas()
	if m.clipboard == nil || canvas == nil {
		return
	}
	s := *m.clipboard
	s.ID = 0
	s.Placed = true
	x, y := m.worldCoords()
	s.X, s.Y = canvas.Snap(x, y, s.Width, s.Height)
	id := canvas.AddNodeWithState(s)
	m.recordAction(ActionAddNode, canvas.Node(id).State(), nil)
	m.clearSelection()
	m.selectedNode = id
}

// placeNextNode puts the first node loaded without a position under the
// cursor.
func (m *model) placeNextNode() {
	canvas := m.getCanvas()
	unplaced := canvas.Unplaced()
	if len(unplaced) == 0 {
		m.errorMessage = "No unplaced nodes"
		return
	}
	before := canvas.Node(unplaced[0]).State()
	x, y := m.worldCoords()
	canvas.PlaceNode(before.ID, x, y)
	m.recordAction(ActionPlaceNode, GeometryData{Before: before, After: canvas.Node(before.ID).State()}, nil)
	m.successMessage = fmt.Sprintf("Placed node %d, %d left", before.ID, len(unplaced)-1)
}

func (m *model) pasteMermaid() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard unavailable: %v", err)
		return
	}
	chart, err := parseMermaid(cleanClipboardText(text))
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.importChart(func(c *Canvas) error { return c.ImportMermaid(chart) })
}

// importChart runs an import on the current canvas as one undoable step.
func (m *model) importChart(fn func(*Canvas) error) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	before, err := buf.canvas.Clone()
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if err := fn(buf.canvas); err != nil {
		buf.canvas = before
		m.errorMessage = err.Error()
		return
	}
	m.recordAction(ActionImport, ImportData{Before: before, After: buf.canvas}, nil)
	m.clearSelection()
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Imported %d nodes, %d edges", len(buf.canvas.Nodes()), len(buf.canvas.Edges()))
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	canvas := m.getCanvas()
	if canvas == nil {
		return
	}
	at := point{msg.X, msg.Y}
	if len(m.buffers) > 1 {
		at.Y--
	}
	v := m.viewport()

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		forward := msg.Button == tea.MouseButtonWheelUp
		if !msg.Ctrl && !msg.Shift {
			if buf := m.getCurrentBuffer(); buf != nil {
				if forward {
					buf.panY--
				} else {
					buf.panY++
				}
			}
			return
		}
		if id := canvas.EdgeAt(v, at); id != -1 {
			m.selectedEdge = id
		}
		switch {
		case msg.Ctrl && msg.Shift:
			m.adjustEdge(ActionReroute, func(c *Canvas, id int) (RerouteData, bool) {
				return c.RotateLabel(id, forward)
			})
		case msg.Ctrl:
			m.adjustEdge(ActionReroute, func(c *Canvas, id int) (RerouteData, bool) {
				return c.RotateSides(id, forward)
			})
		default:
			m.adjustEdge(ActionReroute, func(c *Canvas, id int) (RerouteData, bool) {
				return c.ChangeMargin(id, forward)
			})
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.cursorX, m.cursorY = at.X, at.Y
		m.ensureCursorInBounds()
		m.clearSelection()
		x, y := v.worldAt(at.X, at.Y)
		if id := canvas.NodeAt(x, y); id != -1 {
			m.selectedNode = id
			m.original = canvas.Node(id).State()
			m.dragging = true
			m.dragFrom = at
			return
		}
		m.selectedEdge = canvas.EdgeAt(v, at)

	// a held button reports motion with the button set
	case msg.Action == tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		dx := float64(at.X-m.dragFrom.X) * v.cellW
		dy := float64(at.Y-m.dragFrom.Y) * v.cellH
		canvas.MoveNode(m.selectedNode, dx, dy)
		m.dragFrom = at
		m.cursorX, m.cursorY = at.X, at.Y
		m.ensureCursorInBounds()

	case msg.Action == tea.MouseActionRelease:
		if !m.dragging {
			return
		}
		m.dragging = false
		n := canvas.Node(m.selectedNode)
		if n == nil {
			return
		}
		canvas.PlaceNode(n.ID, n.X, n.Y)
		if n.State() != m.original {
			m.recordAction(ActionMoveNode, GeometryData{Before: m.original, After: n.State()}, nil)
		}
	}
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
	m.errorMessage = ""
	m.fromStartup = false
	if op == FileOpOpen || op == FileOpImportMermaid {
		m.scanChartFiles()
	}
}

func (m *model) handleFileKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEscape:
		m.leaveFileInput()
		return nil
	case tea.KeyEnter:
		return m.submitFile()
	case tea.KeyUp, tea.KeyDown:
		if len(m.fileList) == 0 {
			return nil
		}
		if msg.Type == tea.KeyUp {
			m.selectedFileIndex = (m.selectedFileIndex + len(m.fileList) - 1) % len(m.fileList)
		} else {
			m.selectedFileIndex = (m.selectedFileIndex + 1) % len(m.fileList)
		}
		m.filename = m.fileList[m.selectedFileIndex]
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return nil
}

func (m *model) leaveFileInput() {
	m.errorMessage = ""
	if m.fromStartup {
		m.mode = ModeStartup
		return
	}
	m.mode = ModeNormal
}

var fileOpExtensions = map[FileOperation]string{
	FileOpSave:          ".json",
	FileOpSavePNG:       ".png",
	FileOpSaveVisualTXT: ".txt",
}

func withExtension(name, ext string) string {
	if ext == "" || strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return name + ext
}

func (m *model) submitFile() tea.Cmd {
	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "Filename required"
		return nil
	}
	m.errorMessage = ""
	path := m.config.GetSavePath(withExtension(name, fileOpExtensions[m.fileOp]))

	switch m.fileOp {
	case FileOpSave:
		buf := m.getCurrentBuffer()
		if _, err := os.Stat(path); err == nil && m.config.Confirmations && path != buf.filename {
			m.filename = path
			return m.confirm(ConfirmOverwriteFile)
		}
		m.save(path)
	case FileOpOpen:
		m.open(path)
	case FileOpImportMermaid:
		m.importChart(func(c *Canvas) error { return importMermaidFile(path, c) })
	case FileOpSavePNG:
		if err := m.getCanvas().ExportToPNG(path, m.config.Colors.palette()); err != nil {
			m.errorMessage = err.Error()
			return nil
		}
		m.successMessage = "Exported " + path
	case FileOpSaveVisualTXT:
		if err := m.getCanvas().ExportVisualTXT(path); err != nil {
			m.errorMessage = err.Error()
			return nil
		}
		m.successMessage = "Exported " + path
	}
	if m.errorMessage == "" {
		m.mode = ModeNormal
		m.fromStartup = false
	}
	return nil
}

func (m *model) save(path string) {
	buf := m.getCurrentBuffer()
	id, err := buf.canvas.SaveFile(path, buf.docID)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	buf.docID = id
	buf.filename = path
	if m.watcher != nil && m.watcher.watches(path) {
		m.watcher.noteWrite()
	}
	m.errorMessage = ""
	m.successMessage = "Saved " + path
	m.mode = ModeNormal
}

// loadChart reads a saved chart or a Mermaid flowchart, chosen by the
// file extension.
func (m *model) loadChart(path string) (*Canvas, string, error) {
	if strings.EqualFold(filepath.Ext(path), ".mmd") {
		canvas := m.newCanvas()
		if err := importMermaidFile(path, canvas); err != nil {
			return nil, "", err
		}
		return canvas, "", nil
	}
	return LoadFile(path, m.router, m.config.Layout())
}

func (m *model) open(path string) {
	canvas, id, err := m.loadChart(path)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if m.openInNewBuffer && !m.fromStartup {
		m.addNewBuffer(canvas, path, id)
	} else {
		m.replaceBuffer(canvas, path, id)
	}
	m.clearSelection()
	m.cursorX, m.cursorY = 0, 0
	m.errorMessage = ""
	m.successMessage = "Opened " + path
	if n := len(canvas.Unplaced()); n > 0 {
		m.successMessage += fmt.Sprintf(" (%d unplaced, P to place)", n)
	}
}

// reload replaces every buffer showing path with the file's new content.
func (m *model) reload(path string) {
	for i := range m.buffers {
		buf := &m.buffers[i]
		if buf.filename == "" || !m.watcher.watches(buf.filename) {
			continue
		}
		canvas, id, err := m.loadChart(path)
		if err != nil {
			m.errorMessage = err.Error()
			return
		}
		buf.canvas = canvas
		buf.docID = id
		buf.undoStack = buf.undoStack[:0]
		buf.redoStack = buf.redoStack[:0]
		m.clearSelection()
		m.successMessage = "Reloaded " + displayName(path)
	}
}

// confirm asks before running a destructive action, unless confirmations
// are turned off.
func (m *model) confirm(action ConfirmAction) tea.Cmd {
	m.confirmAction = action
	if m.config.Confirmations {
		m.mode = ModeConfirm
		return nil
	}
	return m.performConfirmed()
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		return m.performConfirmed()
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return nil
}

func (m *model) performConfirmed() tea.Cmd {
	m.mode = ModeNormal
	canvas := m.getCanvas()
	switch m.confirmAction {
	case ConfirmQuit:
		return tea.Quit
	case ConfirmDeleteNode:
		data := canvas.DeleteNode(m.confirmNodeID)
		m.recordAction(ActionDeleteNode, data, nil)
		m.clearSelection()
	case ConfirmDeleteEdge:
		if s, ok := canvas.RemoveEdge(m.confirmEdgeID); ok {
			m.recordAction(ActionDeleteEdge, s, nil)
		}
		m.clearSelection()
	case ConfirmNewChart:
		if m.createNewBuffer {
			m.addNewBuffer(m.newCanvas(), "", "")
		} else {
			m.replaceBuffer(m.newCanvas(), "", "")
		}
		m.clearSelection()
		m.cursorX, m.cursorY = 0, 0
	case ConfirmCloseBuffer:
		m.closeBuffer()
		m.clearSelection()
	case ConfirmOverwriteFile:
		m.save(m.filename)
	}
	return nil
}
