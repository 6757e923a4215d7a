package main

import tea "github.com/charmbracelet/bubbletea"

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	if m.zPanMode {
		return m.handlePan(key, speed), nil
	}
	return m.handleCursorMove(key, speed), nil
}

func (m *model) handlePan(key string, speed int) tea.Model {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return m
	}
	dx, dy := direction(key)
	buf.panX -= dx * speed
	buf.panY -= dy * speed
	return m
}

func (m *model) handleCursorMove(key string, speed int) tea.Model {
	dx, dy := direction(key)
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
	return m
}

// handleNodeMove moves the selected node one grid step per key press. The
// cursor follows so it stays on the node.
func (m *model) handleNodeMove(key string, speed int) tea.Model {
	canvas := m.getCanvas()
	if canvas == nil {
		return m
	}
	dx, dy := direction(key)
	step := canvas.Layout().Grid * float64(speed)
	canvas.MoveNode(m.selectedNode, float64(dx)*step, float64(dy)*step)
	if n := canvas.Node(m.selectedNode); n != nil {
		v := m.viewport()
		c := v.cell(n.Center())
		m.cursorX, m.cursorY = c.X, c.Y
		m.ensureCursorInBounds()
	}
	return m
}

// handleNodeResize grows the node towards right/down and shrinks it
// towards left/up.
func (m *model) handleNodeResize(key string, speed int) tea.Model {
	canvas := m.getCanvas()
	if canvas == nil {
		return m
	}
	dx, dy := direction(key)
	step := canvas.Layout().Grid * float64(speed)
	canvas.ResizeNode(m.selectedNode, float64(dx)*step, float64(dy)*step)
	return m
}

func direction(key string) (dx, dy int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func isDirectionKey(key string) bool {
	dx, dy := direction(key)
	return dx != 0 || dy != 0
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
