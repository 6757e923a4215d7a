package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func (m *model) getCurrentBuffer() *Buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return &m.buffers[m.currentBufferIndex]
}

func (m *model) getCanvas() *Canvas {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.canvas
	}
	return nil
}

func (m *model) newCanvas() *Canvas {
	return NewCanvas(m.router, m.config.Layout())
}

func (m *model) addNewBuffer(canvas *Canvas, filename, docID string) {
	m.buffers = append(m.buffers, Buffer{
		canvas:    canvas,
		undoStack: []Action{},
		redoStack: []Action{},
		filename:  filename,
		docID:     docID,
	})
	m.currentBufferIndex = len(m.buffers) - 1
}

// replaceBuffer swaps the current buffer for a fresh one, keeping its slot.
func (m *model) replaceBuffer(canvas *Canvas, filename, docID string) {
	if len(m.buffers) == 0 {
		m.addNewBuffer(canvas, filename, docID)
		return
	}
	m.buffers[m.currentBufferIndex] = Buffer{
		canvas:    canvas,
		undoStack: []Action{},
		redoStack: []Action{},
		filename:  filename,
		docID:     docID,
	}
}

func (m *model) closeBuffer() {
	if len(m.buffers) <= 1 {
		m.replaceBuffer(m.newCanvas(), "", "")
		return
	}
	m.buffers = append(m.buffers[:m.currentBufferIndex], m.buffers[m.currentBufferIndex+1:]...)
	if m.currentBufferIndex >= len(m.buffers) {
		m.currentBufferIndex = len(m.buffers) - 1
	}
}

func (m *model) clearSelection() {
	m.selectedNode = -1
	m.selectedEdge = -1
	m.linkFrom = -1
	m.dragging = false
}

// canvasHeight is the number of rows left for the chart after the buffer
// bar and the status line.
func (m *model) canvasHeight() int {
	h := m.height - 1
	if m.mode != ModeStartup && len(m.buffers) > 1 {
		h--
	}
	return max(h, 1)
}

func (m *model) viewport() viewport {
	l := m.config.Layout()
	v := viewport{cellW: l.CellWidth, cellH: l.CellHeight, width: m.width, height: m.canvasHeight()}
	if buf := m.getCurrentBuffer(); buf != nil {
		v.panX, v.panY = buf.panX, buf.panY
	}
	return v
}

// worldCoords is the world point under the cursor.
func (m *model) worldCoords() (float64, float64) {
	return m.viewport().worldAt(m.cursorX, m.cursorY)
}

func (m *model) nodeUnderCursor() int {
	canvas := m.getCanvas()
	if canvas == nil {
		return -1
	}
	x, y := m.worldCoords()
	return canvas.NodeAt(x, y)
}

func (m *model) edgeUnderCursor() int {
	canvas := m.getCanvas()
	if canvas == nil {
		return -1
	}
	return canvas.EdgeAt(m.viewport(), point{m.cursorX, m.cursorY})
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	if maxY := m.canvasHeight() - 1; m.cursorY > maxY {
		m.cursorY = maxY
	}
}

var chartExtensions = []string{".json", ".mmd"}

// scanChartFiles lists the charts and Mermaid files in the save directory.
func (m *model) scanChartFiles() {
	m.fileList = m.fileList[:0]
	m.selectedFileIndex = -1

	dir := m.config.GetSavePath("")
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range chartExtensions {
			if ext == want {
				m.fileList = append(m.fileList, entry.Name())
			}
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = m.fileList[0]
	}
}

func displayName(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}
