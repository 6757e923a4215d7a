package main

import (
	"context"

	"cdr.dev/slog"

	"flowedit/routing"
)

type Buffer struct {
	canvas    *Canvas
	undoStack []Action
	redoStack []Action
	filename  string
	docID     string
	panX      int
	panY      int
}

type model struct {
	width              int
	height             int
	cursorX            int
	cursorY            int
	zPanMode           bool
	buffers            []Buffer
	currentBufferIndex int
	mode               Mode
	help               bool
	helpScroll         int
	selectedNode       int
	selectedEdge       int
	editText           string
	editCursorPos      int
	editingLabel       bool
	originalEditText   string
	linkFrom           int
	filename           string
	fileList           []string
	selectedFileIndex  int
	fileOp             FileOperation
	openInNewBuffer    bool
	createNewBuffer    bool
	confirmAction      ConfirmAction
	confirmNodeID      int
	confirmEdgeID      int
	original           NodeState
	errorMessage       string
	successMessage     string
	fromStartup        bool
	dragging           bool
	dragFrom           point
	clipboard          *NodeState
	config             *Config
	router             *routing.Router
	ctx                context.Context
	log                slog.Logger
	watcher            *fileWatcher
}

type point struct {
	X, Y int
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

// NodeState is everything needed to recreate a node.
type NodeState struct {
	ID       int
	Category routing.Category
	X, Y     float64
	Width    float64
	Height   float64
	Text     string
	Placed   bool
}

// EdgeState is the persisted part of an edge. Sides, margin and label
// position survive node moves.
type EdgeState struct {
	ID            int
	FromID        int
	ToID          int
	FromSide      routing.Side
	ToSide        routing.Side
	WrapMargin    *float64
	Label         string
	LabelPosition routing.LabelPosition
}

type DeleteNodeData struct {
	Node  NodeState
	Edges []EdgeState
}

type EditTextData struct {
	ID      int
	NewText string
	OldText string
}

type GeometryData struct {
	Before NodeState
	After  NodeState
}

type RerouteData struct {
	Before EdgeState
	After  EdgeState
}

type ImportData struct {
	Before *Canvas
	After  *Canvas
}
