package main

import "flowedit/routing"

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeCreating
	ModeEditing
	ModeResize
	ModeMove
	ModeLink
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpImportMermaid
	FileOpSavePNG
	FileOpSaveVisualTXT
)

type ConfirmAction int

const (
	ConfirmDeleteNode ConfirmAction = iota
	ConfirmDeleteEdge
	ConfirmQuit
	ConfirmNewChart
	ConfirmCloseBuffer
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionAddNode ActionType = iota
	ActionDeleteNode
	ActionEditNode
	ActionResizeNode
	ActionMoveNode
	ActionPlaceNode
	ActionAddEdge
	ActionDeleteEdge
	ActionEditLabel
	ActionReroute
	ActionImport
)

const (
	// cells
	minNodeCols = 6
	minNodeRows = 3

	labelWrapWidth = 150.0

	mermaidColumnSize = 10
)

// Default node text per category when a node is created from the keyboard.
var defaultNodeText = map[routing.Category]string{
	routing.CategoryProcess:    "Process",
	routing.CategoryDecision:   "Decision?",
	routing.CategoryTerminator: "Start / End",
	routing.CategoryIO:         "Input / Output",
}
