package main

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	buf.undoStack = append(buf.undoStack, action)
	buf.redoStack = buf.redoStack[:0]
}

func (m *model) undo() {
	buf := m.getCurrentBuffer()
	if buf == nil || len(buf.undoStack) == 0 {
		return
	}

	lastIndex := len(buf.undoStack) - 1
	action := buf.undoStack[lastIndex]
	buf.undoStack = buf.undoStack[:lastIndex]

	canvas := buf.canvas
	switch action.Type {
	case ActionAddNode:
		data := action.Data.(NodeState)
		canvas.DeleteNode(data.ID)
	case ActionDeleteNode:
		data := action.Data.(DeleteNodeData)
		canvas.AddNodeWithState(data.Node)
		for _, e := range data.Edges {
			canvas.RestoreEdge(e)
		}
	case ActionEditNode:
		data := action.Inverse.(EditTextData)
		canvas.SetNodeText(data.ID, data.NewText)
	case ActionResizeNode, ActionMoveNode, ActionPlaceNode:
		data := action.Data.(GeometryData)
		canvas.SetNodeGeometry(data.Before)
	case ActionAddEdge:
		data := action.Data.(EdgeState)
		canvas.RemoveEdge(data.ID)
	case ActionDeleteEdge:
		data := action.Data.(EdgeState)
		canvas.RestoreEdge(data)
	case ActionEditLabel:
		data := action.Inverse.(EditTextData)
		canvas.SetEdgeLabel(data.ID, data.NewText)
	case ActionReroute:
		data := action.Data.(RerouteData)
		canvas.SetEdgeState(data.Before)
	case ActionImport:
		data := action.Data.(ImportData)
		buf.canvas = data.Before
	}
	m.clearSelection()

	buf.redoStack = append(buf.redoStack, action)
}

func (m *model) redo() {
	buf := m.getCurrentBuffer()
	if buf == nil || len(buf.redoStack) == 0 {
		return
	}

	lastIndex := len(buf.redoStack) - 1
	action := buf.redoStack[lastIndex]
	buf.redoStack = buf.redoStack[:lastIndex]

	canvas := buf.canvas
	switch action.Type {
	case ActionAddNode:
		data := action.Data.(NodeState)
		canvas.AddNodeWithState(data)
	case ActionDeleteNode:
		data := action.Data.(DeleteNodeData)
		canvas.DeleteNode(data.Node.ID)
	case ActionEditNode:
		data := action.Data.(EditTextData)
		canvas.SetNodeText(data.ID, data.NewText)
	case ActionResizeNode, ActionMoveNode, ActionPlaceNode:
		data := action.Data.(GeometryData)
		canvas.SetNodeGeometry(data.After)
	case ActionAddEdge:
		data := action.Data.(EdgeState)
		canvas.RestoreEdge(data)
	case ActionDeleteEdge:
		data := action.Data.(EdgeState)
		canvas.RemoveEdge(data.ID)
	case ActionEditLabel:
		data := action.Data.(EditTextData)
		canvas.SetEdgeLabel(data.ID, data.NewText)
	case ActionReroute:
		data := action.Data.(RerouteData)
		canvas.SetEdgeState(data.After)
	case ActionImport:
		data := action.Data.(ImportData)
		buf.canvas = data.After
	}
	m.clearSelection()

	buf.undoStack = append(buf.undoStack, action)
}
