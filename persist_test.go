package main

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowedit/routing"
)

func TestEncodeOmitsDefaults(t *testing.T) {
	t.Parallel()

	c := newTestCanvas(t)
	a := addBox(c, routing.CategoryTerminator, 100, 100)
	b := addBox(c, routing.CategoryProcess, 100, 300)
	_, err := c.AddEdge(a, b)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, "d0c5b9f4-3b4c-4a57-9a43-5a1f0f1d2c3e"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "d0c5b9f4-3b4c-4a57-9a43-5a1f0f1d2c3e", doc["id"])

	edges := doc["edges"].([]any)
	require.Len(t, edges, 1)
	assert.Equal(t, map[string]any{"from_id": 1.0, "to_id": 2.0}, edges[0])

	nodes := doc["nodes"].([]any)
	require.Len(t, nodes, 2)
	assert.Equal(t, map[string]any{
		"id": 1.0, "type": "terminator", "x": 100.0, "y": 100.0, "w": 120.0, "h": 60.0, "text": "terminator",
	}, nodes[0])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestCanvas(t)
	a := addBox(c, routing.CategoryProcess, 100, 100)
	b := addBox(c, routing.CategoryProcess, 400, 120)
	d := c.AddNodeWithState(NodeState{Category: routing.CategoryIO, Width: 120, Height: 60, Text: "floating"})
	id, err := c.AddEdge(a, b)
	require.NoError(t, err)
	_, err = c.AddEdge(b, d)
	require.NoError(t, err)

	_, changed := c.ChangeMargin(id, true)
	require.True(t, changed)
	c.SetEdgeLabel(id, "go")
	s := c.Edge(id).State()
	s.LabelPosition = "p1se"
	c.SetEdgeState(s)

	path := filepath.Join(t.TempDir(), "chart.json")
	docID, err := c.SaveFile(path, "")
	require.NoError(t, err)
	assert.Len(t, docID, 36)

	loaded, loadedID, err := LoadFile(path, newTestRouter(t), testLayout())
	require.NoError(t, err)
	assert.Equal(t, docID, loadedID)

	require.Len(t, loaded.Edges(), 2)
	for i, e := range c.Edges() {
		le := loaded.Edges()[i]
		assert.Equal(t, e.State(), le.State())
		assert.Equal(t, e.Route().Coords(), le.Route().Coords())
	}
	assert.Equal(t, []float64{160, 100, 260, 100, 260, 120, 340, 120}, loaded.Edge(id).Route().Coords())
	assert.Equal(t, []int{d}, loaded.Unplaced())
	assert.True(t, loaded.Edges()[1].Route().Empty())

	again, err := loaded.SaveFile(path, loadedID)
	require.NoError(t, err)
	assert.Equal(t, docID, again)
}

func TestDecodeAcceptsExplicitAuto(t *testing.T) {
	t.Parallel()

	c := newTestCanvas(t)
	_, err := c.Decode(strings.NewReader(`{
		"nodes": [
			{"id": 3, "type": "decision", "x": 200, "y": 100, "w": 120, "h": 60, "text": "ok?"},
			{"id": 7, "type": "process", "x": 400, "y": 100, "w": 120, "h": 60, "text": "next"}
		],
		"edges": [
			{"from_id": 3, "to_id": 7, "from_connection_point": "auto", "to_connection_point": "AUTO", "label_position": "auto", "label": "Yes"}
		]
	}`))
	require.NoError(t, err)

	e := c.Edges()[0]
	assert.Equal(t, routing.SidePair{From: routing.Auto, To: routing.Auto}, e.Sides())
	assert.Equal(t, "right-left", e.Route().Case.String())

	// ids keep counting after the highest loaded one
	assert.Equal(t, 8, addBox(c, routing.CategoryProcess, 0, 400))
}

func TestDecodeRejects(t *testing.T) {
	t.Parallel()

	const nodes = `"nodes": [
		{"id": 1, "type": "process", "x": 100, "y": 100, "w": 120, "h": 60, "text": "a"},
		{"id": 2, "type": "process", "x": 100, "y": 300, "w": 120, "h": 60, "text": "b"}
	]`

	testCases := []struct {
		name string
		doc  string
		err  string
	}{
		{
			name: "malformed",
			doc:  `{"nodes": [`,
			err:  "unexpected EOF",
		},
		{
			name: "duplicate_node",
			doc:  `{"nodes": [{"id": 1, "type": "process", "w": 1, "h": 1}, {"id": 1, "type": "io", "w": 1, "h": 1}], "edges": []}`,
			err:  "duplicate node id 1",
		},
		{
			name: "unknown_type",
			doc:  `{"nodes": [{"id": 1, "type": "cloud", "w": 1, "h": 1}], "edges": []}`,
			err:  "must be one of",
		},
		{
			name: "x_without_y",
			doc:  `{"nodes": [{"id": 1, "type": "process", "x": 5, "w": 1, "h": 1}], "edges": []}`,
			err:  "x and y must be given together",
		},
		{
			name: "missing_node",
			doc:  `{` + nodes + `, "edges": [{"from_id": 1, "to_id": 9}]}`,
			err:  "references a missing node",
		},
		{
			name: "self_edge",
			doc:  `{` + nodes + `, "edges": [{"from_id": 1, "to_id": 1}]}`,
			err:  "ToID",
		},
		{
			name: "bad_side",
			doc:  `{` + nodes + `, "edges": [{"from_id": 1, "to_id": 2, "from_connection_point": "middle"}]}`,
			err:  `unknown connection side "middle"`,
		},
		{
			name: "bad_label_position",
			doc:  `{` + nodes + `, "edges": [{"from_id": 1, "to_id": 2, "label_position": "p9se"}]}`,
			err:  "label_position",
		},
		{
			name: "negative_margin",
			doc:  `{` + nodes + `, "edges": [{"from_id": 1, "to_id": 2, "edge_wrap_margin": -4}]}`,
			err:  "WrapMargin",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestCanvas(t)
			_, err := c.Decode(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.err)
			assert.Empty(t, c.Nodes())
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"), newTestRouter(t), testLayout())
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to open")
}
