package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"oss.terrastruct.com/xdefer"

	"flowedit/routing"
)

type document struct {
	ID    string       `json:"id,omitempty" validate:"omitempty,uuid"`
	Nodes []nodeRecord `json:"nodes" validate:"dive"`
	Edges []edgeRecord `json:"edges" validate:"dive"`
}

type nodeRecord struct {
	ID   int              `json:"id" validate:"gt=0"`
	Type routing.Category `json:"type" validate:"oneof=process decision terminator io"`
	// X and Y are absent for nodes that were never placed.
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	W    float64  `json:"w" validate:"gt=0"`
	H    float64  `json:"h" validate:"gt=0"`
	Text string   `json:"text"`
}

// Optional keys are left out when they hold the default, absence means
// automatic sides, default margin and automatic label position.
type edgeRecord struct {
	FromID        int                   `json:"from_id" validate:"gt=0"`
	ToID          int                   `json:"to_id" validate:"gt=0,nefield=FromID"`
	FromSide      routing.Side          `json:"from_connection_point,omitempty"`
	ToSide        routing.Side          `json:"to_connection_point,omitempty"`
	WrapMargin    *float64              `json:"edge_wrap_margin,omitempty" validate:"omitempty,gt=0"`
	Label         string                `json:"label,omitempty"`
	LabelPosition routing.LabelPosition `json:"label_position,omitempty" validate:"label_position"`
}

func (c *Canvas) document(id string) document {
	doc := document{
		ID:    id,
		Nodes: make([]nodeRecord, 0, len(c.nodes)),
		Edges: make([]edgeRecord, 0, len(c.edges)),
	}
	for _, n := range c.nodes {
		rec := nodeRecord{
			ID:   n.ID,
			Type: n.Category,
			W:    n.Width,
			H:    n.Height,
			Text: n.Text,
		}
		if n.Placed {
			x, y := n.X, n.Y
			rec.X, rec.Y = &x, &y
		}
		doc.Nodes = append(doc.Nodes, rec)
	}
	for _, e := range c.edges {
		s := e.State()
		rec := edgeRecord{
			FromID:     s.FromID,
			ToID:       s.ToID,
			WrapMargin: s.WrapMargin,
			Label:      s.Label,
		}
		if s.FromSide.Explicit() {
			rec.FromSide = s.FromSide
		}
		if s.ToSide.Explicit() {
			rec.ToSide = s.ToSide
		}
		if !s.LabelPosition.IsAuto() {
			rec.LabelPosition = s.LabelPosition
		}
		doc.Edges = append(doc.Edges, rec)
	}
	return doc
}

// Encode writes the canvas as an indented JSON document.
func (c *Canvas) Encode(w io.Writer, id string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c.document(id))
}

// SaveFile writes the canvas to filename. An empty id gets a fresh one,
// which is returned.
func (c *Canvas) SaveFile(filename, id string) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to save %s", filename)

	if id == "" {
		id = uuid.NewString()
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf, id); err != nil {
		return "", err
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return id, nil
}

func decodeDocument(r io.Reader) (*document, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if err := validateStruct(&doc); err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if seen[n.ID] {
			return nil, fmt.Errorf("duplicate node id %d", n.ID)
		}
		if (n.X == nil) != (n.Y == nil) {
			return nil, fmt.Errorf("node %d: x and y must be given together", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range doc.Edges {
		if !seen[e.FromID] || !seen[e.ToID] {
			return nil, fmt.Errorf("edge %d->%d references a missing node", e.FromID, e.ToID)
		}
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	return &doc, nil
}

// Decode replaces the content of c with the document read from r and
// returns the document id.
func (c *Canvas) Decode(r io.Reader) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to read chart")

	doc, err := decodeDocument(r)
	if err != nil {
		return "", err
	}
	c.nodes = c.nodes[:0]
	c.edges = c.edges[:0]
	c.nextNodeID, c.nextEdgeID = 1, 1

	for _, n := range doc.Nodes {
		s := NodeState{
			ID:       n.ID,
			Category: n.Type,
			Width:    n.W,
			Height:   n.H,
			Text:     n.Text,
		}
		if n.X != nil {
			s.X, s.Y, s.Placed = *n.X, *n.Y, true
		}
		c.AddNodeWithState(s)
	}
	for _, e := range doc.Edges {
		_, err := c.RestoreEdge(EdgeState{
			FromID:        e.FromID,
			ToID:          e.ToID,
			FromSide:      e.FromSide,
			ToSide:        e.ToSide,
			WrapMargin:    e.WrapMargin,
			Label:         e.Label,
			LabelPosition: e.LabelPosition,
		})
		if err != nil {
			return "", err
		}
	}
	return doc.ID, nil
}

// LoadFile reads a saved chart into a new canvas.
func LoadFile(filename string, router *routing.Router, layout Layout) (_ *Canvas, _ string, err error) {
	defer xdefer.Errorf(&err, "failed to open %s", filename)

	f, err := os.Open(filename)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	c := NewCanvas(router, layout)
	id, err := c.Decode(f)
	if err != nil {
		return nil, "", err
	}
	return c, id, nil
}
