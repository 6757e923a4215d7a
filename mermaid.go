package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"oss.terrastruct.com/xdefer"

	"flowedit/routing"
)

type mermaidNode struct {
	id       string
	category routing.Category
	title    string
}

type mermaidLink struct {
	from, to string
	label    string
}

type mermaidChart struct {
	nodes []mermaidNode
	links []mermaidLink
}

var (
	mermaidRefRE  = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9_]*)\s*(?:\(([^)]*)\)|\[([^\]]*)\]|\{([^}]*)\}|/([^/]*)/)?\s*`)
	mermaidLinkRE = regexp.MustCompile(`^\s*(?:-->\s*\|([^|]*)\||-->|--\s*(.*?)\s*-->)\s*`)
	mermaidHeadRE = regexp.MustCompile(`^(?:flowchart|graph)\b`)
)

// Shape delimiters in the order of the mermaidRefRE groups.
var mermaidShapes = []routing.Category{
	routing.CategoryTerminator,
	routing.CategoryProcess,
	routing.CategoryDecision,
	routing.CategoryIO,
}

var mermaidSkip = []string{"classDef ", "class ", "style ", "linkStyle ", "subgraph ", "click ", "direction "}

// parseMermaid reads the node definitions and link chains of a Mermaid
// flowchart block. Shapes map to categories: (text) terminator, [text]
// process, {text} decision and /text/ io.
func parseMermaid(text string) (*mermaidChart, error) {
	chart := &mermaidChart{}
	index := map[string]int{}
	define := func(n mermaidNode, shaped bool) {
		i, ok := index[n.id]
		switch {
		case !ok:
			if !shaped {
				n.category, n.title = routing.CategoryProcess, n.id
			}
			index[n.id] = len(chart.nodes)
			chart.nodes = append(chart.nodes, n)
		case shaped:
			chart.nodes[i] = n
		}
	}
	inFlowchart := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if mermaidHeadRE.MatchString(line) {
			inFlowchart = true
			continue
		}
		if !inFlowchart || line == "end" || hasAnyPrefix(line, mermaidSkip) {
			continue
		}

		refs, links, err := parseMermaidLine(line)
		if err != nil {
			if strings.Contains(line, "-->") {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}
		for _, r := range refs {
			define(r.node, r.shaped)
		}
		chart.links = append(chart.links, links...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !inFlowchart {
		return nil, fmt.Errorf("no flowchart block found")
	}
	return chart, nil
}

type mermaidRef struct {
	node   mermaidNode
	shaped bool
}

// parseMermaidRef reads a node id with an optional shape from the start of s.
func parseMermaidRef(s string) (mermaidRef, string, bool) {
	m := mermaidRefRE.FindStringSubmatchIndex(s)
	if m == nil {
		return mermaidRef{}, s, false
	}
	ref := mermaidRef{node: mermaidNode{id: s[m[2]:m[3]]}}
	for i, category := range mermaidShapes {
		if start := m[4+2*i]; start >= 0 {
			ref.node.category = category
			ref.node.title = strings.TrimSpace(s[start:m[5+2*i]])
			ref.shaped = true
		}
	}
	return ref, s[m[1]:], true
}

// parseMermaidLine splits "A --> B{b} --label--> C -->|x| D" into node references and
// links. A line holding a single reference is a node definition.
func parseMermaidLine(line string) ([]mermaidRef, []mermaidLink, error) {
	cur, rest, ok := parseMermaidRef(line)
	if !ok {
		return nil, nil, fmt.Errorf("expected a node id in %q", line)
	}
	refs := []mermaidRef{cur}

	var links []mermaidLink
	for rest != "" {
		em := mermaidLinkRE.FindStringSubmatch(rest)
		if em == nil {
			return nil, nil, fmt.Errorf("expected --> after %s", cur.node.id)
		}
		rest = rest[len(em[0]):]
		next, r, ok := parseMermaidRef(rest)
		if !ok {
			return nil, nil, fmt.Errorf("expected a node id after %s -->", cur.node.id)
		}
		rest = r
		refs = append(refs, next)
		links = append(links, mermaidLink{from: cur.node.id, to: next.node.id, label: strings.TrimSpace(em[1] + em[2])})
		cur = next
	}
	return refs, links, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// ImportMermaid replaces the canvas content with the chart. Nodes are laid
// out in columns of ten, in definition order.
func (c *Canvas) ImportMermaid(chart *mermaidChart) error {
	c.nodes = c.nodes[:0]
	c.edges = c.edges[:0]
	c.nextNodeID, c.nextEdgeID = 1, 1

	l := c.layout
	startX := l.Grid*10 + l.NodeWidth/2
	startY := l.Grid*2 + l.NodeHeight/2
	intervalX := l.NodeWidth + l.Grid*4
	intervalY := l.NodeHeight + l.Grid

	ids := make(map[string]int, len(chart.nodes))
	for i, n := range chart.nodes {
		ids[n.id] = c.AddNodeWithState(NodeState{
			Category: n.category,
			X:        startX + float64(i/mermaidColumnSize)*intervalX,
			Y:        startY + float64(i%mermaidColumnSize)*intervalY,
			Width:    l.NodeWidth,
			Height:   l.NodeHeight,
			Text:     n.title,
			Placed:   true,
		})
	}
	for _, link := range chart.links {
		if link.from == link.to {
			continue
		}
		_, err := c.RestoreEdge(EdgeState{
			FromID: ids[link.from],
			ToID:   ids[link.to],
			Label:  link.label,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func importMermaidFile(filename string, c *Canvas) (err error) {
	defer xdefer.Errorf(&err, "failed to import %s", filename)

	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	chart, err := parseMermaid(string(b))
	if err != nil {
		return err
	}
	return c.ImportMermaid(chart)
}
