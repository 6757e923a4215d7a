package routing

// Case names the rule that produced a route.
type Case struct {
	Pair SidePair
	// Direct marks the center to center fallback line.
	Direct bool
}

func (c Case) String() string {
	switch {
	case c.Direct:
		return "direct"
	case c.Pair.From.Explicit() && c.Pair.To.Explicit():
		return c.Pair.String()
	}
	return "none"
}

// Classify picks the side pair for a connector between from and to.
// An explicit pair is used as is when both sides are explicit, otherwise the
// relative layout of the two nodes decides. Layouts no rule covers (mostly
// overlapping nodes) yield a Direct case.
func (r *Router) Classify(from, to Geometry, fromSide, toSide Side) Case {
	if fromSide.Explicit() && toSide.Explicit() {
		return Case{Pair: SidePair{fromSide, toSide}}
	}

	var pair SidePair
	var ok bool
	if from.Category == CategoryDecision {
		pair, ok = classifyDecision(from, to)
	} else {
		pair, ok = r.classifyDefault(from, to)
	}
	if !ok {
		return Case{Direct: true}
	}
	return Case{Pair: pair}
}

// classifyDecision favors the right and left corners of a diamond so the
// branches of a decision fan out sideways.
func classifyDecision(from, to Geometry) (SidePair, bool) {
	fTop, fBottom, fLeft, fRight := from.Top(), from.Bottom(), from.Left(), from.Right()
	tTop, tBottom, tLeft, tRight := to.Top(), to.Bottom(), to.Left(), to.Right()

	switch {
	case fLeft.X <= tTop.X && tTop.X <= fRight.X && fBottom.Y < tTop.Y:
		return SidePair{Bottom, Top}, true
	case fRight.X < tLeft.X && tTop.Y <= fBottom.Y:
		return SidePair{Right, Left}, true
	case fRight.X < tTop.X && fRight.Y < tLeft.Y:
		return SidePair{Right, Top}, true
	case tRight.X < fLeft.X && tTop.Y <= fBottom.Y:
		return SidePair{Left, Right}, true
	case tTop.X < fLeft.X && fRight.Y < tLeft.Y:
		return SidePair{Left, Top}, true
	case tBottom.Y <= fTop.Y:
		if tBottom.X < fTop.X {
			return SidePair{Right, Right}, true
		}
		return SidePair{Left, Left}, true
	}
	return SidePair{}, false
}

func (r *Router) classifyDefault(from, to Geometry) (SidePair, bool) {
	fTop, fBottom, fLeft, fRight := from.Top(), from.Bottom(), from.Left(), from.Right()
	tTop, tBottom, tLeft, tRight := to.Top(), to.Bottom(), to.Left(), to.Right()
	band := r.grid * 2
	levelWith := tTop.Y <= fBottom.Y && tBottom.Y >= fTop.Y

	switch {
	case fBottom.Y < tTop.Y && tTop.Y <= fBottom.Y+band:
		// Just below: enter from the side when the target is clear of us.
		switch {
		case tRight.X < fLeft.X:
			return SidePair{Bottom, Right}, true
		case fRight.X < tLeft.X:
			return SidePair{Bottom, Left}, true
		}
		return SidePair{Bottom, Top}, true
	case fBottom.Y < tTop.Y:
		return SidePair{Bottom, Top}, true
	case fRight.X < tLeft.X && levelWith:
		return SidePair{Right, Left}, true
	case fRight.X+band < tLeft.X && tBottom.Y < fTop.Y:
		return SidePair{Right, Left}, true
	case tRight.X < fLeft.X && levelWith:
		return SidePair{Left, Right}, true
	case tBottom.Y <= fTop.Y:
		if tBottom.X < fTop.X {
			return SidePair{Right, Right}, true
		}
		return SidePair{Left, Left}, true
	}
	return SidePair{}, false
}
