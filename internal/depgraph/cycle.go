package depgraph

import (
	"strconv"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// Node colours for depth-first traversal.
const (
	white = iota // unvisited
	gray         // on the current path
	black        // fully explored, no cycle below
)

// DetectCircularDependency reports whether giving jobCardID the proposed
// dependency list would create a cycle. The proposed list replaces the card's
// existing dependencies for the check, so an edit can be validated before it
// is committed. jobCardID need not exist yet.
func DetectCircularDependency(jobCardID string, proposedDependsOn []string, cards []model.JobCard) bool {
	g := newGraph(cards)

	// Resolved cards are keyed by index, unresolved references by their text.
	key := func(ref string) string {
		if i := g.resolve(ref); i >= 0 {
			return "#" + strconv.Itoa(i)
		}
		return "?" + ref
	}
	target := key(jobCardID)

	neighbours := func(k string) []string {
		var refs []string
		switch {
		case k == target:
			refs = proposedDependsOn
		case k[0] == '#':
			i, _ := strconv.Atoi(k[1:])
			refs = cards[i].DependsOnJobCardIDs
		}
		out := make([]string, len(refs))
		for n, ref := range refs {
			out[n] = key(ref)
		}
		return out
	}

	type frame struct {
		node string
		next []string
		pos  int
	}

	color := map[string]int{target: gray}
	stack := []frame{{node: target, next: neighbours(target)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.pos >= len(top.next) {
			color[top.node] = black
			stack = stack[:len(stack)-1]
			continue
		}
		n := top.next[top.pos]
		top.pos++

		switch color[n] {
		case gray:
			return true
		case black:
			continue
		}
		color[n] = gray
		stack = append(stack, frame{node: n, next: neighbours(n)})
	}
	return false
}
