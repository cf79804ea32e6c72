// Package depgraph analyses the dependency graph between job cards.
//
// Every function takes a full snapshot of cards and returns derived results
// or a new snapshot; inputs are never modified. A dependency reference may be
// a card ID or a JobCardNo. References that match no card in the snapshot are
// treated as satisfied, since the card may live in a slice of data the caller
// did not load.
package depgraph

import "github.com/piwi3910/ShopFloor/internal/model"

// lookup resolves references against a snapshot.
type lookup struct {
	byID map[string]int
	byNo map[string]int
}

func newLookup(cards []model.JobCard) lookup {
	l := lookup{
		byID: make(map[string]int, len(cards)),
		byNo: make(map[string]int, len(cards)),
	}
	for i, c := range cards {
		if _, ok := l.byID[c.ID]; !ok && c.ID != "" {
			l.byID[c.ID] = i
		}
		if _, ok := l.byNo[c.JobCardNo]; !ok && c.JobCardNo != "" {
			l.byNo[c.JobCardNo] = i
		}
	}
	return l
}

// resolve returns the index of the card a reference points at, or -1.
// IDs take precedence over JobCardNos.
func (l lookup) resolve(ref string) int {
	if i, ok := l.byID[ref]; ok {
		return i
	}
	if i, ok := l.byNo[ref]; ok {
		return i
	}
	return -1
}

// ResolveCardRef finds the card a reference (ID or JobCardNo) points at.
func ResolveCardRef(ref string, cards []model.JobCard) (model.JobCard, bool) {
	i, ok := ResolveCardIndex(ref, cards)
	if !ok {
		return model.JobCard{}, false
	}
	return cards[i], true
}

// ResolveCardIndex returns the position in cards of the card a reference
// points at. Callers that edit a snapshot should match on this index, since
// IDs may be empty when cards are keyed by JobCardNo.
func ResolveCardIndex(ref string, cards []model.JobCard) (int, bool) {
	if ref == "" {
		return -1, false
	}
	i := newLookup(cards).resolve(ref)
	return i, i >= 0
}

// graph is the resolved adjacency of a snapshot.
type graph struct {
	lookup
	cards      []model.JobCard
	deps       [][]int // resolved dependencies of each card, input order, deduplicated
	dependents [][]int // cards depending on each card, input order
}

func newGraph(cards []model.JobCard) *graph {
	g := &graph{
		lookup:     newLookup(cards),
		cards:      cards,
		deps:       make([][]int, len(cards)),
		dependents: make([][]int, len(cards)),
	}
	for i, c := range cards {
		seen := make(map[int]bool, len(c.DependsOnJobCardIDs))
		for _, ref := range c.DependsOnJobCardIDs {
			d := g.resolve(ref)
			if d < 0 || seen[d] {
				continue
			}
			seen[d] = true
			g.deps[i] = append(g.deps[i], d)
			g.dependents[d] = append(g.dependents[d], i)
		}
	}
	return g
}

// otherDependents returns the cards depending on i, excluding i itself.
func (g *graph) otherDependents(i int) []model.JobCard {
	out := []model.JobCard{}
	for _, j := range g.dependents[i] {
		if j != i {
			out = append(out, g.cards[j])
		}
	}
	return out
}

// openDependencies returns the resolved dependencies of i that are not completed.
func (g *graph) openDependencies(i int) []model.JobCard {
	out := []model.JobCard{}
	for _, d := range g.deps[i] {
		if !g.cards[d].IsCompleted() {
			out = append(out, g.cards[d])
		}
	}
	return out
}

func cloneAll(cards []model.JobCard, idx []int) []model.JobCard {
	out := make([]model.JobCard, len(idx))
	for k, i := range idx {
		out[k] = cards[i].Clone()
	}
	return out
}
