package depgraph

import (
	"math"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// GetExecutionOrder groups cards into levels: level 0 holds cards with no
// dependencies inside the snapshot, and each later level holds cards whose
// dependencies all sit on earlier levels. Input order is kept within a level.
// Leveling stops when no further card can be placed; the leftovers are
// returned in Unscheduled and indicate a cycle.
func GetExecutionOrder(cards []model.JobCard) ExecutionOrder {
	g := newGraph(cards)
	placed := make([]bool, len(cards))
	remaining := len(cards)

	order := ExecutionOrder{Levels: [][]model.JobCard{}}
	for remaining > 0 {
		var level []int
		for i := range cards {
			if placed[i] {
				continue
			}
			ready := true
			for _, d := range g.deps[i] {
				if !placed[d] {
					ready = false
					break
				}
			}
			if ready {
				level = append(level, i)
			}
		}
		if len(level) == 0 {
			break
		}
		for _, i := range level {
			placed[i] = true
		}
		remaining -= len(level)
		order.Levels = append(order.Levels, cloneAll(cards, level))
	}

	for i, ok := range placed {
		if !ok {
			order.Unscheduled = append(order.Unscheduled, cards[i].Clone())
		}
	}
	return order
}

// CalculateCriticalPath finds the chain of cards, from a card without
// dependencies forward through its dependents, with the greatest summed
// EstimatedTotalTimeMin. Every root-to-leaf chain is explored; on equal
// totals the first chain found wins.
//
// A dependent that is already on the current chain is treated as a dead end
// and marks the result Cyclic. Cards unreachable from any root can only sit
// on or behind a cycle; they are explored as extra starting points so the
// result still covers them.
func CalculateCriticalPath(cards []model.JobCard) CriticalPath {
	g := newGraph(cards)
	result := CriticalPath{Path: []model.JobCard{}}
	if len(cards) == 0 {
		return result
	}

	duration := func(i int) float64 {
		return math.Max(0, cards[i].EstimatedTotalTimeMin)
	}

	type frame struct {
		node      int
		next      int
		time      float64
		descended bool
	}

	onPath := make([]bool, len(cards))
	visited := make([]bool, len(cards))
	var best []int
	bestTime := -1.0

	explore := func(root int) {
		path := []int{root}
		onPath[root] = true
		visited[root] = true
		stack := []frame{{node: root, time: duration(root)}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(g.dependents[top.node]) {
				child := g.dependents[top.node][top.next]
				top.next++
				if onPath[child] {
					result.Cyclic = true
					continue
				}
				top.descended = true
				onPath[child] = true
				visited[child] = true
				path = append(path, child)
				stack = append(stack, frame{node: child, time: top.time + duration(child)})
				continue
			}

			if !top.descended && top.time > bestTime {
				bestTime = top.time
				best = append(best[:0:0], path...)
			}
			onPath[top.node] = false
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
		}
	}

	for i := range cards {
		if len(g.deps[i]) == 0 {
			explore(i)
		}
	}
	for i := range cards {
		if !visited[i] {
			result.Cyclic = true
			explore(i)
		}
	}

	result.Path = cloneAll(cards, best)
	result.TotalTime = math.Max(0, bestTime)
	return result
}
