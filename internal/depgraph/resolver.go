package depgraph

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// CheckDependencies reports whether a card can start. An unknown card cannot
// start and has no relations.
func CheckDependencies(jobCardID string, cards []model.JobCard) DependencyCheck {
	g := newGraph(cards)
	i := g.resolve(jobCardID)
	if i < 0 {
		return DependencyCheck{BlockedBy: []model.JobCard{}, Blocks: []model.JobCard{}}
	}
	blockedBy := g.openDependencies(i)
	return DependencyCheck{
		CanStart:  len(blockedBy) == 0 && cards[i].Status != model.JobCardBlocked,
		BlockedBy: blockedBy,
		Blocks:    g.otherDependents(i),
	}
}

// UpdateDependentJobCards propagates the completion of one card to the cards
// that directly depend on it. References to the completed card are dropped
// from their BlockedBy sets, and a Blocked card left with no blockers moves
// to Ready. Only one hop is propagated; callers invoke this once per
// completion event. An unknown card yields an unchanged copy of the snapshot.
func UpdateDependentJobCards(completedJobCardID string, cards []model.JobCard, at time.Time) []model.JobCard {
	out := make([]model.JobCard, len(cards))
	copy(out, cards)

	g := newGraph(cards)
	ci := g.resolve(completedJobCardID)
	if ci < 0 {
		return out
	}

	for _, j := range g.dependents[ci] {
		if j == ci {
			continue
		}
		card := cards[j].Clone()
		remaining := make([]string, 0, len(card.BlockedBy))
		for _, ref := range card.BlockedBy {
			if g.resolve(ref) != ci {
				remaining = append(remaining, ref)
			}
		}
		card.BlockedBy = remaining
		card.UpdatedAt = at
		if len(remaining) == 0 && card.Status == model.JobCardBlocked {
			card.Status = model.JobCardReady
			card.UpdatedBy = model.SystemUser
		}
		out[j] = card
	}
	return out
}

// RefreshBlockedBy recomputes every card's BlockedBy set from its
// dependencies and aligns Pending, Ready and Blocked statuses with it.
// Cards whose derived state already matches are passed through unchanged.
func RefreshBlockedBy(cards []model.JobCard, at time.Time) []model.JobCard {
	g := newGraph(cards)
	out := make([]model.JobCard, len(cards))
	for i, c := range cards {
		derived := []string{}
		seen := make(map[int]bool)
		for _, ref := range c.DependsOnJobCardIDs {
			d := g.resolve(ref)
			if d < 0 || seen[d] || cards[d].IsCompleted() {
				continue
			}
			seen[d] = true
			derived = append(derived, ref)
		}

		status := c.Status
		switch {
		case len(derived) == 0 && status == model.JobCardBlocked:
			status = model.JobCardReady
		case len(derived) > 0 && (status == model.JobCardPending || status == model.JobCardReady):
			status = model.JobCardBlocked
		}

		if status == c.Status && slices.Equal(derived, c.BlockedBy) {
			out[i] = c
			continue
		}
		card := c.Clone()
		card.BlockedBy = derived
		card.UpdatedAt = at
		if status != c.Status {
			card.Status = status
			card.UpdatedBy = model.SystemUser
		}
		out[i] = card
	}
	return out
}

// CanDeleteJobCard reports whether no other card depends on the given one.
func CanDeleteJobCard(jobCardID string, cards []model.JobCard) DeleteCheck {
	g := newGraph(cards)
	i := g.resolve(jobCardID)
	if i < 0 {
		return DeleteCheck{CanDelete: true}
	}
	dependents := g.otherDependents(i)
	if len(dependents) == 0 {
		return DeleteCheck{CanDelete: true}
	}
	return DeleteCheck{
		CanDelete:      false,
		Reason:         fmt.Sprintf("cannot delete %s: %d job card(s) depend on it", cards[i].Label(), len(dependents)),
		DependentCards: dependents,
	}
}

// Summarize computes progress figures for a snapshot.
func Summarize(cards []model.JobCard) Summary {
	s := Summary{
		Total:     len(cards),
		ByStatus:  make(map[model.JobCardStatus]int),
		Startable: []string{},
	}
	if len(cards) == 0 {
		return s
	}

	g := newGraph(cards)
	for i, c := range cards {
		s.ByStatus[c.Status]++
		est := math.Max(0, c.EstimatedTotalTimeMin)
		s.TotalEstimatedMin += est
		if c.IsCompleted() {
			continue
		}
		s.RemainingEstimatedMin += est
		if c.Status == model.JobCardInProgress {
			continue
		}
		if len(g.openDependencies(i)) == 0 && c.Status != model.JobCardBlocked {
			s.Startable = append(s.Startable, c.Label())
		}
	}
	s.CompletionPercent = math.Round(float64(s.ByStatus[model.JobCardCompleted]) / float64(s.Total) * 100)
	return s
}
