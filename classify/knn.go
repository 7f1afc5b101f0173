package classify

import (
	"sort"

	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/util"
	"gonum.org/v1/gonum/floats"
)

// Neighbours is a k nearest neighbours classifier over chroma vectors.
type Neighbours struct {
	K        int
	Features model.FeatureTable
}

func trainNeighbours(table model.FeatureTable, k int) *Neighbours {
	if k > len(table) {
		k = len(table)
	}
	features := make(model.FeatureTable, len(table))
	copy(features, table)
	return &Neighbours{K: k, Features: features}
}

type neighbour struct {
	label    string
	distance float64
}

// Predict returns the majority label among the K closest rows. Ties go to
// the label with the nearest member.
func (n *Neighbours) Predict(c model.Chroma) string {
	neighbours := make([]neighbour, len(n.Features))
	for i, f := range n.Features {
		neighbours[i] = neighbour{f.Label, floats.Distance(c[:], f.Chroma[:], 2)}
	}
	sort.SliceStable(neighbours, func(i, j int) bool {
		return neighbours[i].distance < neighbours[j].distance
	})

	votes := make(map[string]int)
	nearest := make(map[string]float64)
	for _, nb := range neighbours[:n.K] {
		if _, ok := nearest[nb.label]; !ok {
			nearest[nb.label] = nb.distance
		}
		votes[nb.label]++
	}

	best := ""
	for _, label := range util.GetSortedKeys(votes) {
		switch {
		case best == "":
			best = label
		case votes[label] > votes[best]:
			best = label
		case votes[label] == votes[best] && nearest[label] < nearest[best]:
			best = label
		}
	}
	return best
}
