package classify

import (
	"math"
	"math/rand"
	"sort"

	"github.com/jsphweid/chordgen/model"
	"gonum.org/v1/gonum/floats"
)

// Node is a split when Left is >= 0 and a leaf otherwise. Leaves keep the
// class shares of the rows that reached them.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Probs     []float64
}

type Tree struct {
	Nodes []Node
}

func (t *Tree) probs(x []float64) []float64 {
	i := 0
	for t.Nodes[i].Left >= 0 {
		if x[t.Nodes[i].Feature] <= t.Nodes[i].Threshold {
			i = t.Nodes[i].Left
		} else {
			i = t.Nodes[i].Right
		}
	}
	return t.Nodes[i].Probs
}

// Forest is a bagged set of gini trees. Every tree is grown on a bootstrap
// sample and looks at sqrt(features) random features per split. Predictions
// average the leaf shares of all trees.
type Forest struct {
	Labels []string
	Trees  []Tree
}

type ForestOptions struct {
	Trees int

	// 0 grows until leaves are pure
	MaxDepth int
	MinLeaf  int

	Seed int64
}

func DefaultForestOptions() ForestOptions {
	return ForestOptions{Trees: 100, MinLeaf: 1, Seed: 44}
}

type grower struct {
	x           [][]float64
	y           []int
	classes     int
	maxFeatures int
	opts        ForestOptions
	rng         *rand.Rand
	tree        *Tree
}

func trainForest(table model.FeatureTable, opts ForestOptions) *Forest {
	labelSet := make(map[string]int)
	for _, f := range table {
		labelSet[f.Label] = 0
	}
	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for i, l := range labels {
		labelSet[l] = i
	}

	x := make([][]float64, len(table))
	y := make([]int, len(table))
	for i, f := range table {
		row := f.Chroma
		x[i] = row[:]
		y[i] = labelSet[f.Label]
	}

	if opts.MinLeaf < 1 {
		opts.MinLeaf = 1
	}
	g := &grower{
		x:           x,
		y:           y,
		classes:     len(labels),
		maxFeatures: int(math.Max(1, math.Floor(math.Sqrt(model.ChromaBins)))),
		opts:        opts,
		rng:         rand.New(rand.NewSource(opts.Seed)),
	}

	forest := &Forest{Labels: labels}
	for t := 0; t < opts.Trees; t++ {
		sample := make([]int, len(x))
		for i := range sample {
			sample[i] = g.rng.Intn(len(x))
		}
		g.tree = &Tree{}
		g.grow(sample, 0)
		forest.Trees = append(forest.Trees, *g.tree)
	}
	return forest
}

func (g *grower) counts(rows []int) []float64 {
	res := make([]float64, g.classes)
	for _, r := range rows {
		res[g.y[r]]++
	}
	return res
}

func gini(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	res := 1.0
	for _, c := range counts {
		res -= (c / n) * (c / n)
	}
	return res
}

func (g *grower) grow(rows []int, depth int) int {
	counts := g.counts(rows)
	idx := len(g.tree.Nodes)
	probs := make([]float64, len(counts))
	floats.ScaleTo(probs, 1/float64(len(rows)), counts)
	g.tree.Nodes = append(g.tree.Nodes, Node{Left: -1, Right: -1, Probs: probs})

	if floats.Max(counts) == float64(len(rows)) ||
		len(rows) < 2*g.opts.MinLeaf ||
		(g.opts.MaxDepth > 0 && depth >= g.opts.MaxDepth) {
		return idx
	}

	feature, threshold, ok := g.bestSplit(rows)
	if !ok {
		return idx
	}
	var left, right []int
	for _, r := range rows {
		if g.x[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	l := g.grow(left, depth+1)
	r := g.grow(right, depth+1)
	node := &g.tree.Nodes[idx]
	node.Feature, node.Threshold, node.Left, node.Right = feature, threshold, l, r
	node.Probs = nil
	return idx
}

// bestSplit tries random features until maxFeatures of them have been looked
// at and one gave a valid split, then returns the lowest weighted gini.
func (g *grower) bestSplit(rows []int) (int, float64, bool) {
	bestFeature, bestThreshold, bestScore := -1, 0.0, math.Inf(1)
	sorted := make([]int, len(rows))
	n := float64(len(rows))

	for tried, feature := range g.rng.Perm(len(g.x[0])) {
		if tried >= g.maxFeatures && bestFeature >= 0 {
			break
		}

		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return g.x[sorted[i]][feature] < g.x[sorted[j]][feature]
		})

		left := make([]float64, g.classes)
		right := g.counts(sorted)
		for i := 0; i < len(sorted)-1; i++ {
			c := g.y[sorted[i]]
			left[c]++
			right[c]--

			lo, hi := g.x[sorted[i]][feature], g.x[sorted[i+1]][feature]
			nl := float64(i + 1)
			if lo == hi || i+1 < g.opts.MinLeaf || len(sorted)-i-1 < g.opts.MinLeaf {
				continue
			}
			score := nl*gini(left, nl) + (n-nl)*gini(right, n-nl)
			if score < bestScore {
				bestFeature, bestThreshold, bestScore = feature, (lo+hi)/2, score
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

// Predict averages the leaf shares of every tree. Ties go to the label that
// sorts first.
func (f *Forest) Predict(c model.Chroma) string {
	total := make([]float64, len(f.Labels))
	for i := range f.Trees {
		floats.Add(total, f.Trees[i].probs(c[:]))
	}
	return f.Labels[floats.MaxIdx(total)]
}
