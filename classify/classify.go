package classify

import (
	"math"
	"math/rand"

	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/util"
	"github.com/pkg/errors"
)

type Algo string

const (
	RandomForest Algo = "forest"
	KNN          Algo = "knn"
)

type Options struct {
	Algo   Algo
	Forest ForestOptions

	// neighbours that vote, knn only
	K int
}

func DefaultOptions() Options {
	return Options{
		Algo:   RandomForest,
		Forest: DefaultForestOptions(),
		K:      5,
	}
}

// Model is a trained chord classifier. Exactly one of Forest and Neighbours
// is set, matching Algo.
type Model struct {
	Algo       Algo
	Forest     *Forest
	Neighbours *Neighbours
}

func Train(table model.FeatureTable, opts Options) (*Model, error) {
	if len(table) == 0 {
		return nil, errors.New("no training data")
	}

	switch opts.Algo {
	case RandomForest:
		if opts.Forest.Trees < 1 {
			return nil, errors.Errorf("trees must be positive, got %d", opts.Forest.Trees)
		}
		return &Model{Algo: RandomForest, Forest: trainForest(table, opts.Forest)}, nil
	case KNN:
		if opts.K < 1 {
			return nil, errors.Errorf("k must be positive, got %d", opts.K)
		}
		return &Model{Algo: KNN, Neighbours: trainNeighbours(table, opts.K)}, nil
	}
	return nil, errors.Errorf("unknown algorithm %q", opts.Algo)
}

func (m *Model) Predict(c model.Chroma) string {
	if m.Algo == KNN {
		return m.Neighbours.Predict(c)
	}
	return m.Forest.Predict(c)
}

// Score is the fraction of rows predicted correctly.
func (m *Model) Score(table model.FeatureTable) float64 {
	if len(table) == 0 {
		return 0
	}
	correct := 0
	for _, f := range table {
		if m.Predict(f.Chroma) == f.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(table))
}

// Split shuffles the table and holds out ceil(testSize * n) rows for testing.
func Split(table model.FeatureTable, testSize float64, rng *rand.Rand) (train, test model.FeatureTable, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.Errorf("test size must be within (0, 1), got %v", testSize)
	}
	n := int(math.Ceil(testSize * float64(len(table))))
	if n >= len(table) {
		return nil, nil, errors.Errorf("%d rows is too few to split", len(table))
	}

	for i, idx := range rng.Perm(len(table)) {
		if i < n {
			test = append(test, table[idx])
		} else {
			train = append(train, table[idx])
		}
	}
	return train, test, nil
}

func (m *Model) Save(path string) error {
	return util.CreateBinary(path, *m)
}

func Load(path string) (*Model, error) {
	m, err := util.ReadBinary[Model](path)
	if err != nil {
		return nil, err
	}

	trained := false
	switch m.Algo {
	case RandomForest:
		trained = m.Forest != nil && len(m.Forest.Trees) > 0
	case KNN:
		trained = m.Neighbours != nil && m.Neighbours.K > 0 && len(m.Neighbours.Features) > 0
	}
	if !trained {
		return nil, errors.Errorf("%v is not a trained model", path)
	}
	return &m, nil
}
