package classify

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/skyseries/lcgo/pkg/errors"
)

// TrainTestSplit shuffles (X, y) and splits it into train and test subsets.
// trainFrac of 1 keeps everything in train and returns empty test sets,
// which skips held-out evaluation downstream.
func TrainTestSplit(X *mat.Dense, y []int, trainFrac float64, seed int64) (*mat.Dense, *mat.Dense, []int, []int, error) {
	n, _ := X.Dims()
	if len(y) != n {
		return nil, nil, nil, nil, errors.NewDimensionError("classify.TrainTestSplit", n, len(y), 0)
	}
	if trainFrac <= 0 || trainFrac > 1 {
		return nil, nil, nil, nil, errors.NewConfigurationErrorf("classify.TrainTestSplit",
			"train fraction %g outside (0, 1]", trainFrac)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	nTrain := n
	if trainFrac < 1 {
		nTrain = int(float64(n) * trainFrac)
	}

	trainX, trainY := subset(X, y, indices[:nTrain])
	if nTrain == n {
		return trainX, nil, trainY, nil, nil
	}
	testX, testY := subset(X, y, indices[nTrain:])
	return trainX, testX, trainY, testY, nil
}
