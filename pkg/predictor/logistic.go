package predictor

import "math"

// Logistic is a tiny per-user binary classifier over the context feature
// vector. Weights line up with FeatureNames.
type Logistic struct {
	Weights []float64
	Bias    float64
}

// Fit trains by batch gradient descent. Features arrive as raw counts
// (seconds, interactions), so callers keep the learning rate small.
func Fit(features [][]float64, labels []bool, epochs int, rate float64) Logistic {
	if len(features) == 0 || len(features[0]) == 0 {
		return Logistic{}
	}
	dim := len(features[0])
	weights := make([]float64, dim)
	bias := 0.0
	n := float64(len(features))

	for epoch := 0; epoch < epochs; epoch++ {
		grad := make([]float64, dim)
		gradBias := 0.0
		for i, row := range features {
			target := 0.0
			if labels[i] {
				target = 1.0
			}
			diff := sigmoid(dot(weights, row)+bias) - target
			for j, v := range row {
				grad[j] += diff * v
			}
			gradBias += diff
		}
		for j := range weights {
			weights[j] -= rate * grad[j] / n
		}
		bias -= rate * gradBias / n
	}
	return Logistic{Weights: weights, Bias: bias}
}

// Predict returns the probability that the user would accept an
// adjustment in the given context.
func (m Logistic) Predict(features []float64) float64 {
	if len(m.Weights) != len(features) {
		return 0
	}
	return sigmoid(dot(m.Weights, features) + m.Bias)
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
