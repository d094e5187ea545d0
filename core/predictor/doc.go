// Package predictor orchestrates forecast requests: it resolves the model
// artifact, builds the feature vector, runs the per-family strategy and
// assembles the response with its companion series.
package predictor
