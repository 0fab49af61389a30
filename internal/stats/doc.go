// Package stats derives chart annotations from a machine set: averages,
// quartile fences and outliers, reliability scores, centroids and axis
// domains.
//
// Aggregates over empty input never fail. Means yield 0 and callers check
// the input length to tell "no data" apart; centroids and best/worst picks
// report absence with a boolean.
package stats
