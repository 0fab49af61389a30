// Package mock builds the deterministic dataset behind the dashboard:
// machines with synthesized trends, work orders, comment threads and jobs.
//
// Every generator is a function of its seed key and the Generator's clock
// and catalog. Calling one twice with the same inputs returns equal values,
// which is what lets callers cache results by seed key.
package mock
