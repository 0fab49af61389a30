// Package seedrand provides a small deterministic pseudo-random source keyed
// by a string seed. The seed is hashed with 32-bit FNV-1a and each draw is a
// mulberry32 step, so a given seed string yields the same sequence on every
// platform and run.
package seedrand
