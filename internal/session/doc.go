// Package session holds the dataset one dashboard instance works from.
// Everything is generated once against a single captured clock; comment
// threads are generated lazily by seed key and cached in a store.Store for
// the life of the session.
package session
