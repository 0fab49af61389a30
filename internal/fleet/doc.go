// Package fleet holds the named machine fixture sets the dashboard can
// show, along with the canonical factory and scatter fleets.
package fleet
