// Package repository holds the per-report lookup tables the object-graph
// validators consult across files of a dataset.
//
// CommonData maps scheduled stop points to quays and flexible stop places and
// records service link endpoints. StopPlaces maps quays to their stop place and
// keeps the stop place attributes used for transport mode checks.
//
// Both repositories key all state by report id. State is populated by Collect,
// released by CleanUp, and any query for a report id without state fails with a
// fatal netexerrors.Error.
package repository
