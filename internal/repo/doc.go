// Package repo resolves repository and registry coordinates for archive
// snapshot builds.
//
// An archive snapshot is addressed by a branch (distribution release), a
// calendar date, and an architecture. The package maps logical architecture
// names to the identifiers the package tools use, renders the two-line apt
// source list and the apt configuration consumed by the bootstrapper, and
// derives the registry references for per-architecture images and the
// multi-architecture manifest that aggregates them.
//
// Everything here is a pure mapping. The architecture table is fixed at
// compile time; an architecture outside the table is a configuration error
// reported before any external tool runs.
//
// Example usage:
//
//	date, err := repo.ParseDate("2024-01-15")
//	if err != nil {
//	    return err
//	}
//
//	list, err := repo.SourceList("amd64", "p10", date)
//	if err != nil {
//	    return err
//	}
//
//	coords := repo.Coordinates{
//	    Registry:     "registry.altlinux.org",
//	    Organization: "alt",
//	    Name:         "archive",
//	}
//	manifest := coords.Manifest("p10", date)
package repo
