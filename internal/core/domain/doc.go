// Package domain defines the core entities for apexspec.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Authorization: the session a Tooling API call is made with
//   - ApexRecord: an ApexClass or ApexTrigger row with its source body
//   - SymbolTable: compiled structural metadata for one Apex member
//   - DocEntry: one ApexDoc comment recovered from source text
//   - BatchRun: one container/compile cycle recorded in the run ledger
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
