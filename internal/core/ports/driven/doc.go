// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Transport: Performs one HTTP request described by a domain.Request
//   - ToolingAPI: One call per Tooling API resource, returning raw bodies
//   - Archive: Text persistence for raw responses, symbol tables and documents
//   - ConfigStore: Application configuration
//   - TokenProvider: Supplies the bearer token
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Batch history. Without it, runs are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
