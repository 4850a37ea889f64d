// Package domain defines the core business entities for LexAI.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CaseResult: A single case summary returned by a search
//   - SearchQuery: Free-text query plus optional filters
//   - SourceKind: Which source satisfies a search (static, scrape, ai)
//   - QuotaState: The daily free-tier usage ledger
//   - PaymentRequest: A premium upgrade payment
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
