// Package domain defines the core business entities for Lexica.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawPage: Opaque HTML bytes from a page source
//   - Lexicon: The deduplicated set of accepted words
//   - CrawlRun: A single crawler invocation and its counters
//   - URLRecord: A frontier entry with its crawl status
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
