// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PageSource: Streams raw HTML pages from a corpus
//   - LexiconStore: Lexicon persistence
//   - ConfigStore: Application configuration
//
// # Crawler Interfaces
//
// Only needed when the built-in crawler is used:
//
//   - FrontierStore: URL frontier persistence
//   - SimhashStore: Near-duplicate fingerprint persistence
//   - CrawlRunStore: Crawl run bookkeeping
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
