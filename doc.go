// Package localhub provides the neighborhood hub API server.

// This package contains the module root. The implementation is
// organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/models: Data models and database schemas
// - internal/auth: Registration, login, and token validation
// - internal/geo: Coordinate parsing, distance math, and geocoding
// - internal/repository: Proximity feed queries
// - internal/database: Database connection and migrations
// - internal/cache: Redis caching
// - internal/news: Upstream headline proxy
// - internal/middleware: HTTP middleware (request IDs, rate limiting, metrics)
// - internal/seed: Fake data generation for local development

// See the individual package documentation for detailed reference.
package localhub
