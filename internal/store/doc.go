// Package store provides SQLite-backed persistence for search history.
//
// Each search session is one row: when it ran, the queried pattern run and
// its length, plus whether the search was cut short by a budget. The
// derivations it produced are child rows ordered by complexity position.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: result rows cannot outlive their session
package store
