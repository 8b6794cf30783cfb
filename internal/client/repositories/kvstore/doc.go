// Package kvstore is the persistent key-value store the session manager
// and the user directory sit on: opaque byte values under string keys,
// surviving process restarts.
//
// Backends:
//   - SQLStore over SQLite (modernc.org/sqlite) or PostgreSQL (pgx), schema
//     managed by goose migrations (see package storage);
//   - RedisStore over go-redis;
//   - S3Store over an S3-compatible bucket;
//   - MemoryStore for tests and ephemeral runs.
//
// # Contract
//
// Get returns (nil, nil) for an absent key. Remove of an absent key is not an
// error. Backend failures are wrapped with the operation and key, e.g.
// "failed to get kv[@auth_user]: ...".
//
// Stores that can do an atomic read-modify-write also implement Updater.
package kvstore
