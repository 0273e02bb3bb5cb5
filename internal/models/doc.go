// Package models defines domain entities and persistence interfaces for the ccx copyright check client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Structs mirroring the checker service's JSON payloads
//   - [Track] : One checked track with its [License] verdict and [Copyright] lines
//   - [Playlist] : Basic playlist metadata from the my-playlists endpoint
//   - [TrackDetails] : Full per-track metadata ([DetailTrack], [Album], optional [AudioFeatures])
//   - [CheckReport] : One completed query's result set, used for export and cache writes
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [PersistedVerdict] : Locally cached verdict for one checked track
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
