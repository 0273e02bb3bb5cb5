// Package session implements the interaction controller for the copyright
// check client: the one place with non-trivial state and ordering concerns.
//
// # State
//
// [Session] is the single mutable record for the page lifetime. It owns the
// active [Mode], the playlist directory and its exclusive selection, the
// current track result set, and the two modal instances (track detail,
// playlist-add). Every mutation is a named transition method, so tests can
// assert pre/post state per transition; nothing here touches the network or
// a render target.
//
// # Query resolution
//
// [Resolve] maps a mode plus raw field values to exactly one [Request]
// descriptor or fails with a validation error before any request is issued.
// Raw values are forwarded verbatim: the my-playlists range pair is sent
// only when both ends are filled, and limits fall back to [DefaultLimit]
// when empty or unusable.
//
// # Ordering
//
// Fetches are never cancelled. Overlapping responses are reconciled with
// monotonically increasing generation counters: BeginQuery/OpenDetail/
// BeginAdd stamp a generation or invocation token, and the matching Apply
// method drops any response whose stamp is stale. This gives "last issued
// wins" semantics rather than "last arrived wins". The playlist-add
// auto-close timer carries its invocation token for the same reason, so a
// timer from a superseded invocation can never close a newer modal.
package session
