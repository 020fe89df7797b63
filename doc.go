// Package keep is a Go client for the notes API: account registration and
// login (including the Google OAuth token exchange), note and label CRUD,
// text search, and the pin, archive and color operations.
//
// Every call takes a context and returns a typed *Error on failure, so
// callers can branch with errors.Is against the exported sentinels
// (ErrValidation, ErrUnauthenticated, ErrNotFound, ErrProviderRejected,
// ErrNetwork, ErrServer) without parsing server messages.
//
// The bearer token obtained by Login, Register or LoginWithGoogle is kept in
// a session store and attached to subsequent requests automatically. The
// default store lives in process memory; pass WithSession with a
// session.FileStorage-backed store to survive restarts.
//
// For a local working set with derived views (pinned, archived, trash) and
// optimistic mutations on top of this client, see pkg/collection.
package keep
