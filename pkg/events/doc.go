// Package events implements the core event-management workflow: creating
// events with an optional image stored in an S3-compatible object store,
// reading them back, and deleting them together with their stored image.
//
// The creation path couples two systems that cannot share a transaction:
// the blob upload strictly precedes the database insert, and a failed insert
// triggers a best-effort compensating delete of the just-uploaded object.
// A crash between the two steps may leave an orphaned object; that gap is
// accepted rather than papered over with a fake two-phase commit.
package events
