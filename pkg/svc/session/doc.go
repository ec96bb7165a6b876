// Package session drives one edit of a remote object: download, edit a working copy,
// confirm, review the diff, confirm again and upload.
//
// A Session is a state machine. Each step performs the work of its current state and
// returns the next state, so any transition can be exercised on its own. Temporary files
// are removed when Run returns, except that the working copy survives a failed upload.
package session
