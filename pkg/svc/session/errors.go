package session

import "errors"

var (
	// ErrEditorNotFound is returned before any download when the editor is not installed.
	ErrEditorNotFound = errors.New("editor not found")
	// ErrCopyFailed is returned when the working copy cannot be created.
	ErrCopyFailed = errors.New("failed to create working copy")
	// ErrSessionFinished is returned when Run is called on a session that already ran.
	ErrSessionFinished = errors.New("session already finished")
)
