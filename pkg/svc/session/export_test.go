package session

// SetState moves s to state so a single step can be exercised.
func SetState(s *Session, state State) { s.state = state }

// SetPaths installs temporary file paths as if Init and Downloaded had run.
func SetPaths(s *Session, original, working string) {
	s.originalPath = original
	s.workingPath = working
}

// WorkingCopyPath exposes workingCopyPath.
func WorkingCopyPath(original string) string { return workingCopyPath(original) }

// FormatBytes exposes formatBytes.
func FormatBytes(n int64) string { return formatBytes(n) }
