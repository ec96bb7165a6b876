package session

import "strconv"

// State is a point in the edit lifecycle.
type State int

const (
	// StateInit checks the editor and downloads the object.
	StateInit State = iota
	// StateDownloaded copies the download to the working copy.
	StateDownloaded
	// StateCopyMade announces how changes will be reviewed.
	StateCopyMade
	// StateEditing runs the editor on the working copy.
	StateEditing
	// StateAwaitingEditConfirm asks whether editing is finished.
	StateAwaitingEditConfirm
	// StateValidating checks the working copy still parses.
	StateValidating
	// StateDiffShown prints the diff between download and working copy.
	StateDiffShown
	// StateAwaitingCommitConfirm asks whether to upload.
	StateAwaitingCommitConfirm
	// StateUploading writes the working copy back to the remote location.
	StateUploading
	// StateDone is terminal after a successful upload.
	StateDone
	// StateError is terminal after any failure or cancellation.
	StateError
)

//nolint:gochecknoglobals // name table
var stateNames = map[State]string{
	StateInit:                  "Init",
	StateDownloaded:            "Downloaded",
	StateCopyMade:              "CopyMade",
	StateEditing:               "Editing",
	StateAwaitingEditConfirm:   "AwaitingEditConfirm",
	StateValidating:            "Validating",
	StateDiffShown:             "DiffShown",
	StateAwaitingCommitConfirm: "AwaitingCommitConfirm",
	StateUploading:             "Uploading",
	StateDone:                  "Done",
	StateError:                 "Error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Terminal reports whether no further step can run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateError
}
