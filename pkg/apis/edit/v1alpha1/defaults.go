package v1alpha1

const (
	// DefaultEditor is used when neither flag, config nor environment name an editor.
	DefaultEditor = "vi"
	// DefaultDiffTool picks git, then diff, whichever is installed.
	DefaultDiffTool = DiffToolAuto
	// DefaultLogLevel keeps SDK and session logs quiet unless asked for.
	DefaultLogLevel = "warn"
	// DefaultValidate enables content validation for known formats.
	DefaultValidate = true
)
