// Package editor decides which editor command an edit session launches.
package editor

import (
	"os"
	"strings"

	"github.com/devantler-tech/s3edit/pkg/apis/edit/v1alpha1"
)

// Resolver handles editor configuration resolution with proper precedence.
type Resolver struct {
	flagEditor   string
	configEditor string
	// Getenv reads the shell environment; os.Getenv when nil.
	Getenv func(string) string
}

// NewResolver creates a new editor resolver. cfg may be nil.
func NewResolver(flagEditor string, cfg *v1alpha1.Options) *Resolver {
	configEditor := ""
	if cfg != nil {
		configEditor = cfg.Editor
	}

	return &Resolver{
		flagEditor:   strings.TrimSpace(flagEditor),
		configEditor: strings.TrimSpace(configEditor),
	}
}

// Resolve resolves the editor command based on precedence:
// 1. --editor flag
// 2. editor from the config file or S3EDIT_EDITOR
// 3. VISUAL, then EDITOR
// 4. vi.
func (r *Resolver) Resolve() string {
	if r.flagEditor != "" {
		return r.flagEditor
	}

	if r.configEditor != "" {
		return r.configEditor
	}

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	for _, key := range []string{"VISUAL", "EDITOR"} {
		if editorEnv := strings.TrimSpace(getenv(key)); editorEnv != "" {
			return editorEnv
		}
	}

	return v1alpha1.DefaultEditor
}

// Split separates an editor command such as "code --wait" into its program and arguments.
// Quoting is not interpreted.
func Split(command string) (string, []string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil
	}

	return fields[0], fields[1:]
}
