// Package v1alpha1 defines the options of an s3edit session as loaded from flags,
// environment variables and the optional config file.
package v1alpha1

// Options configures one edit session. Field tags name the config file and
// environment keys (S3EDIT_<KEY>).
type Options struct {
	// URL is the object to edit, e.g. s3://bucket/key.
	URL string `json:"url,omitempty" mapstructure:"url"`
	// Editor is the editor command, optionally with arguments ("code --wait").
	Editor string `json:"editor,omitempty" mapstructure:"editor"`
	// Region overrides the store region.
	Region string `json:"region,omitempty" mapstructure:"region"`
	// Profile selects a shared AWS config profile.
	Profile string `json:"profile,omitempty" mapstructure:"profile"`
	// EndpointURL targets an S3-compatible service.
	EndpointURL string `json:"endpointUrl,omitempty" mapstructure:"endpoint_url"`
	// PathStyle forces path-style bucket addressing.
	PathStyle bool `json:"pathStyle,omitempty" mapstructure:"path_style"`
	// AccessKeyID and SecretAccessKey configure static credentials.
	AccessKeyID     string `json:"accessKeyId,omitempty"     mapstructure:"access_key_id"`
	SecretAccessKey string `json:"secretAccessKey,omitempty" mapstructure:"secret_access_key"`
	// NestedKeys accepts keys containing "/" by splitting the URL on the first "/" only.
	NestedKeys bool `json:"nestedKeys,omitempty" mapstructure:"nested_keys"`
	// Gunzip edits ".gz" objects as plain text.
	Gunzip bool `json:"gunzip,omitempty" mapstructure:"gunzip"`
	// ValidateContent checks JSON and YAML objects still parse before committing.
	ValidateContent bool `json:"validate" mapstructure:"validate"`
	// DiffTool selects how changes are shown before the commit prompt.
	DiffTool DiffTool `json:"diffTool,omitempty" mapstructure:"diff_tool"`
	// KeepTemp keeps both temporary files after the session.
	KeepTemp bool `json:"keepTemp,omitempty" mapstructure:"keep_temp"`
	// LogLevel is a logrus level name.
	LogLevel string `json:"logLevel,omitempty" mapstructure:"log_level"`
}

// NewOptions returns options populated with defaults.
func NewOptions() *Options {
	return &Options{
		ValidateContent: DefaultValidate,
		DiffTool:        DefaultDiffTool,
		LogLevel:        DefaultLogLevel,
	}
}
