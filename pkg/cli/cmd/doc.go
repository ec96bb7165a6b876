// Package cmd provides the command-line interface for s3edit.
//
// s3edit is a single root command: it resolves configuration from flags, S3EDIT_ environment
// variables and an optional YAML file, builds the object store for the URL scheme and runs
// one edit session against it.
package cmd
