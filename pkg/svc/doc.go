// Package svc provides the service layer of s3edit.
//
// Subpackages:
//   - objectstore: S3 and GCS clients behind a single Store interface
//   - diff: external diff tool detection and execution
//   - session: the download, edit, confirm and upload state machine
package svc
