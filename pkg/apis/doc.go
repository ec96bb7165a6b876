// Package apis provides API type definitions for s3edit.
//
//   - edit: the options of an edit session, decoded from flags, environment and config file
package apis
