// Package objectstore provides access to remote objects addressed by a bucket and a key.
//
// This package includes:
//   - [Parse] and [ParseWithOptions] for turning scheme://bucket/key URLs into a [Location]
//   - [S3Store] backed by aws-sdk-go-v2 for s3:// locations
//   - [GCSStore] backed by cloud.google.com/go/storage for gs:// locations
//   - [GzipStore] for editing gzip-compressed objects as plain text
//
// Downloads are streamed chunk by chunk into a local file. Uploads read the whole local file
// into memory and perform a single put, so usable object size is bounded by available memory.
package objectstore
