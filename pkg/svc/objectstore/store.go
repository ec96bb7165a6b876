package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/smithy-go/logging"
)

// chunkSize bounds the memory used while streaming an object body to disk.
const chunkSize = 32 * 1024

// ErrLocalIO wraps failures writing fetched bytes to, or reading uploads from, local files.
var ErrLocalIO = errors.New("local file error")

// Store fetches and replaces whole objects.
type Store interface {
	// FetchToFile streams the object body into dst chunk by chunk.
	FetchToFile(ctx context.Context, loc Location, dst io.Writer) error
	// UploadFromFile reads the file at path into memory and writes it with a single put,
	// overwriting the object unconditionally.
	UploadFromFile(ctx context.Context, loc Location, path string) error
}

// Options configures store construction. Zero values defer to the SDK's discovery chain.
type Options struct {
	// Region overrides the region resolved from the environment or shared config.
	Region string
	// Profile selects a shared config profile.
	Profile string
	// EndpointURL points the S3 client at an S3-compatible service.
	EndpointURL string
	// PathStyle forces path-style addressing, required by most S3-compatible services.
	PathStyle bool
	// AccessKeyID and SecretAccessKey configure static credentials when both are set.
	AccessKeyID     string
	SecretAccessKey string
	// Gunzip wraps the store in a [GzipStore].
	Gunzip bool
	// Logger receives SDK debug logs when Debug is set.
	Logger logging.Logger
	Debug  bool
	// Getenv looks up proxy variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewStore constructs the store backend for scheme. Credentials are resolved but no request
// is made: connectivity errors surface on the first real call.
//
//nolint:ireturn // callers select the backend by scheme
func NewStore(ctx context.Context, scheme Scheme, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)

	switch scheme {
	case SchemeS3:
		store, err = NewS3Store(ctx, opts)
	case SchemeGCS:
		store, err = NewGCSStore(ctx, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}

	if err != nil {
		return nil, err
	}

	if opts.Gunzip {
		store = NewGzipStore(store)
	}

	return store, nil
}

// FetchToTempFile allocates a fresh file in the platform temporary directory and streams the
// object into it. The returned file is positioned at its end; the caller owns it and must
// close and remove it. On failure the file is removed.
func FetchToTempFile(ctx context.Context, store Store, loc Location) (*os.File, error) {
	file, err := os.CreateTemp("", "s3edit-*"+TempFileExt(store, loc))
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %w", ErrLocalIO, err)
	}

	err = store.FetchToFile(ctx, loc, file)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())

		return nil, err
	}

	return file, nil
}

// TempFileExt returns the extension local copies of loc should carry so editors can pick
// syntax highlighting. A ".gz" suffix is dropped when the store decompresses.
func TempFileExt(store Store, loc Location) string {
	key := loc.Key
	if _, ok := store.(*GzipStore); ok {
		key = strings.TrimSuffix(key, gzipExt)
	}

	return path.Ext(key)
}

// copyChunks writes body to dst one chunk at a time. Read failures are remote failures,
// write failures are local ones, so they are reported separately.
func copyChunks(dst io.Writer, body io.Reader) (int64, error) {
	buf := make([]byte, chunkSize)

	var written int64

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			wn, writeErr := dst.Write(buf[:n])
			written += int64(wn)

			if writeErr != nil {
				return written, fmt.Errorf("%w: %w", ErrLocalIO, writeErr)
			}
		}

		if errors.Is(readErr, io.EOF) {
			return written, nil
		}

		if readErr != nil {
			return written, readErr
		}
	}
}

// readUpload loads the whole upload into memory.
func readUpload(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the session's own working copy
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrLocalIO, path, err)
	}

	return data, nil
}
