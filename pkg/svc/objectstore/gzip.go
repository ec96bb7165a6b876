package objectstore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
)

const gzipExt = ".gz"

// ErrNotGzip is returned when a ".gz" object does not hold a valid gzip stream.
var ErrNotGzip = errors.New("object is not gzip-compressed")

// GzipStore decompresses ".gz" objects on fetch and recompresses them on upload, so the user
// edits plain content. Other keys pass through unchanged. Recompression is not byte-identical
// to the original stream, so uploading content equal to what was last fetched is skipped and
// the remote object keeps its original bytes.
type GzipStore struct {
	inner Store

	mu      sync.Mutex
	fetched map[string][]byte
}

var _ Store = (*GzipStore)(nil)

// NewGzipStore wraps inner.
func NewGzipStore(inner Store) *GzipStore {
	return &GzipStore{inner: inner, fetched: map[string][]byte{}}
}

func isGzipKey(key string) bool {
	return strings.HasSuffix(key, gzipExt)
}

// FetchToFile streams the compressed body through a gzip reader into dst.
func (s *GzipStore) FetchToFile(ctx context.Context, loc Location, dst io.Writer) error {
	if !isGzipKey(loc.Key) {
		return s.inner.FetchToFile(ctx, loc, dst)
	}

	pipeReader, pipeWriter := io.Pipe()
	fetchErr := make(chan error, 1)

	go func() {
		err := s.inner.FetchToFile(ctx, loc, pipeWriter)
		_ = pipeWriter.CloseWithError(err)
		fetchErr <- err
	}()

	digest := sha256.New()

	err := decompressInto(io.MultiWriter(dst, digest), pipeReader)
	// Unblock the fetch goroutine if decompression stopped early.
	_ = pipeReader.CloseWithError(err)

	innerErr := <-fetchErr

	var storeErr *StoreError
	if errors.As(innerErr, &storeErr) {
		return innerErr
	}

	if err != nil {
		return fmt.Errorf("get %s: %w", loc, err)
	}

	if innerErr == nil {
		s.remember(loc, digest.Sum(nil))
	}

	return innerErr
}

func (s *GzipStore) remember(loc Location, digest []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetched[loc.String()] = digest
}

// unchanged reports whether data matches the content last fetched from loc.
func (s *GzipStore) unchanged(loc Location, data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	digest, ok := s.fetched[loc.String()]
	if !ok {
		return false
	}

	sum := sha256.Sum256(data)

	return bytes.Equal(digest, sum[:])
}

func decompressInto(dst io.Writer, compressed io.Reader) error {
	reader, err := gzip.NewReader(compressed)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotGzip, err)
	}

	defer func() { _ = reader.Close() }()

	_, err = copyChunks(dst, reader)
	if err != nil && !errors.Is(err, ErrLocalIO) {
		return fmt.Errorf("%w: %w", ErrNotGzip, err)
	}

	return err
}

// UploadFromFile compresses the file at path into a sibling temp file and uploads that.
// Content identical to the last fetch of loc is not uploaded.
func (s *GzipStore) UploadFromFile(ctx context.Context, loc Location, path string) error {
	if !isGzipKey(loc.Key) {
		return s.inner.UploadFromFile(ctx, loc, path)
	}

	data, err := readUpload(path)
	if err != nil {
		return err
	}

	if s.unchanged(loc, data) {
		return nil
	}

	compressedPath, err := compressData(path, data)
	if err != nil {
		return err
	}

	defer func() { _ = os.Remove(compressedPath) }()

	return s.inner.UploadFromFile(ctx, loc, compressedPath)
}

func compressData(path string, data []byte) (string, error) {
	out, err := os.CreateTemp("", "s3edit-*"+gzipExt)
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %w", ErrLocalIO, err)
	}

	writer := gzip.NewWriter(out)

	_, err = writer.Write(data)
	if err == nil {
		err = writer.Close()
	}

	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(out.Name())

		return "", fmt.Errorf("%w: compress %s: %w", ErrLocalIO, path, err)
	}

	return out.Name(), nil
}

// Close closes the wrapped store when it holds resources.
func (s *GzipStore) Close() error {
	if closer, ok := s.inner.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}
