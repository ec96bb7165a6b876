package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCSStore implements [Store] for gs:// locations.
type GCSStore struct {
	client *storage.Client
}

var _ Store = (*GCSStore)(nil)

// NewGCSStore builds a Cloud Storage client from Application Default Credentials. When a
// proxy variable is set the authenticated transport is layered over a proxying base client.
func NewGCSStore(ctx context.Context, opts Options) (*GCSStore, error) {
	var clientOpts []option.ClientOption

	proxyURL, _, err := ProxyFromEnv(opts.Getenv)
	if err != nil {
		return nil, err
	}

	if proxyURL != nil {
		base := &http.Client{Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)}}
		authCtx := context.WithValue(ctx, oauth2.HTTPClient, base)

		creds, credErr := google.FindDefaultCredentials(authCtx, storage.ScopeReadWrite)
		if credErr != nil {
			return nil, fmt.Errorf("find google credentials: %w", credErr)
		}

		clientOpts = append(clientOpts, option.WithHTTPClient(oauth2.NewClient(authCtx, creds.TokenSource)))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	return NewGCSStoreFromClient(client), nil
}

// NewGCSStoreFromClient wraps an existing client and disables its retries.
func NewGCSStoreFromClient(client *storage.Client) *GCSStore {
	client.SetRetry(storage.WithPolicy(storage.RetryNever))

	return &GCSStore{client: client}
}

// FetchToFile streams the object into dst.
func (s *GCSStore) FetchToFile(ctx context.Context, loc Location, dst io.Writer) error {
	reader, err := s.client.Bucket(loc.Bucket).Object(loc.Key).NewReader(ctx)
	if err != nil {
		return newStoreError("get", loc, classifyGCSError(err), err)
	}

	defer func() { _ = reader.Close() }()

	_, err = copyChunks(dst, reader)
	if err != nil {
		if errors.Is(err, ErrLocalIO) {
			return fmt.Errorf("get %s: %w", loc, err)
		}

		return newStoreError("get", loc, classifyGCSError(err), err)
	}

	return nil
}

// UploadFromFile writes the whole file at path in a single request.
func (s *GCSStore) UploadFromFile(ctx context.Context, loc Location, path string) error {
	data, err := readUpload(path)
	if err != nil {
		return err
	}

	writer := s.client.Bucket(loc.Bucket).Object(loc.Key).NewWriter(ctx)
	// Zero disables resumable chunked uploads.
	writer.ChunkSize = 0

	_, err = writer.Write(data)
	if err != nil {
		_ = writer.Close()

		return newStoreError("put", loc, classifyGCSError(err), err)
	}

	err = writer.Close()
	if err != nil {
		return newStoreError("put", loc, classifyGCSError(err), err)
	}

	return nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

func classifyGCSError(err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return ErrNotFound
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrAccessDenied
		}
	}

	return ErrTransport
}
