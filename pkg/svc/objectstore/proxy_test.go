package objectstore_test

import (
	"context"
	"testing"

	"github.com/devantler-tech/s3edit/pkg/svc/objectstore"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestProxyFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		env          map[string]string
		expectedHost string
		expectedVar  string
	}{
		{"none_set", map[string]string{}, "", ""},
		{"http_proxy", map[string]string{"http_proxy": "http://proxy.local:3128"}, "proxy.local:3128", "http_proxy"},
		{"https_proxy_only", map[string]string{"https_proxy": "http://secure.local:8080"}, "secure.local:8080", "https_proxy"},
		{
			"http_wins_over_https",
			map[string]string{"https_proxy": "http://b:2", "http_proxy": "http://a:1"},
			"a:1",
			"http_proxy",
		},
		{"uppercase", map[string]string{"HTTPS_PROXY": "http://upper:9"}, "upper:9", "HTTPS_PROXY"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			proxyURL, name, err := objectstore.ProxyFromEnv(envMap(testCase.env))
			require.NoError(t, err)
			require.Equal(t, testCase.expectedVar, name)

			if testCase.expectedHost == "" {
				require.Nil(t, proxyURL)

				return
			}

			require.NotNil(t, proxyURL)
			require.Equal(t, testCase.expectedHost, proxyURL.Host)
		})
	}
}

func TestProxyFromEnv_Invalid(t *testing.T) {
	t.Parallel()

	_, name, err := objectstore.ProxyFromEnv(envMap(map[string]string{"http_proxy": "not a url"}))
	require.ErrorIs(t, err, objectstore.ErrInvalidProxy)
	require.Equal(t, "http_proxy", name)
}

//nolint:paralleltest // mutates process environment
func TestLoadAWSConfig_Overrides(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent/credentials")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	cfg, err := objectstore.LoadAWSConfig(context.Background(), objectstore.Options{
		Region:          "eu-west-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		Getenv:          envMap(map[string]string{"http_proxy": "http://proxy.local:3128"}),
	})
	require.NoError(t, err)
	require.Equal(t, "eu-west-1", cfg.Region)
	require.Equal(t, 1, cfg.RetryMaxAttempts)
	require.NotNil(t, cfg.HTTPClient)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
}

func TestLoadAWSConfig_InvalidProxy(t *testing.T) {
	t.Parallel()

	_, err := objectstore.LoadAWSConfig(context.Background(), objectstore.Options{
		Getenv: envMap(map[string]string{"HTTPS_PROXY": "::bad"}),
	})
	require.ErrorIs(t, err, objectstore.ErrInvalidProxy)
}

func TestNewStore_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, err := objectstore.NewStore(context.Background(), objectstore.Scheme("ftp"), objectstore.Options{})
	require.ErrorIs(t, err, objectstore.ErrUnsupportedScheme)
}

func TestDefaultFactory_Create(t *testing.T) {
	t.Parallel()

	var factory objectstore.Factory = objectstore.DefaultFactory{}

	_, err := factory.Create(context.Background(), objectstore.Scheme("ftp"), objectstore.Options{})
	require.ErrorIs(t, err, objectstore.ErrUnsupportedScheme)

	store, err := factory.Create(context.Background(), objectstore.SchemeS3, objectstore.Options{
		Region:          "us-east-1",
		AccessKeyID:     "AKID",
		SecretAccessKey: "secret",
		Gunzip:          true,
		Getenv:          envMap(nil),
	})
	require.NoError(t, err)
	require.IsType(t, &objectstore.GzipStore{}, store)
}
