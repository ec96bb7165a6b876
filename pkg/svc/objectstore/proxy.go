package objectstore

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
)

// ErrInvalidProxy is returned when a proxy environment variable does not hold a valid URL.
var ErrInvalidProxy = errors.New("invalid proxy url")

// proxyEnvVars lists the variables consulted for a proxy, in priority order.
//
//nolint:gochecknoglobals // fixed lookup order
var proxyEnvVars = []string{"http_proxy", "HTTP_PROXY", "https_proxy", "HTTPS_PROXY"}

// ProxyFromEnv returns the proxy all store traffic must go through, or nil when none of the
// proxy variables is set. Unlike http.ProxyFromEnvironment the proxy intercepts every request,
// including HTTPS ones when only http_proxy is set, and NO_PROXY is not consulted.
func ProxyFromEnv(getenv func(string) string) (*url.URL, string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	for _, name := range proxyEnvVars {
		raw := getenv(name)
		if raw == "" {
			continue
		}

		proxyURL, err := url.Parse(raw)
		if err != nil || proxyURL.Host == "" {
			return nil, name, fmt.Errorf("%w in %s: %q", ErrInvalidProxy, name, raw)
		}

		return proxyURL, name, nil
	}

	return nil, "", nil
}

// newProxyHTTPClient builds an SDK HTTP client routing every request through proxyURL.
func newProxyHTTPClient(proxyURL *url.URL) *awshttp.BuildableClient {
	return awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		tr.Proxy = http.ProxyURL(proxyURL)
	})
}
