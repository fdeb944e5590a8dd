package client

import (
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// Doer is the request primitive shared by the stock checker and the notifier.
// *ProxiedClient satisfies it; tests substitute an in-memory fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ProxiedClient struct {
	tls_client.HttpClient
	ProxyURL string
}

// CreateClient builds a TLS client with a browser profile and its own cookie
// jar. Redirects are not followed so a moved endpoint surfaces as a 3xx.
func CreateClient(timeout time.Duration, proxyURL string) (*ProxiedClient, error) {
	jar := tls_client.NewCookieJar()
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(timeout / time.Second)),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
		tls_client.WithCookieJar(jar),
	}
	if proxyURL != "" {
		options = append(options, tls_client.WithProxyUrl(proxyURL))
	}

	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, err
	}

	return &ProxiedClient{HttpClient: client, ProxyURL: proxyURL}, nil
}

var _ Doer = (*ProxiedClient)(nil)
