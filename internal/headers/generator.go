package headers

import (
	http "github.com/bogdanfinn/fhttp"
)

var headerOrder = []string{
	"Accept",
	"Accept-Language",
	"Accept-Encoding",
	"User-Agent",
	"Content-Type",
	"Authorization",
	"Connection",
	"Cache-Control",
}

// BuildHeaders returns the header set for the product API request. The
// user agent identifies the watcher and discloses its polling rate, so it is
// fixed rather than rotated.
func BuildHeaders(userAgent string) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("User-Agent", userAgent)
	h.Set("Cache-Control", "no-cache")

	h[http.HeaderOrderKey] = headerOrder

	return h
}

// BuildFormHeaders returns the header set for a form-encoded POST.
func BuildFormHeaders(userAgent string) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("User-Agent", userAgent)
	h.Set("Content-Type", "application/x-www-form-urlencoded")

	h[http.HeaderOrderKey] = headerOrder

	return h
}
