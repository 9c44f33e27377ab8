package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every request of an [HTTPClient].
const UserAgent = "go-user-keeper-client"

// HTTPClient embeds *resty.Client so adapters can use its whole API.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with its own connection pool
// and the [UserAgent] header preset.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New().SetHeader("User-Agent", UserAgent)}
}
