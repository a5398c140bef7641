package customHttpClient

import (
	"net/http"

	"github.com/cerebroai/docapi/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// PooledClient reuses connections across embedding provider calls to avoid
// per-request handshake latency.
func PooledClient() *http.Client {
	return &http.Client{Transport: customTransport}
}
