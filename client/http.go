package client

import (
	"net/http"
	"sync"

	"github.com/safeops/payloadeye/config"
)

type httpClient struct {
	client *http.Client
}

var hc httpClient
var httpOnce sync.Once

func (hc *httpClient) initHTTPClient() {
	hc.client = &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost: config.Conf.HTTPServer.ClientMaxConns,
		},
	}
}

// HTTPClient is the shared client for explorer, address book and bribe market
// API calls.
func HTTPClient() *http.Client {
	httpOnce.Do(func() {
		hc.initHTTPClient()
	})
	return hc.client
}
