package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

//go:generate mockgen -destination=./mocks/requester.go -package=mocks -source=requester.go

// Requester interface allows developers to customize the method in which
// requests are made to retrieve the version file and the installers.
type Requester interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// DefaultTimeout bounds a single request made by the HTTPRequester when no
// client is configured.
const DefaultTimeout = 10 * time.Second

// HTTPRequester is the normal requester that is used and does an HTTP GET
// to the url location requested to retrieve the specified data.
type HTTPRequester struct {
	Client *http.Client
}

// NewHTTPRequester returns a requester whose client gives up after timeout.
// A zero timeout selects DefaultTimeout.
func NewHTTPRequester(timeout time.Duration) HTTPRequester {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return HTTPRequester{Client: &http.Client{Timeout: timeout}}
}

// Fetch will do an HTTP request to the specified url and return the body of
// the result. An error will occur for a non 200 status code.
func (httpRequester HTTPRequester) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	client := httpRequester.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("bad http status from %s: %v", url, resp.Status)
	}

	return resp.Body, nil
}
