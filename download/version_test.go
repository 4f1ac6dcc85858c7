package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func versionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/memfit/latest/yakit-version.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestVersionFetcherTrimsToken(t *testing.T) {
	server := versionServer(t, http.StatusOK, "  1.2.3-456\n")
	fetcher := NewVersionFetcher(server.URL, HTTPRequester{Client: server.Client()}, nil)

	if got := fetcher.Latest(context.Background()); got != "1.2.3-456" {
		t.Errorf("Latest = %q, want %q", got, "1.2.3-456")
	}
}

func TestVersionFetcherFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "oops"},
		{name: "not found", status: http.StatusNotFound, body: ""},
		{name: "empty body", status: http.StatusOK, body: " \n"},
		{name: "path in token", status: http.StatusOK, body: "../1.2.3"},
		{name: "space in token", status: http.StatusOK, body: "1.2.3 beta"},
		{name: "oversized body", status: http.StatusOK, body: strings.Repeat("9", maxVersionSize+1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := versionServer(t, tc.status, tc.body)
			fetcher := NewVersionFetcher(server.URL, HTTPRequester{Client: server.Client()}, nil)

			if got := fetcher.Latest(context.Background()); got != FallbackVersion {
				t.Errorf("Latest = %q, want %q", got, FallbackVersion)
			}
		})
	}
}

func TestVersionFetcherNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	fetcher := NewVersionFetcher(url, nil, nil)
	if _, err := fetcher.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch against a closed server succeeded")
	}
	if got := fetcher.Latest(context.Background()); got != "1.0.0-1212" {
		t.Errorf("Latest = %q, want %q", got, "1.0.0-1212")
	}
}

func TestVersionFetcherRequestsVersionFile(t *testing.T) {
	mr := &mockRequester{}
	mr.handleRequest(
		func(url string) (io.ReadCloser, error) {
			equals(t, "http://updates.yourdomain.com/memfit/latest/yakit-version.txt", url)
			return newTestReaderCloser("2.0.0\n"), nil
		})
	mr.handleRequest(
		func(url string) (io.ReadCloser, error) {
			return nil, errors.New("connection reset")
		})
	fetcher := NewVersionFetcher(testBaseURL, mr, nil)

	equals(t, "2.0.0", fetcher.Latest(context.Background()))
	// Each call fetches again; the second request fails.
	equals(t, FallbackVersion, fetcher.Latest(context.Background()))
	equals(t, 2, mr.currentIndex)
}

func TestVersionFetcherCustomFallback(t *testing.T) {
	mr := &mockRequester{}
	mr.handleRequest(
		func(url string) (io.ReadCloser, error) {
			return nil, nil
		})
	fetcher := NewVersionFetcher(testBaseURL, mr, nil).WithFallback("0.9.0")

	equals(t, "0.9.0", fetcher.Latest(context.Background()))
	equals(t, FallbackVersion, NewVersionFetcher(testBaseURL, mr, nil).WithFallback("").Fallback())
}

func TestValidateVersion(t *testing.T) {
	valid := []string{"1.0.0-1212", "2.0.0", "v1.2.3+build.5"}
	for _, v := range valid {
		if err := ValidateVersion(v); err != nil {
			t.Errorf("ValidateVersion(%q) = %v", v, err)
		}
	}

	if err := ValidateVersion(""); !errors.Is(err, ErrEmptyVersion) {
		t.Errorf("ValidateVersion(\"\") = %v, want ErrEmptyVersion", err)
	}
	for _, v := range []string{"1.0/2", `1\2`, "1.0\t1", "..", "1.0\x00"} {
		if err := ValidateVersion(v); !errors.Is(err, ErrMalformedVersion) {
			t.Errorf("ValidateVersion(%q) = %v, want ErrMalformedVersion", v, err)
		}
	}
}
