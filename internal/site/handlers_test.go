package site

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/yaklang/memfit-dl/download"
	"github.com/yaklang/memfit-dl/internal/locale"
)

const (
	macUserAgent     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15) AppleWebKit/537.36"
	windowsUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// setupTestServer starts a fake artifact host answering the version file
// with status and body, and a site server resolving against it.
func setupTestServer(t *testing.T, status int, body string) (*Server, string) {
	t.Helper()

	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(host.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	versions := download.NewVersionFetcher(host.URL, download.HTTPRequester{Client: host.Client()}, logger)
	resolver := download.NewResolver(host.URL, versions, logger)

	return New(logger, resolver, locale.English, ":0"), host.URL
}

func TestHandleDownload(t *testing.T) {
	s, base := setupTestServer(t, http.StatusOK, "2.0.0\n")

	tests := []struct {
		name      string
		path      string
		userAgent string
		platform  string
		want      string
	}{
		{
			name:      "windows",
			path:      "/download",
			userAgent: windowsUserAgent,
			want:      base + "/memfit/2.0.0/MemfitAI-2.0.0-windows-amd64.exe",
		},
		{
			name:      "apple silicon reported as MacIntel",
			path:      "/download?platform=MacIntel&cores=10&touch=5",
			userAgent: macUserAgent,
			want:      base + "/memfit/2.0.0/MemfitAI-2.0.0-darwin-arm64.dmg",
		},
		{
			name:      "intel mac",
			path:      "/download?platform=MacIntel&cores=4",
			userAgent: macUserAgent,
			want:      base + "/memfit/2.0.0/MemfitAI-2.0.0-darwin-x64.dmg",
		},
		{
			name:     "client hint only",
			path:     "/download",
			platform: `"Linux"`,
			want:     base + "/memfit/2.0.0/MemfitAI-2.0.0-linux-amd64.AppImage",
		},
		{
			name: "no browser signals",
			path: "/download",
			want: download.FallbackRoute,
		},
		{
			name:      "unknown platform keeps language",
			path:      "/download?lang=zh-Hans",
			userAgent: "curl/8.4.0",
			want:      download.FallbackRoute + "?lang=zh-Hans",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.Header.Set("User-Agent", tc.userAgent)
			if tc.platform != "" {
				req.Header.Set("Sec-CH-UA-Platform", tc.platform)
			}
			rr := httptest.NewRecorder()

			s.Handler().ServeHTTP(rr, req)

			if rr.Code != http.StatusFound {
				t.Fatalf("Status = %d, want %d", rr.Code, http.StatusFound)
			}
			if got := rr.Header().Get("Location"); got != tc.want {
				t.Errorf("Location = %q, want %q", got, tc.want)
			}
			if rr.Header().Get(RequestIDHeader) == "" {
				t.Error("response has no request id")
			}
		})
	}
}

func TestHandleDownloadVersionFailure(t *testing.T) {
	s, base := setupTestServer(t, http.StatusInternalServerError, "")

	req := httptest.NewRequest(http.MethodGet, "/download", nil)
	req.Header.Set("User-Agent", windowsUserAgent)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	want := base + "/memfit/1.0.0-1212/MemfitAI-1.0.0-1212-windows-amd64.exe"
	if got := rr.Header().Get("Location"); got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
}

func TestHandleAPIDownload(t *testing.T) {
	s, base := setupTestServer(t, http.StatusOK, "2.0.0")

	req := httptest.NewRequest(http.MethodGet, "/api/download?lang=zh-Hans", nil)
	req.Header.Set("User-Agent", windowsUserAgent)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d", rr.Code)
	}

	var resp struct {
		Version  string `json:"version"`
		Platform string `json:"platform"`
		Arch     string `json:"arch"`
		URL      string `json:"url"`
		Href     string `json:"href"`
		Button   string `json:"button"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}

	want := base + "/memfit/2.0.0/MemfitAI-2.0.0-windows-amd64.exe"
	if resp.URL != want || resp.Href != want {
		t.Errorf("url = %q, href = %q, want %q", resp.URL, resp.Href, want)
	}
	if resp.Platform != "windows" || resp.Arch != "amd64" || resp.Version != "2.0.0" {
		t.Errorf("unexpected target %+v", resp)
	}
	if resp.Button != "下载 Windows 版本" {
		t.Errorf("button = %q", resp.Button)
	}
}

func TestHandleAPICatalog(t *testing.T) {
	s, base := setupTestServer(t, http.StatusOK, "2.0.0")

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	var resp catalogResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Version != "2.0.0" || resp.Fallback {
		t.Errorf("version = %q, fallback = %v", resp.Version, resp.Fallback)
	}
	if len(resp.Items) != len(download.Catalog) {
		t.Fatalf("%d items, want %d", len(resp.Items), len(download.Catalog))
	}
	last := resp.Items[len(resp.Items)-1]
	if last.Key != "windows-legacy-amd64" || !last.Legacy {
		t.Errorf("last item = %+v", last)
	}
	if want := base + "/memfit/2.0.0/MemfitAI-2.0.0-windows-legacy-amd64.exe"; last.URL != want {
		t.Errorf("last item url = %q, want %q", last.URL, want)
	}
}

func TestHandleDownloads(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		acceptLanguage string
		wantBody       []string
		wantLanguage   string
	}{
		{
			name:         "english",
			status:       http.StatusOK,
			wantBody:     []string{"Download Memfit AI", "Current version", "2.0.0", "MemfitAI-2.0.0-linux-legacy-arm64.AppImage"},
			wantLanguage: "en",
		},
		{
			name:           "chinese from accept-language",
			status:         http.StatusOK,
			acceptLanguage: "zh-CN,zh;q=0.9",
			wantBody:       []string{"下载 Memfit AI", "当前版本", `lang="zh-CN"`},
			wantLanguage:   "zh-Hans",
		},
		{
			name:         "version failure",
			status:       http.StatusBadGateway,
			wantBody:     []string{"Failed to load version information", "1.0.0-1212"},
			wantLanguage: "en",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := setupTestServer(t, tc.status, "2.0.0")

			req := httptest.NewRequest(http.MethodGet, "/downloads", nil)
			req.Header.Set("User-Agent", windowsUserAgent)
			if tc.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tc.acceptLanguage)
			}
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("Status = %d", rr.Code)
			}
			body := rr.Body.String()
			for _, want := range tc.wantBody {
				if !strings.Contains(body, want) {
					t.Errorf("body does not contain %q", want)
				}
			}
			if got := rr.Header().Get("Content-Language"); got != tc.wantLanguage {
				t.Errorf("Content-Language = %q, want %q", got, tc.wantLanguage)
			}
			if !strings.Contains(body, `<tr class="selected">`+"\n<td>Windows (AMD64)</td>") {
				t.Error("detected platform is not selected")
			}
		})
	}
}

func TestHandleUnknownRoute(t *testing.T) {
	s, _ := setupTestServer(t, http.StatusOK, "2.0.0")

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestNavigator(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/download?platform=MacIntel&cores=x&touch=2", nil)
	req.Header.Set("User-Agent", macUserAgent)

	nav := navigator(req)
	if nav == nil {
		t.Fatal("navigator is nil")
	}
	if nav.Platform != "MacIntel" || nav.HardwareConcurrency != 0 || nav.MaxTouchPoints != 2 {
		t.Errorf("navigator = %+v", nav)
	}

	if nav := navigator(httptest.NewRequest(http.MethodGet, "/download", nil)); nav != nil {
		t.Errorf("navigator without signals = %+v, want nil", nav)
	}
}
