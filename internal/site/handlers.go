package site

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/yaklang/memfit-dl/download"
	"github.com/yaklang/memfit-dl/internal/locale"
)

// navigator rebuilds the client environment from a request. The page
// script forwards navigator.platform, hardwareConcurrency and
// maxTouchPoints as query parameters; without them the platform client
// hint is used. A request carrying neither a user agent nor a platform is
// treated as coming from outside a browser.
func navigator(r *http.Request) *download.Navigator {
	q := r.URL.Query()

	platform := q.Get("platform")
	if platform == "" {
		platform = strings.Trim(r.Header.Get("Sec-CH-UA-Platform"), `"`)
	}
	userAgent := r.Header.Get("User-Agent")
	if userAgent == "" && platform == "" {
		return nil
	}

	cores, _ := strconv.Atoi(q.Get("cores"))
	touch, _ := strconv.Atoi(q.Get("touch"))
	return &download.Navigator{
		UserAgent:           userAgent,
		Platform:            platform,
		HardwareConcurrency: cores,
		MaxTouchPoints:      touch,
	}
}

func (s *Server) requestLocale(r *http.Request) locale.Locale {
	if l, ok := locale.Parse(r.URL.Query().Get("lang")); ok {
		return l
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		return locale.FromAcceptLanguage(header)
	}
	return s.locale
}

func (s *Server) resolve(r *http.Request) download.Target {
	return s.resolver.Resolve(r.Context(), download.NewNavigatorPlatformResolver(navigator(r)))
}

// handleDownload redirects to the detected installer. A bare link carries
// no core count or touch points, and browsers on Apple silicon report an
// Intel user agent, so such Macs get the x64 dmg unless the page script
// appends its navigator parameters.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	target := s.resolve(r)

	href := target.Href()
	if !target.Resolved() {
		if l, ok := locale.Parse(r.URL.Query().Get("lang")); ok {
			href += "?lang=" + string(l)
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, href, http.StatusFound)
}

type downloadResponse struct {
	download.Target
	Href   string `json:"href"`
	Button string `json:"button"`
}

func (s *Server) handleAPIDownload(w http.ResponseWriter, r *http.Request) {
	target := s.resolve(r)
	s.writeJSON(w, downloadResponse{
		Target: target,
		Href:   target.Href(),
		Button: s.requestLocale(r).DownloadButton(target.Platform),
	})
}

type catalogEntry struct {
	Key       string        `json:"key"`
	Name      string        `json:"name"`
	Platform  string        `json:"platform"`
	Arch      download.Arch `json:"arch"`
	Extension string        `json:"extension"`
	Legacy    bool          `json:"legacy"`
	URL       string        `json:"url"`
}

type catalogResponse struct {
	Version  string         `json:"version"`
	Fallback bool           `json:"fallback"`
	Items    []catalogEntry `json:"items"`
}

func (s *Server) handleAPICatalog(w http.ResponseWriter, r *http.Request) {
	version, fallback := s.version(r)
	l := s.requestLocale(r)

	resp := catalogResponse{Version: version, Fallback: fallback}
	for _, item := range download.Catalog {
		resp.Items = append(resp.Items, catalogEntry{
			Key:       item.Key(),
			Name:      item.DisplayName(string(l)),
			Platform:  item.Platform,
			Arch:      item.Arch,
			Extension: item.Extension,
			Legacy:    item.Legacy(),
			URL:       download.ItemURL(s.resolver.BaseURL(), version, item),
		})
	}
	s.writeJSON(w, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

// version fetches the latest version for a listing. fallback reports that
// the fetch failed and the fallback version is shown instead.
func (s *Server) version(r *http.Request) (version string, fallback bool) {
	versions := s.resolver.Versions()
	version, err := versions.Fetch(r.Context())
	if err != nil {
		s.logger.Warn("version fetch failed, using fallback",
			"url", versions.URL(),
			"fallback", versions.Fallback(),
			"error", err,
		)
		return versions.Fallback(), true
	}
	return version, false
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}
