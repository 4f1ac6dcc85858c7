package site

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/yaklang/memfit-dl/download"
	"github.com/yaklang/memfit-dl/internal/locale"
)

//go:embed templates/*.html
var templates embed.FS

var downloadsPage = template.Must(template.ParseFS(templates, "templates/downloads.html"))

type pageRow struct {
	Name     string
	Key      string
	URL      string
	Selected bool
}

type pageLocale struct {
	Locale  locale.Locale
	Label   string
	Current bool
}

type pageData struct {
	Text     locale.Strings
	Lang     locale.Locale
	Version  string
	Fallback bool
	Rows     []pageRow
	Selected pageRow
	Locales  []pageLocale
}

func (s *Server) handleDownloads(w http.ResponseWriter, r *http.Request) {
	l := s.requestLocale(r)
	version, fallback := s.version(r)

	nav := navigator(r)
	selected := download.DefaultIndex(download.DetectPlatform(nav), download.DetectArch(nav))

	data := pageData{
		Text:     l.Text(),
		Lang:     l,
		Version:  version,
		Fallback: fallback,
	}
	for i, item := range download.Catalog {
		row := pageRow{
			Name:     item.DisplayName(string(l)),
			Key:      item.Key(),
			URL:      download.ItemURL(s.resolver.BaseURL(), version, item),
			Selected: i == selected,
		}
		if row.Selected {
			data.Selected = row
		}
		data.Rows = append(data.Rows, row)
	}
	for _, supported := range locale.Supported {
		data.Locales = append(data.Locales, pageLocale{
			Locale:  supported,
			Label:   supported.Text().Label,
			Current: supported == l,
		})
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("rendering downloads page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", string(l))
	w.Write(buf.Bytes())
}
