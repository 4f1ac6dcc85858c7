// Package locale holds the translated strings of the download surfaces.
//
// A Locale is chosen once per request and passed to whatever renders text;
// nothing here keeps a current locale.
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/yaklang/memfit-dl/download"
)

// Locale identifies a supported site language.
type Locale string

const (
	English           Locale = "en"
	SimplifiedChinese Locale = "zh-Hans"
)

// Default is used when a request names no supported language.
const Default = English

// Supported lists the site languages in menu order.
var Supported = []Locale{English, SimplifiedChinese}

// Strings is the text shown on the download surfaces for one locale.
type Strings struct {
	Title           string
	CurrentVersion  string
	Platform        string
	Architecture    string
	Download        string
	DownloadMore    string
	Loading         string
	Error           string
	DownloadMac     string
	DownloadLinux   string
	DownloadWindows string
	Label           string
	HTMLLang        string
}

var tables = map[Locale]Strings{
	English: {
		Title:           "Download Memfit AI",
		CurrentVersion:  "Current version",
		Platform:        "Platform",
		Architecture:    "Architecture",
		Download:        "Download",
		DownloadMore:    "Download more versions",
		Loading:         "Loading version information...",
		Error:           "Failed to load version information",
		DownloadMac:     "macOS version",
		DownloadLinux:   "Linux version",
		DownloadWindows: "Windows version",
		Label:           "English",
		HTMLLang:        "en-US",
	},
	SimplifiedChinese: {
		Title:           "下载 Memfit AI",
		CurrentVersion:  "当前版本",
		Platform:        "平台",
		Architecture:    "架构",
		Download:        "下载",
		DownloadMore:    "下载更多版本",
		Loading:         "正在加载版本信息...",
		Error:           "加载版本信息失败",
		DownloadMac:     "下载 macOS 版本",
		DownloadLinux:   "下载 Linux 版本",
		DownloadWindows: "下载 Windows 版本",
		Label:           "简体中文",
		HTMLLang:        "zh-CN",
	},
}

// matcher negotiates against the site languages. Traditional Chinese is
// listed so that any Chinese tag lands on the Chinese site.
var (
	matcher = language.NewMatcher([]language.Tag{
		language.English,
		language.SimplifiedChinese,
		language.TraditionalChinese,
	})
	matched = []Locale{English, SimplifiedChinese, SimplifiedChinese}
)

func match(tags ...language.Tag) (Locale, bool) {
	_, index, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return matched[index], true
}

// Parse maps a BCP 47 language tag onto a supported locale. Any Chinese tag
// maps to Simplified Chinese. ok is false when the tag is not supported.
func Parse(tag string) (l Locale, ok bool) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", false
	}
	return match(t)
}

// FromAcceptLanguage picks the supported locale preferred by an
// Accept-Language header, or Default. Languages weighted q=0 are not
// acceptable and are ignored.
func FromAcceptLanguage(header string) Locale {
	tags, weights, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return Default
	}

	acceptable := tags[:0]
	for i, t := range tags {
		if weights[i] > 0 {
			acceptable = append(acceptable, t)
		}
	}
	if len(acceptable) == 0 {
		return Default
	}

	if l, ok := match(acceptable...); ok {
		return l
	}
	return Default
}

// Text returns the strings for l, falling back to English.
func (l Locale) Text() Strings {
	if s, ok := tables[l]; ok {
		return s
	}
	return tables[English]
}

// DownloadButton is the header button label for a detected platform.
// Undetected platforms get the macOS label, as on the landing page.
func (l Locale) DownloadButton(p download.Platform) string {
	t := l.Text()
	switch p {
	case download.Linux:
		return t.DownloadLinux
	case download.Windows:
		return t.DownloadWindows
	}
	return t.DownloadMac
}
