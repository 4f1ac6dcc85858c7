package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklang/memfit-dl/download"
	"github.com/yaklang/memfit-dl/internal/locale"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	detectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

func runList(args []string, stdout, stderr io.Writer) error {
	var common commonOptions
	var version, lang string

	flagSet := newFlagSet("list", stderr)
	common.register(flagSet)
	flagSet.StringVar(&version, "version", "", "list this version instead of the latest")
	flagSet.StringVar(&lang, "lang", "", "display names language (en, zh-Hans); defaults to the config")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	env, err := common.load(stderr, isTerminal(stderr))
	if err != nil {
		return err
	}

	l := env.config.Locale()
	if lang != "" {
		parsed, ok := locale.Parse(lang)
		if !ok {
			return fmt.Errorf("--lang %q is not supported", lang)
		}
		l = parsed
	}

	if version == "" {
		version = env.resolver.Versions().Latest(context.Background())
	} else if err := download.ValidateVersion(version); err != nil {
		return fmt.Errorf("--version: %w", err)
	}

	p, a := download.CurrentPlatformResolver{}.Resolve()
	detected := -1
	if _, ok := download.Lookup(string(p), a); ok {
		detected = download.DefaultIndex(p, a)
	}

	writeCatalog(stdout, isTerminal(stdout), l, env.config.BaseURL, version, detected)
	return nil
}

// writeCatalog prints one line per catalog entry. Styling is applied only
// on a terminal so that piped output stays plain text.
func writeCatalog(w io.Writer, styled bool, l locale.Locale, baseURL, version string, detected int) {
	text := l.Text()
	render := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	nameWidth, keyWidth := len(text.Platform), len(text.Architecture)
	for _, item := range download.Catalog {
		nameWidth = max(nameWidth, lipgloss.Width(item.DisplayName(string(l))))
		keyWidth = max(keyWidth, len(item.Key()))
	}
	pad := func(s string, width int) string {
		return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
	}

	fmt.Fprintf(w, "%s: %s\n\n", text.CurrentVersion, version)
	fmt.Fprintf(w, "  %s  %s  %s\n",
		render(headerStyle, pad(text.Platform, nameWidth)),
		render(headerStyle, pad(text.Architecture, keyWidth)),
		render(headerStyle, text.Download))

	for i, item := range download.Catalog {
		marker, name := " ", pad(item.DisplayName(string(l)), nameWidth)
		if i == detected {
			marker, name = "*", render(detectedStyle, name)
		}
		fmt.Fprintf(w, "%s %s  %s  %s\n",
			marker,
			name,
			render(keyStyle, pad(item.Key(), keyWidth)),
			download.ItemURL(baseURL, version, item))
	}
}
