package download

// Target is the outcome of resolving a download for one client.
type Target struct {
	Version  string   `json:"version"`
	Platform Platform `json:"platform"`
	Arch     Arch     `json:"arch"`
	// URL is the installer location, or Unresolved.
	URL string `json:"url"`
	// Item is the matched catalog entry; nil when unresolved.
	Item *Item `json:"item,omitempty"`
}

// Resolved reports whether an installer was named.
func (t Target) Resolved() bool {
	return t.URL != Unresolved && t.Item != nil
}

// Href is where a download button should point: the installer when one was
// named, FallbackRoute otherwise.
func (t Target) Href() string {
	if !t.Resolved() {
		return FallbackRoute
	}
	return t.URL
}

// FileName is the installer file name, or "" when unresolved.
func (t Target) FileName() string {
	if !t.Resolved() {
		return ""
	}
	return t.Item.FileName(t.Version)
}
