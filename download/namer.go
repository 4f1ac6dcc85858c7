package download

import "strings"

// DefaultBaseURL is the artifact host serving releases and the version file.
const DefaultBaseURL = "https://oss-qn.yaklang.com"

// FallbackRoute is the in-site listing of every catalog entry. Callers
// send visitors there whenever no artifact could be named.
const FallbackRoute = "/downloads"

// Unresolved is the URL returned when no artifact can be named. It is never
// a valid link and callers must route to FallbackRoute instead.
const Unresolved = ""

// VersionURL is the location of the plain-text latest version token.
func VersionURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/memfit/latest/yakit-version.txt"
}

// ItemURL returns the download URL of item for version, following the host
// layout {base}/memfit/{version}/MemfitAI-{version}-{platform}-{arch}.{ext}.
func ItemURL(baseURL, version string, item Item) string {
	if version == "" {
		return Unresolved
	}
	return strings.TrimSuffix(baseURL, "/") + "/memfit/" + version + "/" + item.FileName(version)
}

// ArtifactURL names the primary installer for a detected platform and
// architecture. It returns Unresolved for an empty version, an unknown
// platform, or a pair that has no build.
func ArtifactURL(baseURL, version string, p Platform, a Arch) string {
	if version == "" || p == Unknown {
		return Unresolved
	}
	item, ok := Lookup(string(p), a)
	if !ok {
		return Unresolved
	}
	return ItemURL(baseURL, version, item)
}

// PatchURL is where a binary patch turning the from installer into the to
// installer of item is published.
func PatchURL(diffURL, from, to string, item Item) string {
	return strings.TrimSuffix(diffURL, "/") + "/memfit/patch/" + from + "/" + to + "/" + item.FileName(to)
}
