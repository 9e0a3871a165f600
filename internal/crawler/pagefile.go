package crawler

import (
	"fmt"
	"hash/fnv"
)

// PageFileName derives the corpus file name for a URL. The name is the
// FNV-64a hash of the URL in hex, so re-fetching a URL overwrites its
// previous snapshot instead of accumulating copies.
func PageFileName(rawURL string) string {
	h := fnv.New64a()
	h.Write([]byte(rawURL))
	return fmt.Sprintf("%016x.html", h.Sum64())
}

// PageID is the file name without its extension, used as the stable
// page identifier in the simhash store.
func PageID(rawURL string) string {
	name := PageFileName(rawURL)
	return name[:len(name)-len(".html")]
}
