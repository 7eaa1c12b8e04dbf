// Package fetchutil resolves a resource string that names either an HTTP(S)
// URL, a base64 data URL, or a local filesystem path, into raw bytes. The
// CLI tools use it for their optional --source override, so a fixture file
// or an inline data URL can stand in for a live ECB endpoint in tests and
// offline runs.
package fetchutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Fetch returns resource's bytes, dispatching on its URL scheme. An empty
// scheme is treated as a filesystem path.
func Fetch(resource string) ([]byte, error) {
	u, err := url.Parse(resource)
	if err != nil {
		return nil, fmt.Errorf("fetchutil: parsing %q: %w", resource, err)
	}

	switch u.Scheme {
	case "http", "https":
		return download(resource)
	case "data":
		return decodeDataURL(u.Opaque)
	case "":
		return os.ReadFile(resource)
	default:
		return nil, fmt.Errorf("fetchutil: unsupported URL scheme %q", u.Scheme)
	}
}

func download(uri string) ([]byte, error) {
	resp, err := http.Get(uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var b bytes.Buffer
	_, err = io.Copy(&b, resp.Body)
	return b.Bytes(), err
}

// decodeDataURL handles the common case of a base64-encoded data URL;
// anything more exotic is rejected.
func decodeDataURL(opaque string) ([]byte, error) {
	idx := strings.IndexByte(opaque, ',')
	if idx < 0 {
		return nil, fmt.Errorf("fetchutil: invalid data URL")
	}

	spec := opaque[:idx]
	payload, err := url.PathUnescape(opaque[idx+1:])
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(spec, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	return []byte(payload), nil
}
