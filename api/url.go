package api

import (
	"errors"
	"net/url"
	"sort"
	"strings"
)

// BuildURL assembles an absolute URL. Query values are percent-encoded and
// emitted in key order so equal inputs always produce the same URL.
func BuildURL(scheme, host, path string, query map[string]string) (*url.URL, error) {
	if scheme == "" || host == "" {
		return nil, newError(InvalidURL, errors.New("scheme and host are required"))
	}
	if path == "" {
		return nil, newError(InvalidURL, errors.New("path is required"))
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u := &url.URL{Scheme: scheme, Host: host, Path: path}
	if len(query) > 0 {
		keys := make([]string, 0, len(query))
		for k := range query {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(query[k]))
		}
		u.RawQuery = strings.Join(parts, "&")
	}

	// Round-trip through the parser to reject hosts such as "bad host".
	parsed, err := url.Parse(u.String())
	if err != nil {
		return nil, newError(InvalidURL, err)
	}
	return parsed, nil
}
