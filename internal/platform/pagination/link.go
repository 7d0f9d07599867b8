package pagination

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildLinkHeader constructs an RFC 8288 Link header, preserving existing query params.
// A "first" link is emitted when the current request is not the first page.
func BuildLinkHeader(baseURL string, query url.Values, nextCursor string) string {
	var links []string
	if nextCursor != "" {
		q := cloneValues(query)
		q.Set("cursor", nextCursor)
		links = append(links, fmt.Sprintf("<%s?%s>; rel=\"next\"", baseURL, q.Encode()))
	}
	if query.Get("cursor") != "" {
		q := cloneValues(query)
		q.Del("cursor")
		link := baseURL
		if enc := q.Encode(); enc != "" {
			link += "?" + enc
		}
		links = append(links, fmt.Sprintf("<%s>; rel=\"first\"", link))
	}
	return strings.Join(links, ", ")
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
