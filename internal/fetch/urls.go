package fetch

import (
	"net/url"
	"strings"
)

const mobileSuffix = ".m.wikipedia.org"

var trackingParams = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "utm_id", "gclid", "fbclid"}

// DesktopURL rewrites a mobile encyclopedia URL to its desktop host. It
// reports false when rawURL is not a mobile URL.
func DesktopURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL, false
	}
	if !toDesktop(u) {
		return rawURL, false
	}
	return u.String(), true
}

// Canonical returns the address a page is fetched and cached under: the
// desktop host in lower case, without fragment or tracking parameters.
func Canonical(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return rawURL
	}
	toDesktop(u)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.RawQuery != "" {
		q := u.Query()
		for _, p := range trackingParams {
			q.Del(p)
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func toDesktop(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	if !strings.HasSuffix(host, mobileSuffix) {
		return false
	}
	desktop := strings.TrimSuffix(host, mobileSuffix) + ".wikipedia.org"
	if port := u.Port(); port != "" {
		desktop += ":" + port
	}
	u.Host = desktop
	return true
}
