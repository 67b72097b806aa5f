package models

import (
	"net/url"
	"strings"
)

// AvatarURL derives a deterministic avatar image reference from an author
// name, used whenever a message is posted without one.
func AvatarURL(author string) string {
	// %20 rather than + so the seed matches what browsers produce with
	// encodeURIComponent.
	seed := strings.ReplaceAll(url.QueryEscape(author), "+", "%20")
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed + "&backgroundColor=b6e3f4"
}
