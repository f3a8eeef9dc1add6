package video

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type EmbedType int

const (
	EmbedTypeNone EmbedType = iota
	EmbedTypeYouTube
	EmbedTypeTwitch
	EmbedTypeVideo
	EmbedTypeIframe
)

// EmbedInfo says how the table stream of a tournament is shown next to
// its bracket.
type EmbedInfo struct {
	Type EmbedType
	URL  string
}

// GetEmbedInfo turns a stream link into an embeddable URL. parent is the
// host serving the page, which Twitch requires on its player URL.
func GetEmbedInfo(link *string, parent string) EmbedInfo {
	if link == nil || strings.TrimSpace(*link) == "" {
		return EmbedInfo{Type: EmbedTypeNone}
	}

	l := strings.TrimSpace(*link)
	u, err := parseLink(l)
	if err != nil {
		return EmbedInfo{Type: EmbedTypeNone}
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.Trim(u.Path, "/")

	switch host {
	case "youtube.com", "m.youtube.com":
		if strings.HasPrefix(path, "embed/") {
			return EmbedInfo{Type: EmbedTypeYouTube, URL: l}
		}
		if id := u.Query().Get("v"); id != "" {
			return youtube(id)
		}
		// Live streams are shared as youtube.com/live/<id>
		if id, ok := strings.CutPrefix(path, "live/"); ok && id != "" {
			return youtube(id)
		}
	case "youtu.be":
		if path != "" {
			return youtube(path)
		}
	case "twitch.tv", "m.twitch.tv":
		if channel, _, _ := strings.Cut(path, "/"); channel != "" {
			q := url.Values{"channel": {channel}, "parent": {parentHost(parent)}}
			return EmbedInfo{Type: EmbedTypeTwitch, URL: "https://player.twitch.tv/?" + q.Encode()}
		}
	}

	lower := strings.ToLower(path)
	for _, ext := range []string{".mp4", ".webm", ".ogg", ".mov", ".m3u8"} {
		if strings.HasSuffix(lower, ext) {
			return EmbedInfo{Type: EmbedTypeVideo, URL: l}
		}
	}

	// Default to generic iframe and hope for the best
	return EmbedInfo{Type: EmbedTypeIframe, URL: l}
}

// ErrInvalidLink is returned for stream links that are not absolute
// http(s) URLs.
var ErrInvalidLink = errors.New("stream link must be an http or https URL")

// ValidateLink reports whether link can be stored as a stream link.
func ValidateLink(link string) error {
	_, err := parseLink(strings.TrimSpace(link))
	return err
}

func parseLink(l string) (*url.URL, error) {
	u, err := url.Parse(l)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, ErrInvalidLink
	}
	return u, nil
}

func youtube(id string) EmbedInfo {
	return EmbedInfo{Type: EmbedTypeYouTube, URL: "https://www.youtube.com/embed/" + url.PathEscape(id)}
}

func parentHost(parent string) string {
	if h, _, ok := strings.Cut(parent, ":"); ok {
		parent = h
	}
	if parent == "" {
		return "localhost"
	}
	return parent
}
