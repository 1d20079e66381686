package platforms

import (
	"errors"
	"regexp"
)

var ErrUnknownPlatform = errors.New("unknown streaming platform")

// StreamingPlatform describes one supported platform. Descriptors are
// defined once at process start and never mutated.
type StreamingPlatform struct {
	Name        string
	DisplayName string

	LiveURL         func(username string) string
	ProfileURL      func(username string) string
	UsernameFromURL func(url string) string
}

var (
	tiktokUserRe = regexp.MustCompile(`tiktok\.com/@([^/?#]+)`)
	twitchUserRe = regexp.MustCompile(`twitch\.tv/([^/?#]+)`)
)

var supported = []StreamingPlatform{
	{
		Name:        "tiktok",
		DisplayName: "TikTok",
		LiveURL: func(username string) string {
			return "https://www.tiktok.com/@" + username + "/live"
		},
		ProfileURL: func(username string) string {
			return "https://www.tiktok.com/@" + username
		},
		UsernameFromURL: func(url string) string {
			if m := tiktokUserRe.FindStringSubmatch(url); m != nil {
				return m[1]
			}
			return ""
		},
	},
	{
		Name:        "twitch",
		DisplayName: "Twitch",
		LiveURL: func(username string) string {
			return "https://www.twitch.tv/" + username
		},
		ProfileURL: func(username string) string {
			return "https://www.twitch.tv/" + username
		},
		UsernameFromURL: func(url string) string {
			if m := twitchUserRe.FindStringSubmatch(url); m != nil {
				return m[1]
			}
			return ""
		},
	},
}

var byName = func() map[string]StreamingPlatform {
	m := make(map[string]StreamingPlatform, len(supported))
	for _, p := range supported {
		m[p.Name] = p
	}
	return m
}()

// Resolve looks a platform up by its stable lowercase key. Lookup is exact
// and case-sensitive.
func Resolve(name string) (StreamingPlatform, error) {
	p, ok := byName[name]
	if !ok {
		return StreamingPlatform{}, ErrUnknownPlatform
	}
	return p, nil
}

// All returns the supported platforms in registry order.
func All() []StreamingPlatform {
	out := make([]StreamingPlatform, len(supported))
	copy(out, supported)
	return out
}
