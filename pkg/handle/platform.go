package handle

import (
	"fmt"
	"slices"
	"strings"
)

// Platform describes how handles are flavored for one social network.
type Platform struct {
	// Key is the stable lowercase identifier used in URLs and CLI flags.
	Key string `json:"key" yaml:"key"`
	// Name is the display name. It also takes part in seeding, so renaming a
	// platform changes its suggestions.
	Name     string   `json:"name" yaml:"name"`
	Prefixes []string `json:"prefixes" yaml:"prefixes"`
	Suffixes []string `json:"suffixes" yaml:"suffixes"`
	Tip      string   `json:"tip" yaml:"tip"`

	profile string
}

// ProfileURL returns the public profile address for a handle on this
// platform. A leading "@" is ignored.
func (p Platform) ProfileURL(handle string) string {
	return fmt.Sprintf(p.profile, strings.TrimPrefix(handle, DisplayPrefix))
}

func (p Platform) clone() Platform {
	p.Prefixes = slices.Clone(p.Prefixes)
	p.Suffixes = slices.Clone(p.Suffixes)
	return p
}

// catalog is read-only. Prefixes start with the empty option.
var catalog = [...]Platform{
	{
		Key:      "instagram",
		Name:     "Instagram",
		Prefixes: []string{"", "its", "hello", "meet"},
		Suffixes: []string{"gram", "daily", "studio", "journal", "pixels"},
		Tip:      "Short and visual handles are easier to tag in captions and stories.",
		profile:  "https://www.instagram.com/%s",
	},
	{
		Key:      "tiktok",
		Name:     "TikTok",
		Prefixes: []string{"", "hey", "go", "watch"},
		Suffixes: []string{"tok", "loops", "clips", "beats", "motion"},
		Tip:      "Pick something that sounds good when a creator says it out loud.",
		profile:  "https://www.tiktok.com/@%s",
	},
	{
		Key:      "x",
		Name:     "X (Twitter)",
		Prefixes: []string{"", "real", "the", "its"},
		Suffixes: []string{"hq", "updates", "live", "now", "feed"},
		Tip:      "Shorter handles leave more room in replies and quote posts.",
		profile:  "https://x.com/%s",
	},
	{
		Key:      "youtube",
		Name:     "YouTube",
		Prefixes: []string{"", "watch", "team", "channel"},
		Suffixes: []string{"tv", "studio", "lab", "vision", "vault"},
		Tip:      "Your handle doubles as the channel URL, so keep it brandable.",
		profile:  "https://www.youtube.com/@%s",
	},
	{
		Key:      "threads",
		Name:     "Threads",
		Prefixes: []string{"", "join", "hello", "with"},
		Suffixes: []string{"threads", "loop", "lane", "space", "waves"},
		Tip:      "Threads follows your Instagram identity, so stay consistent across both.",
		profile:  "https://www.threads.net/@%s",
	},
}

// Platforms returns a copy of the catalog in its fixed order.
func Platforms() []Platform {
	out := make([]Platform, len(catalog))
	for i, p := range catalog {
		out[i] = p.clone()
	}
	return out
}

// PlatformKeys lists the catalog keys in order.
func PlatformKeys() []string {
	keys := make([]string, len(catalog))
	for i, p := range catalog {
		keys[i] = p.Key
	}
	return keys
}

// LookupPlatform finds a platform by key, case-insensitively.
func LookupPlatform(key string) (Platform, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, p := range catalog {
		if p.Key == key {
			return p.clone(), true
		}
	}
	return Platform{}, false
}
