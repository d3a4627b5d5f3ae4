package recipes

import "regexp"

var youtubeRE = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// NormalizeVideoURL rewrites recognizable YouTube links (watch, shortened or
// embed form) to the canonical embed URL. Anything else is stored as given.
func NormalizeVideoURL(url string) string {
	if url == "" {
		return url
	}
	if m := youtubeRE.FindStringSubmatch(url); m != nil {
		return "https://www.youtube.com/embed/" + m[1]
	}
	return url
}
