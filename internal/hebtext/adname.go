package hebtext

import (
	"regexp"
	"strings"

	"github.com/lodnet/luach/internal/models"
)

// AdTarget is the click-through decoded from an ad image filename.
// URL is empty when the filename encodes no target.
type AdTarget struct {
	URL         string
	Description string
}

var fileExtRegex = regexp.MustCompile(`\.[^.]+$`)

// DecodeAdFilename decodes the filename convention used by the ads image
// folders. A triple underscore separates the URL segment from an optional
// description; within the URL segment `---` decodes to `://` and `__` to
// `/`. A name carrying none of those tokens yields no URL and the ad
// renders without a click-through.
//
//	"https---example.com__page___10%25+off.png" -> https://example.com/page, "10%25+off"
func DecodeAdFilename(filename string) AdTarget {
	base := fileExtRegex.ReplaceAllString(filename, "")

	parts := strings.SplitN(base, "___", 2)
	urlPart := parts[0]
	description := ""
	if len(parts) > 1 {
		description = parts[1]
	}

	if len(parts) == 1 && !strings.Contains(urlPart, "---") && !strings.Contains(urlPart, "__") {
		return AdTarget{}
	}

	url := strings.ReplaceAll(urlPart, "---", "://")
	url = strings.ReplaceAll(url, "__", "/")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	return AdTarget{URL: url, Description: description}
}

// PositionFromFilename classifies an ad image's placement slot by keyword
// match on the filename, defaulting to middle.
func PositionFromFilename(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, "side") || strings.Contains(lower, "צד"):
		return models.PositionSide
	case strings.Contains(lower, "top") || strings.Contains(lower, "עליון"):
		return models.PositionTop
	case strings.Contains(lower, "bottom") || strings.Contains(lower, "תחתון"):
		return models.PositionBottom
	}
	return models.PositionMiddle
}
