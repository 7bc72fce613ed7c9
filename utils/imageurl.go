package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var imageExtension = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|bmp|webp|svg)(\?.*)?$`)

var imageHosts = []string{
	"googleapis.com",
	"googleusercontent.com",
	"imgur.com",
	"unsplash.com",
	"pexels.com",
	"cloudinary.com",
}

// IsValidImageURL accepts empty URLs, otherwise requires http(s) and either an
// image file extension or a known image hosting domain.
func IsValidImageURL(raw string) bool {
	if raw == "" {
		return true
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	if imageExtension.MatchString(raw) {
		return true
	}
	for _, host := range imageHosts {
		if strings.Contains(u.Hostname(), host) {
			return true
		}
	}
	return false
}

// NormalizePhone strips everything but digits.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
