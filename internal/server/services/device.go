package services

import (
	"strings"

	"github.com/mssola/useragent"
)

// DeviceLabel renders a User-Agent as "Browser on OS", e.g. "Chrome on Windows 10".
func DeviceLabel(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	os := ua.OS()

	switch {
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	case os != "":
		return os
	}
	return "Unknown Device"
}
