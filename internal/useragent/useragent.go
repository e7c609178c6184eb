// Package useragent maps raw User-Agent strings to coarse device metadata
// for the visitor dashboard. It is intentionally small: the dashboard only
// needs the major browser families and device classes, not a full UA
// database.
package useragent

import (
	"regexp"
	"strings"
)

// Device type classes reported by Parse.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
)

// DeviceInfo is the parsed view of a User-Agent string.
type DeviceInfo struct {
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browserVersion"`
	OS             string `json:"os"`
	Device         string `json:"device"`
	DeviceType     string `json:"deviceType"`
}

var (
	reEdge    = regexp.MustCompile(`edg/([\d.]+)`)
	reChrome  = regexp.MustCompile(`chrome/([\d.]+)`)
	reFirefox = regexp.MustCompile(`firefox/([\d.]+)`)
	reSafari  = regexp.MustCompile(`version/([\d.]+)`)
	reOpera   = regexp.MustCompile(`(opera|opr)/([\d.]+)`)
	reMacOS   = regexp.MustCompile(`mac os x ([\d_]+)`)
	reAndroid = regexp.MustCompile(`android ([\d.]+)`)
	reIOS     = regexp.MustCompile(`os ([\d_]+)`)
)

// Parse is a pure function: the same input always yields the same
// DeviceInfo. Unknown agents come back as Unknown/desktop rather than an
// error, tracking never fails on a weird UA.
func Parse(userAgent string) DeviceInfo {
	ua := strings.ToLower(userAgent)

	browser := "Unknown"
	browserVersion := ""

	switch {
	case strings.Contains(ua, "edg/"):
		browser = "Edge"
		browserVersion = firstGroup(reEdge, ua)
	case strings.Contains(ua, "chrome/"):
		// Edge also carries a chrome/ token, hence the ordering above.
		browser = "Chrome"
		browserVersion = firstGroup(reChrome, ua)
	case strings.Contains(ua, "firefox/"):
		browser = "Firefox"
		browserVersion = firstGroup(reFirefox, ua)
	case strings.Contains(ua, "safari/") && !strings.Contains(ua, "chrome"):
		browser = "Safari"
		browserVersion = firstGroup(reSafari, ua)
	case strings.Contains(ua, "opera/") || strings.Contains(ua, "opr/"):
		browser = "Opera"
		if m := reOpera.FindStringSubmatch(ua); len(m) == 3 {
			browserVersion = m[2]
		}
	}

	os := "Unknown"
	switch {
	case strings.Contains(ua, "windows nt 10.0"):
		os = "Windows 10"
	case strings.Contains(ua, "windows nt 6.3"):
		os = "Windows 8.1"
	case strings.Contains(ua, "windows nt 6.2"):
		os = "Windows 8"
	case strings.Contains(ua, "windows nt 6.1"):
		os = "Windows 7"
	case strings.Contains(ua, "mac os x"):
		os = strings.TrimSpace("macOS " + dotted(firstGroup(reMacOS, ua)))
	case strings.Contains(ua, "android"):
		os = strings.TrimSpace("Android " + firstGroup(reAndroid, ua))
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		os = strings.TrimSpace("iOS " + dotted(firstGroup(reIOS, ua)))
	case strings.Contains(ua, "linux"):
		os = "Linux"
	}

	deviceType := DeviceDesktop
	device := "Desktop"

	switch {
	case strings.Contains(ua, "mobile") || strings.Contains(ua, "android"):
		deviceType = DeviceMobile
		switch {
		case strings.Contains(ua, "iphone"):
			device = "iPhone"
		case strings.Contains(ua, "android"):
			device = "Android Phone"
		default:
			device = "Mobile"
		}
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		deviceType = DeviceTablet
		if strings.Contains(ua, "ipad") {
			device = "iPad"
		} else {
			device = "Tablet"
		}
	}

	return DeviceInfo{
		Browser:        browser,
		BrowserVersion: browserVersion,
		OS:             os,
		Device:         device,
		DeviceType:     deviceType,
	}
}

func firstGroup(re *regexp.Regexp, input string) string {
	if m := re.FindStringSubmatch(input); len(m) >= 2 {
		return m[1]
	}
	return ""
}

func dotted(version string) string {
	return strings.ReplaceAll(version, "_", ".")
}
