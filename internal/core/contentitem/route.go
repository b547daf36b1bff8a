// Copyright (c) 2026 Raytha. All rights reserved.

package contentitem

import (
	"fmt"
	"strings"
	"time"

	"github.com/RaythaHQ/raytha-sub000/pkg/slug"
)

// Route template placeholders, matched case-insensitively.
const (
	PlaceholderContentTypeDeveloperName = "{ContentTypeDeveloperName}"
	PlaceholderPrimaryField             = "{PrimaryField}"
	PlaceholderID                       = "{Id}"
	PlaceholderCurrentYear              = "{CurrentYear}"
	PlaceholderCurrentMonth             = "{CurrentMonth}"
	PlaceholderCurrentDay               = "{CurrentDay}"
)

// RouteContext carries the substitution values for route expansion.
type RouteContext struct {
	ContentTypeDeveloperName string
	PrimaryFieldValue        string
	ItemID                   string
	Now                      time.Time
}

/*
ExpandRoute turns a content type's route template into a concrete path.

Description: Placeholders are substituted case-insensitively; the primary
field value is slugified so arbitrary titles produce URL-safe paths. The
result is normalized: no leading or trailing slash, no empty segments.
Uniqueness is NOT checked here; the caller decides what a collision means.

Parameters:
  - template: string (e.g. "{ContentTypeDeveloperName}/{PrimaryField}")
  - rc: RouteContext

Returns:
  - string: The normalized route path
*/
func ExpandRoute(template string, rc RouteContext) string {
	replacements := map[string]string{
		strings.ToLower(PlaceholderContentTypeDeveloperName): rc.ContentTypeDeveloperName,
		strings.ToLower(PlaceholderPrimaryField):             slug.From(rc.PrimaryFieldValue),
		strings.ToLower(PlaceholderID):                       rc.ItemID,
		strings.ToLower(PlaceholderCurrentYear):              fmt.Sprintf("%d", rc.Now.Year()),
		strings.ToLower(PlaceholderCurrentMonth):             fmt.Sprintf("%02d", int(rc.Now.Month())),
		strings.ToLower(PlaceholderCurrentDay):               fmt.Sprintf("%02d", rc.Now.Day()),
	}

	var builder strings.Builder
	remaining := template

	for len(remaining) > 0 {
		open := strings.IndexByte(remaining, '{')
		if open < 0 {
			builder.WriteString(remaining)
			break
		}
		closing := strings.IndexByte(remaining[open:], '}')
		if closing < 0 {
			builder.WriteString(remaining)
			break
		}

		builder.WriteString(remaining[:open])
		token := remaining[open : open+closing+1]

		if value, known := replacements[strings.ToLower(token)]; known {
			builder.WriteString(value)
		} else {
			// Unknown placeholders pass through untouched.
			builder.WriteString(token)
		}

		remaining = remaining[open+closing+1:]
	}

	return NormalizeRoutePath(builder.String())
}

// NormalizeRoutePath trims surrounding slashes and collapses empty segments.
func NormalizeRoutePath(path string) string {
	segments := strings.Split(path, "/")
	cleaned := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment != "" {
			cleaned = append(cleaned, segment)
		}
	}
	return strings.Join(cleaned, "/")
}
