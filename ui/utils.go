package ui

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
)

// lastUpdatedLayouts are the timestamp shapes the data API is known to send
var lastUpdatedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// displayLocation is the zone timestamps are shown in. Values without an
// offset are read as already being in it.
var displayLocation = time.Local

// formatUpdated renders an ISO-8601 timestamp for display in local time.
// Values that do not parse are shown as given.
func formatUpdated(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range lastUpdatedLayouts {
		if t, err := time.ParseInLocation(layout, raw, displayLocation); err == nil {
			return t.In(displayLocation).Format("Jan 2, 2006 3:04 PM")
		}
	}
	return raw
}

// isHTMX reports whether the request came from htmx
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// renderMarkdown turns a description line into HTML. Descriptions are
// compiled into the page registry, never user input.
func renderMarkdown(md string) template.HTML {
	return template.HTML(markdown.ToHTML([]byte(md), nil, nil))
}
