package util

import (
	"strings"

	"github.com/fatih/color"
)

var colorsOptions = map[string]color.Attribute{
	"red":       color.FgHiRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"cyan":      color.FgCyan,
	"faint":     color.Faint,
	"underline": color.Underline,
	"bold":      color.Bold,
}

// statusColors maps the workflow states of every list to a colour.
var statusColors = map[string][]string{
	"pending":     {"yellow"},
	"in-progress": {"cyan"},
	"approved":    {"green", "bold"},
	"resolved":    {"green"},
	"completed":   {"green"},
	"rejected":    {"red"},
}

func ColorOutput(text string, colorOptions ...string) string {
	attributes := []color.Attribute{}
	for _, option := range colorOptions {
		if o, ok := colorsOptions[option]; ok {
			attributes = append(attributes, o)
		}
	}
	c := color.New(attributes...)
	return c.Sprint(text)
}

// ColorStatus colours a status value; unknown values are printed faint.
func ColorStatus(status string) string {
	options, ok := statusColors[strings.ToLower(strings.TrimSpace(status))]
	if !ok {
		options = []string{"faint"}
	}
	return ColorOutput(status, options...)
}
