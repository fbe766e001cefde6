package controllers

import "regexp"

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// colorRegex matches a #rgb or #rrggbb hex color.
var colorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

const maxTitleLen = 255

func validColor(s *string) bool {
	return s == nil || colorRegex.MatchString(*s)
}
