package testing

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so views can be matched as plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// ContainsInOrder reports whether output contains each of expected, in order.
func ContainsInOrder(output string, expected ...string) bool {
	for _, exp := range expected {
		i := strings.Index(output, exp)
		if i < 0 {
			return false
		}
		output = output[i+len(exp):]
	}
	return true
}
