package cmd

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/keshon/abyss/pkg/unixargs"
)

// SplitLine strips prefix from content and splits off the command name. The
// remainder is returned untouched as the raw argument string.
func SplitLine(content, prefix string) (name, raw string, ok bool) {
	if len(content) < len(prefix) || !strings.EqualFold(content[:len(prefix)], prefix) {
		return "", "", false
	}
	content = strings.TrimLeftFunc(content[len(prefix):], unicode.IsSpace)
	if content == "" {
		return "", "", false
	}

	end := strings.IndexFunc(content, unicode.IsSpace)
	if end < 0 {
		return content, "", true
	}
	_, size := utf8.DecodeRuneInString(content[end:])
	return content[:end], content[end+size:], true
}

// Bind parses raw against the parameters c declares.
func Bind(c Command, raw string) (unixargs.Bindings, error) {
	return unixargs.Parse(raw, Parameters(c))
}
