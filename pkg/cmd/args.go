package cmd

import (
	"fmt"
	"net/url"
	"strings"
)

// ArgumentError reports a bound value that could not be converted. Message is
// meant for the invoking user.
type ArgumentError struct {
	Name    string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %s: %s", e.Name, e.Message)
}

// String returns the string bound to name, or "" when it is unset or not a string.
func (inv *Invocation) String(name string) string {
	s, _ := inv.Args.String(name)
	return s
}

// Bool returns the boolean bound to name.
func (inv *Invocation) Bool(name string) bool {
	b, _ := inv.Args.Bool(name)
	return b
}

// URL converts the value bound to name into an absolute URL. Angle brackets,
// which chat clients use to suppress link previews, are ignored.
func (inv *Invocation) URL(name string) (*url.URL, error) {
	raw := strings.NewReplacer("<", "", ">", "").Replace(inv.String(name))
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, &ArgumentError{Name: name, Message: "Unknown URL."}
	}
	return u, nil
}

// OneOf returns the choice matching the value bound to name, ignoring case.
func (inv *Invocation) OneOf(name string, choices ...string) (string, error) {
	v := inv.String(name)
	for _, c := range choices {
		if strings.EqualFold(c, v) {
			return c, nil
		}
	}
	return "", &ArgumentError{
		Name:    name,
		Message: fmt.Sprintf("Expected one of: %s.", strings.Join(choices, ", ")),
	}
}
