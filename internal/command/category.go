package command

import (
	"sort"

	"github.com/keshon/abyss/internal/config"
	"github.com/keshon/abyss/pkg/cmd"
)

// CategoryProvider groups commands in help output.
type CategoryProvider interface {
	Category() string
}

// Category returns the category c declares, or "" when it declares none.
func Category(c cmd.Command) string {
	if p, ok := cmd.Root(c).(CategoryProvider); ok {
		return p.Category()
	}
	return ""
}

// Group buckets cmds by category. Categories are ordered by their configured
// weight, then by name; commands keep their input order.
func Group(cmds []cmd.Command) ([]string, map[string][]cmd.Command) {
	grouped := make(map[string][]cmd.Command)
	for _, c := range cmds {
		cat := Category(c)
		grouped[cat] = append(grouped[cat], c)
	}

	cats := make([]string, 0, len(grouped))
	for cat := range grouped {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		wi, wj := config.CategoryWeights[cats[i]], config.CategoryWeights[cats[j]]
		if wi != wj {
			return wi < wj
		}
		return cats[i] < cats[j]
	})
	return cats, grouped
}
