package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrDuplicateCommand is returned when a name or alias is already taken.
var ErrDuplicateCommand = errors.New("command already registered")

// DefaultRegistry is the global registry used by adapters (Discord, CLI).
var DefaultRegistry = NewRegistry()

// Registry stores commands by lower-cased name and alias. It does not perform
// dispatch; each adapter looks up commands and invokes them with its own context.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	names    map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		names:    make(map[string]Command),
	}
}

// Register adds a command under its name and aliases.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{c.Name()}, Aliases(c)...)
	for _, k := range keys {
		if _, ok := r.names[strings.ToLower(k)]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, k)
		}
	}
	for _, k := range keys {
		r.names[strings.ToLower(k)] = c
	}
	r.commands[strings.ToLower(c.Name())] = c
	return nil
}

// Get returns the command registered under name or alias, or nil.
func (r *Registry) Get(name string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names[strings.ToLower(name)]
}

// GetAll returns all registered commands, sorted by name, aliases excluded.
func (r *Registry) GetAll() []Command {
	r.mu.RLock()
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
