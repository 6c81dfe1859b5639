package optparse

import (
	"strings"

	"github.com/napalu/optparse/types/orderedmap"
)

// registry indexes a schema by name and by cluster letter
type registry struct {
	options    Options
	keys       map[string]*Option
	names      *orderedmap.OrderedMap[string, string]
	letters    map[rune]string
	positional string
	marker     string
}

func newRegistry(options Options) *registry {
	r := &registry{
		options: options,
		keys:    make(map[string]*Option, len(options)),
		names:   orderedmap.New[string, string](),
		letters: make(map[rune]string),
	}
	for _, opt := range options {
		r.keys[opt.Key] = opt
		for _, name := range opt.Names {
			if name != "" {
				r.names.Set(name, opt.Key)
			}
		}
		for _, letter := range opt.Cluster {
			r.letters[letter] = opt.Key
		}
		if opt.Positional {
			r.positional = opt.Key
			r.marker = opt.Marker
		}
	}
	return r
}

// lookup resolves an option name
func (r *registry) lookup(name string) (string, *Option, bool) {
	key, ok := r.names.Get(name)
	if !ok {
		return "", nil, false
	}
	return key, r.keys[key], true
}

// letter resolves a cluster letter
func (r *registry) letter(letter rune) (string, *Option, bool) {
	key, ok := r.letters[letter]
	if !ok {
		return "", nil, false
	}
	return key, r.keys[key], true
}

// name returns the preferred name of key, or key itself if it is unknown
func (r *registry) name(key string) string {
	if opt, ok := r.keys[key]; ok {
		return opt.PreferredName()
	}
	return key
}

// allNames returns every option name in declaration order
func (r *registry) allNames() []string {
	names := make([]string, 0, r.names.Len())
	for name := range r.names.Keys() {
		names = append(names, name)
	}
	return names
}

// completeNames returns the names starting with prefix, including the
// positional marker
func (r *registry) completeNames(prefix string) []string {
	var names []string
	for name, key := range r.names.All() {
		if r.keys[key].Hide {
			continue
		}
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	if r.marker != "" && strings.HasPrefix(r.marker, prefix) {
		names = append(names, r.marker)
	}
	return names
}
