// Package templates resolves the dashboard template text used by a
// synthesis run: built-in defaults shipped with the binary, or per-endpoint
// overrides read from disk. Disk reads go through a small LRU cache so that
// a manifest pointing many endpoints at the same template file reads it
// once per run.
package templates

import (
	_ "embed"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:embed operational.json
var defaultOperational string

//go:embed domain.json
var defaultDomain string

const cacheSize = 32

type Loader struct {
	cache *lru.Cache[string, string]
}

func NewLoader() *Loader {
	// lru.New only fails for a non-positive size.
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		panic(err)
	}
	return &Loader{cache: cache}
}

// Operational returns the operational-dashboard template text: the file at
// overridePath when given, the built-in template otherwise.
func (l *Loader) Operational(overridePath string) (string, error) {
	if overridePath == "" {
		return defaultOperational, nil
	}
	return l.load(overridePath)
}

// Domain returns the domain-dashboard template text, same override rules.
func (l *Loader) Domain(overridePath string) (string, error) {
	if overridePath == "" {
		return defaultDomain, nil
	}
	return l.load(overridePath)
}

// Purge drops every cached template. Watch mode calls it before a
// regeneration pass so that edited template files are re-read.
func (l *Loader) Purge() {
	l.cache.Purge()
}

func (l *Loader) load(path string) (string, error) {
	if text, ok := l.cache.Get(path); ok {
		return text, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read dashboard template %s: %w", path, err)
	}
	text := string(raw)
	l.cache.Add(path, text)
	return text, nil
}
