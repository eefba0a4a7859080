package router

import (
	"sync"

	"github.com/vitrine-dev/vitrine/pkg/routepath"
)

// History is the navigation stack a Router drives.
type History interface {
	// Base returns the normalized base ("" for root, else "/x" without a
	// trailing slash).
	Base() string

	// Location returns the current entry, relative to the base.
	Location() string

	// Push adds an entry after the current one, dropping forward entries.
	Push(fullPath string)

	// Replace overwrites the current entry.
	Replace(fullPath string)

	// Go moves delta entries through the stack. It returns false and does
	// nothing when the target is outside the stack.
	Go(delta int) bool

	// CreateHref prefixes an application path with the base.
	CreateHref(fullPath string) string

	// StripBase maps a request path to an application path. It returns
	// false for paths outside the base.
	StripBase(urlPath string) (string, bool)
}

// WebHistory is a browser-style history stack rooted at a base path.
// It is safe for concurrent use.
type WebHistory struct {
	base string

	mu      sync.Mutex
	entries []string
	pos     int
}

// NewWebHistory creates a history rooted at base. The base is normalized:
// "", "/" → root; "loja/" → "/loja". A full URL keeps only its path.
func NewWebHistory(base string) (*WebHistory, error) {
	normalized, err := routepath.NormalizeBase(base)
	if err != nil {
		return nil, err
	}
	return newWebHistory(normalized), nil
}

func newWebHistory(normalizedBase string) *WebHistory {
	return &WebHistory{
		base:    normalizedBase,
		entries: []string{"/"},
	}
}

// Base implements History.
func (h *WebHistory) Base() string {
	return h.base
}

// Location implements History.
func (h *WebHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.pos]
}

// Push implements History.
func (h *WebHistory) Push(fullPath string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.pos+1], fullPath)
	h.pos++
}

// Replace implements History.
func (h *WebHistory) Replace(fullPath string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.pos] = fullPath
}

// Go implements History.
func (h *WebHistory) Go(delta int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	target := h.pos + delta
	if delta == 0 || target < 0 || target >= len(h.entries) {
		return false
	}
	h.pos = target
	return true
}

// Len returns the number of entries in the stack.
func (h *WebHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// CreateHref implements History.
func (h *WebHistory) CreateHref(fullPath string) string {
	return routepath.JoinBase(h.base, fullPath)
}

// StripBase implements History.
func (h *WebHistory) StripBase(urlPath string) (string, bool) {
	return routepath.StripBase(h.base, urlPath)
}
