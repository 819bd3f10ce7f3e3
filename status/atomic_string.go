package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen bounds stored labels in bytes, a canonical UUID fits
const MaxStringLen = 40

// AtomicString is a label metric such as the current run id, zero value reads ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store publishes val, cut to MaxStringLen on a rune boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

// Load returns the last stored label
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
