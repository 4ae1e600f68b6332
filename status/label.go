package status

import "sync/atomic"

// MaxLabelLen bounds stored labels so overlay rows stay one line
const MaxLabelLen = 24

// Label is an atomically replaced short string
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncated to MaxLabelLen bytes
func (l *Label) Store(v string) {
	if len(v) > MaxLabelLen {
		v = v[:MaxLabelLen]
	}
	l.ptr.Store(&v)
}

// Load returns the label, empty before the first Store
func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
