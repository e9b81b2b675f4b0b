package mimetype

import (
	"strings"
	"sync"
)

var (
	defaultTree     *tree
	defaultTreeOnce sync.Once
)

func getTree() *tree {
	defaultTreeOnce.Do(func() {
		defaultTree = newTree(rootNode())
	})
	return defaultTree
}

// registry holds the tests added at run time through Register and
// RegisterExtension. The detection tree never sees them.
type registry struct {
	mu     sync.RWMutex
	byMIME map[string][]func([]byte) bool
	byExt  map[string][]func([]byte) bool
}

var custom = &registry{
	byMIME: make(map[string][]func([]byte) bool),
	byExt:  make(map[string][]func([]byte) bool),
}

func (r *registry) addMIME(mime string, test func([]byte) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := baseMIME(mime)
	r.byMIME[key] = append(r.byMIME[key], test)
}

func (r *registry) addExt(ext string, test func([]byte) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeExtension(ext)
	r.byExt[key] = append(r.byExt[key], test)
}

func (r *registry) mimeTests(mime string) []func([]byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byMIME[baseMIME(mime)]
}

func (r *registry) extTests(ext string) []func([]byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byExt[normalizeExtension(ext)]
}

// Register adds test to the checks performed by Match and IsSupported for
// mime, and by MatchExtension for ext when ext is not empty.
func Register(mime, ext string, test func([]byte) bool) {
	if strings.TrimSpace(mime) != "" {
		custom.addMIME(mime, test)
	}
	if strings.TrimSpace(ext) != "" {
		custom.addExt(ext, test)
	}
}

// RegisterExtension adds test to the checks performed by MatchExtension and
// IsSupportedExtension for ext.
func RegisterExtension(ext string, test func([]byte) bool) {
	custom.addExt(ext, test)
}
