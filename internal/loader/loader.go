// Package loader implements module discovery (spec.md §6): resolving an
// import identifier "a:b:c" to a ".lf" file across the project path and
// leaf path search roots, with cycle detection across the load stack. The
// built-in prelude is not a search root here: an import found under neither
// root is an LDR001 error.
//
// Grounded on the teacher's internal/module/loader.go (search-path layering,
// AILANG_PATH env var, cycle-detection load stack), renamed to leaf's single
// LEAFPATH variable and project-relative-first search order (spec.md §6
// tries project root, then leaf path; the teacher's loader tries its
// equivalent search paths in the order they were registered).
package loader

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sunholo/leaf/internal/diag"
)

// PreludeID is the module id always assigned to the built-in prelude
// (spec.md §6, "a single built-in module always identified as PRELUDE_FID").
const PreludeID = 0

// LeafPathEnv is the environment variable naming the leaf path root;
// modules live under "<LEAFPATH>/modules/" (spec.md §6).
const LeafPathEnv = "LEAFPATH"

// Loader resolves import identifiers to absolute file paths and tracks the
// in-progress load chain for cycle detection.
type Loader struct {
	projectRoot string
	leafPath    string

	mu        sync.Mutex
	loadStack []string
}

// New creates a Loader rooted at projectRoot (the entry file's parent
// directory). The leaf path is read from the LEAFPATH environment variable.
func New(projectRoot string) *Loader {
	leafPath := os.Getenv(LeafPathEnv)
	return &Loader{projectRoot: projectRoot, leafPath: leafPath}
}

// Resolve maps an import identifier like "a:b:c" to "a/b/c.lf", trying the
// project root first, then "<LEAFPATH>/modules/" (spec.md §6). Returns the
// absolute file path.
func (l *Loader) Resolve(importID string) (string, *diag.Error) {
	rel := filepath.Join(strings.Split(importID, ":")...) + ".lf"

	candidate := filepath.Join(l.projectRoot, rel)
	if fileExists(candidate) {
		return candidate, nil
	}

	if l.leafPath != "" {
		candidate = filepath.Join(l.leafPath, "modules", rel)
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	return "", diag.New(diag.LDR001, diag.Pos{}, "module %q not found under project root or leaf path", importID)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Enter pushes importID onto the load stack, returning an error if it is
// already present (spec.md §6/§7, "circular module dependency"). The
// caller must call Exit when done loading, typically via defer.
func (l *Loader) Enter(importID string) *diag.Error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range l.loadStack {
		if id == importID {
			return diag.New(diag.LDR002, diag.Pos{}, "circular module dependency: %s", strings.Join(append(l.loadStack, importID), " -> "))
		}
	}
	l.loadStack = append(l.loadStack, importID)
	return nil
}

// Exit pops the most recently entered import id off the load stack.
func (l *Loader) Exit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.loadStack) > 0 {
		l.loadStack = l.loadStack[:len(l.loadStack)-1]
	}
}
