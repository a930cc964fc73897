// Package config holds leaf's runtime configuration: the leafpath search
// root, the project root, and the dump/trace flags shared by cmd/leaf's
// subcommands (SPEC_FULL.md's AMBIENT STACK, "Configuration").
//
// Grounded on the teacher's internal/module/loader.go AILANG_PATH/
// AILANG_STDLIB env-var pattern (here a single LEAFPATH, matching
// internal/loader.LeafPathEnv) and on its eval_harness/spec.go
// yaml.v3-backed manifest loader, adapted from a benchmark spec shape to a
// per-project "leaf.yaml" manifest.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sunholo/leaf/internal/loader"
)

// ManifestName is the file a project root may carry to override the
// leafpath and declare its own search roots, analogous to a go.mod naming
// a module's dependency roots.
const ManifestName = "leaf.yaml"

// Manifest is the optional "leaf.yaml" project file.
type Manifest struct {
	// LeafPath overrides the LEAFPATH environment variable when set.
	LeafPath string `yaml:"leafpath"`

	// Roots lists additional project-relative search directories. It is
	// read from the manifest only: neither Resolve nor Loader consults it,
	// so module lookup searches just the project root and the leafpath.
	Roots []string `yaml:"roots"`
}

// LoadManifest reads "leaf.yaml" from dir, returning a zero Manifest (not
// an error) if the file does not exist — the manifest is optional.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ManifestName, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestName, err)
	}
	return &m, nil
}

// Config is the resolved runtime configuration for one invocation of
// cmd/leaf: the project root, the leafpath, and the dump/trace flags set
// by the command line.
type Config struct {
	ProjectRoot string
	LeafPath    string

	Trace   bool // leaf run --trace: one line per tail-rewrite step
	DumpAST bool // leaf run --dump-ast
	DumpIR  bool // no cmd/leaf flag sets this
	NoColor bool
}

// Resolve builds a Config for entryPath (the ".lf" file named on the
// command line): the project root is entryPath's directory, and the
// leafpath is read from leaf.yaml if present, else from LEAFPATH
// (internal/loader.LeafPathEnv), else unset.
func Resolve(entryPath string) (*Config, error) {
	root, err := filepath.Abs(filepath.Dir(entryPath))
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	manifest, err := LoadManifest(root)
	if err != nil {
		return nil, err
	}

	leafPath := manifest.LeafPath
	if leafPath == "" {
		leafPath = os.Getenv(loader.LeafPathEnv)
	}

	return &Config{ProjectRoot: root, LeafPath: leafPath}, nil
}

// Loader builds an internal/loader.Loader honoring this Config's resolved
// leafpath, temporarily overriding LEAFPATH for the duration of loader
// construction when the config's value came from leaf.yaml rather than the
// environment (internal/loader.New reads the environment directly, since
// it predates per-invocation config).
func (c *Config) Loader() *loader.Loader {
	if c.LeafPath != "" && os.Getenv(loader.LeafPathEnv) != c.LeafPath {
		prev, had := os.LookupEnv(loader.LeafPathEnv)
		os.Setenv(loader.LeafPathEnv, c.LeafPath)
		defer func() {
			if had {
				os.Setenv(loader.LeafPathEnv, prev)
			} else {
				os.Unsetenv(loader.LeafPathEnv)
			}
		}()
	}
	return loader.New(c.ProjectRoot)
}
