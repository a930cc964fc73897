// Package program drives the whole leaf pipeline end to end: load an entry
// file and its transitive "use" imports, type-check every function, link
// the result into one flat Runtime, and locate an entry point to evaluate.
// It is the shared orchestration cmd/leaf, internal/repl and internal/e2e
// all need so that none of the three re-implements the load/check/link
// sequence on its own.
//
// Grounded on go-dws's cmd/dwscript/cmd/run.go, which performs this exact
// lexer -> parser -> semantic -> interpreter sequence inline in its RunE
// function; here the sequence is factored out once since three separate
// leaf front ends (CLI, REPL, end-to-end tests) all need to run it.
package program

import (
	"io"
	"os"
	"strings"

	"github.com/sunholo/leaf/internal/check"
	"github.com/sunholo/leaf/internal/config"
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/link"
	"github.com/sunholo/leaf/internal/loader"
	"github.com/sunholo/leaf/internal/module"
	"github.com/sunholo/leaf/internal/runtime"
)

// preludeSource is the built-in module always loaded at module id
// loader.PreludeID (spec.md §3, "Prelude: a single built-in module always
// identified as PRELUDE_FID"). Its functions are ordinary leaf code built
// on the bridged primitives, in scope everywhere without a "use".
const preludeSource = `fn not b (bool -> bool)
  if b then false else true

fn id x (int -> int)
  x

fn max a b (int int -> int)
  if builtin:lt a b then b else a

fn min a b (int int -> int)
  if builtin:lt a b then a else b
`

// Program is one fully loaded, checked and linked leaf program: the
// flattened Runtime ready for internal/runtime.Eval, plus enough of the
// front-end state (the module Table, each module's global function-index
// base) to resolve a function by name for an entry point.
type Program struct {
	Runtime *link.Runtime
	Table   *module.Table

	// EntryModuleID is the module id of the file named on the command
	// line (as opposed to the prelude or one of its "use" dependencies).
	EntryModuleID int

	// globalBase[mid] is the global function index of module mid's
	// function 0, matching internal/link.Linker's module-id-then-
	// function-id assignment order.
	globalBase []int
}

// GlobalIndex returns the flat Runtime.Instructions index for function fid
// of module mid, computed the same way internal/link.Linker assigns it.
func (p *Program) GlobalIndex(mid, fid int) int {
	return p.globalBase[mid] + fid
}

// FindFunction looks up name by exact name (ignoring overload resolution)
// within the entry module, for use as a REPL/CLI entry point. It returns
// the function's global index and its FunctionBuilder.
func (p *Program) FindFunction(name string) (int, *module.FunctionBuilder, bool) {
	mod := p.Table.Modules[p.EntryModuleID]
	set, ok := mod.FunctionIDs[name]
	if !ok || len(set.order) == 0 {
		return 0, nil, false
	}
	fid := set.order[len(set.order)-1]
	return p.GlobalIndex(p.EntryModuleID, fid), mod.Functions[fid], true
}

// Run evaluates the entry module's "main" function (spec.md §8's scenario
// programs all declare a zero-argument "main"), returning its result.
func (p *Program) Run() (runtime.Value, *diag.Error) {
	return p.RunTraced(nil)
}

// RunTraced is Run with tail-rewrite tracing enabled when trace is
// non-nil (cmd/leaf run --trace), one line per tail-rewrite step written to
// trace via internal/runtime.EvalTraced.
func (p *Program) RunTraced(trace io.Writer) (runtime.Value, *diag.Error) {
	idx, fn, ok := p.FindFunction("main")
	if !ok {
		return nil, diag.New(diag.MOD002, diag.Pos{}, "no \"main\" function declared in %s", p.Table.Modules[p.EntryModuleID].Path)
	}
	if len(fn.Params) != 0 {
		return nil, diag.New(diag.MOD003, diag.Pos{}, "\"main\" must take no parameters, got %d", len(fn.Params))
	}
	if trace == nil {
		return runtime.Eval(p.Runtime, p.Runtime.Instructions[idx], nil)
	}
	return runtime.EvalTraced(p.Runtime, p.Runtime.Instructions[idx], nil, trace)
}

// Prelude parses the built-in prelude module, shared by Load and by
// internal/repl's session (which keeps its own growing user module
// alongside this same prelude rather than calling Load's file-based flow).
func Prelude() (*module.ParseModule, *diag.Error) {
	return module.Parse([]byte(preludeSource), module.FileSource{Kind: module.SourcePrelude, Path: "<prelude>"})
}

// Load reads entryPath plus every module it transitively "use"s (resolved
// via cfg.Loader()), type-checks every function, and links the result.
func Load(cfg *config.Config, entryPath string) (*Program, *diag.Error) {
	prelude, perr := Prelude()
	if perr != nil {
		return nil, perr
	}

	entrySrc, err := os.ReadFile(entryPath)
	if err != nil {
		return nil, diag.New(diag.LDR001, diag.Pos{}, "reading %s: %v", entryPath, err)
	}
	entryMod, merr := module.Parse(entrySrc, module.FileSource{Kind: module.SourceProjectRelative, Path: entryPath})
	if merr != nil {
		return nil, merr
	}

	modules := []*module.ParseModule{prelude, entryMod}
	const entryModuleID = 1

	ld := cfg.Loader()
	byImportID := map[string]int{}
	if derr := loadUses(ld, entryModuleID, byImportID, &modules); derr != nil {
		return nil, derr
	}

	rt, table, cerr := CheckAndLink(modules)
	if cerr != nil {
		return nil, cerr
	}
	return &Program{Runtime: rt, Table: table, EntryModuleID: entryModuleID, globalBase: GlobalBases(modules)}, nil
}

// CheckAndLink type-checks every function of every module (module id order)
// against a freshly built Table, then links the result. internal/repl's
// session calls this directly on its own [prelude, userModule] pair each
// time the user adds a declaration, since a REPL session has no use-import
// graph of its own to walk.
func CheckAndLink(modules []*module.ParseModule) (*link.Runtime, *module.Table, *diag.Error) {
	table := &module.Table{Modules: modules, PreludeID: loader.PreludeID}

	checkedByModule := make([]map[int]check.Checked, len(modules))
	for mid, mod := range modules {
		checked := make(map[int]check.Checked)
		c := &check.Checker{Table: table, Self: mid}
		for fid, fn := range mod.Functions {
			result, cerr := c.CheckFunction(fn)
			if cerr != nil {
				return nil, nil, cerr
			}
			checked[fid] = result
		}
		checkedByModule[mid] = checked
	}

	linker := link.New()
	rt, lerr := linker.LinkModules(modules, checkedByModule)
	if lerr != nil {
		return nil, nil, lerr
	}
	return rt, table, nil
}

// GlobalBases computes, for each module in modules, the global function
// index of that module's function 0 — the same module-id-then-function-id
// flattening order internal/link.Linker.LinkModules assigns.
func GlobalBases(modules []*module.ParseModule) []int {
	base := make([]int, len(modules))
	running := 0
	for mid, mod := range modules {
		base[mid] = running
		running += len(mod.Functions)
	}
	return base
}

// loadUses walks the "use" list of every module already in *modules
// (starting from startID), parsing and appending newly discovered modules
// and populating each module's Imports, until the dependency graph is
// fully resolved. Each import id is loaded once and reused through
// byImportID. ld's load stack (internal/loader's Enter/Exit) holds only the
// import being read, since Exit runs before that module's own uses are
// walked, so an import cycle is not reported as LDR002: the modules in the
// cycle are each loaded once and linked to one another.
func loadUses(ld *loader.Loader, startID int, byImportID map[string]int, modules *[]*module.ParseModule) *diag.Error {
	queue := []int{startID}
	for len(queue) > 0 {
		mid := queue[0]
		queue = queue[1:]
		mod := (*modules)[mid]

		for _, use := range mod.Uses {
			importID := joinImportID(use)
			if target, ok := byImportID[importID]; ok {
				mod.Imports[use.Name] = target
				continue
			}

			if derr := ld.Enter(importID); derr != nil {
				return derr
			}
			path, rerr := ld.Resolve(importID)
			if rerr != nil {
				ld.Exit()
				return rerr
			}
			src, ferr := os.ReadFile(path)
			if ferr != nil {
				ld.Exit()
				return diag.New(diag.LDR001, diag.Pos{}, "reading %s: %v", path, ferr)
			}
			dep, perr := module.Parse(src, module.FileSource{Kind: module.SourceLeafPath, Path: path})
			ld.Exit()
			if perr != nil {
				return perr
			}

			target := len(*modules)
			*modules = append(*modules, dep)
			byImportID[importID] = target
			mod.Imports[use.Name] = target
			queue = append(queue, target)
		}
	}
	return nil
}

// joinImportID reconstructs the "a:b:c" form internal/loader.Resolve
// expects from a parsed "use" identifier's path segments and final name.
func joinImportID(use ident.Identifier) string {
	return strings.Join(append(append([]string(nil), use.Path...), use.Name), ":")
}
