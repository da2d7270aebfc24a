package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "scribe"

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerRule lists the module-local prefixes a layer may import, relative to
// its own service. Layers without a rule only get the cross-context check.
type layerRule struct {
	own    []string
	shared []string
}

var layerRules = map[string]layerRule{
	"domain":      {own: []string{"domain"}},
	"application": {own: []string{"application", "domain", "ports"}, shared: []string{modulePath + "/contracts"}},
}

func main() {
	violations := collectViolations("contexts")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Import < b.Import
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

// collectViolations walks root laid out as <context>/<service>/<layer>/...
// and skips test files.
func collectViolations(root string) []violation {
	var violations []violation

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) < 3 {
			return nil
		}

		service := fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[0], parts[1])
		violations = append(violations, checkFile(path, parts[2], service)...)
		return nil
	})

	return violations
}

func checkFile(path, layer, service string) []violation {
	file := filepath.ToSlash(path)
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: file, Line: 1, Rule: "file must parse"}}
	}

	rule, layered := layerRules[layer]
	var violations []violation
	for _, imp := range parsed.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		report := func(reason string) {
			violations = append(violations, violation{
				File:   file,
				Line:   fset.Position(imp.Pos()).Line,
				Import: importPath,
				Rule:   reason,
			})
		}

		if hasPrefix(importPath, modulePath+"/contexts") && !hasPrefix(importPath, service) {
			report("cross-module imports are forbidden")
			continue
		}
		if !layered || isStdlib(importPath) {
			continue
		}
		switch {
		case strings.Contains(importPath, "/adapters/"):
			report(layer + " must not import adapters")
		case hasPrefix(importPath, modulePath+"/internal"):
			report(layer + " must not import runtime infrastructure")
		case !rule.allows(service, importPath):
			report(layer + " import is outside explicit allowlist")
		}
	}
	return violations
}

func (r layerRule) allows(service, importPath string) bool {
	for _, sub := range r.own {
		if hasPrefix(importPath, service+"/"+sub) {
			return true
		}
	}
	for _, prefix := range r.shared {
		if hasPrefix(importPath, prefix) {
			return true
		}
	}
	return false
}

func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isStdlib(importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
