// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the message catalogs under internal/i18n/locales
// against the Go sources. It fails when a key passed to i18n.T is missing
// from the primary locale or when another locale does not define exactly
// the primary locale's keys. Keys no source mentions are reported as
// orphans but do not fail the run.
//
// Usage:
//
//	go run ./tools/i18n-linter [--root .] [--locales internal/i18n/locales]
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const primaryLocale = "en.yaml"

var (
	// tCallRe matches i18n.T("key", ...).
	tCallRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)
	// keyLiteralRe matches string literals shaped like a dotted message key,
	// e.g. header ids handed to i18n.T indirectly.
	keyLiteralRe = regexp.MustCompile(`"([a-z]+\.[a-z_.]+)"`)
)

// report is the outcome of one lint run.
type report struct {
	// Missing lists keys passed to i18n.T that the primary locale lacks.
	Missing []string
	// Drift maps a locale file to the keys it lacks ("-key") or adds
	// ("+key") relative to the primary locale.
	Drift map[string][]string
	// Orphaned lists primary keys no source file mentions.
	Orphaned []string
}

func (r report) failed() bool {
	return len(r.Missing) > 0 || len(r.Drift) > 0
}

func main() {
	root := pflag.String("root", ".", "module root to scan")
	locales := pflag.String("locales", filepath.Join("internal", "i18n", "locales"), "directory holding <lang>.yaml catalogs")
	pflag.Parse()

	r, err := lint(*root, filepath.Join(*root, *locales))
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(2)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, localesDir string) (report, error) {
	called, mentioned, err := findKeys(root)
	if err != nil {
		return report{}, fmt.Errorf("scan sources: %w", err)
	}
	primary, err := loadKeys(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		return report{}, fmt.Errorf("load %s: %w", primaryLocale, err)
	}

	r := report{Drift: map[string][]string{}}
	for key := range called {
		if _, ok := primary[key]; !ok {
			r.Missing = append(r.Missing, key)
		}
	}
	for key := range primary {
		if _, ok := mentioned[key]; !ok {
			r.Orphaned = append(r.Orphaned, key)
		}
	}

	files, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		return report{}, err
	}
	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		keys, err := loadKeys(file)
		if err != nil {
			return report{}, fmt.Errorf("load %s: %w", filepath.Base(file), err)
		}
		var diff []string
		for key := range primary {
			if _, ok := keys[key]; !ok {
				diff = append(diff, "-"+key)
			}
		}
		for key := range keys {
			if _, ok := primary[key]; !ok {
				diff = append(diff, "+"+key)
			}
		}
		if len(diff) > 0 {
			sort.Strings(diff)
			r.Drift[filepath.Base(file)] = diff
		}
	}
	sort.Strings(r.Missing)
	sort.Strings(r.Orphaned)
	return r, nil
}

// findKeys scans non-test Go files below root. called holds the keys used
// directly in i18n.T calls, mentioned additionally every key-shaped literal.
func findKeys(root string) (called, mentioned map[string]struct{}, err error) {
	called = map[string]struct{}{}
	mentioned = map[string]struct{}{}
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range tCallRe.FindAllStringSubmatch(string(content), -1) {
			called[m[1]] = struct{}{}
			mentioned[m[1]] = struct{}{}
		}
		for _, m := range keyLiteralRe.FindAllStringSubmatch(string(content), -1) {
			mentioned[m[1]] = struct{}{}
		}
		return nil
	})
	return called, mentioned, err
}

// loadKeys reads a catalog and returns its message ids. Catalogs use flat
// dotted ids; nested maps are flattened the same way.
func loadKeys(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flatten("", data, keys)
	return keys, nil
}

func flatten(prefix string, node interface{}, keys map[string]struct{}) {
	m, ok := node.(map[string]interface{})
	if !ok {
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
		return
	}
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		flatten(k, v, keys)
	}
}

func printReport(w io.Writer, r report) {
	section := func(title string, items []string) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(items) == 0 {
			fmt.Fprintln(w, "  none")
		}
		for _, it := range items {
			fmt.Fprintf(w, "  %s\n", it)
		}
	}
	section("Keys used in code but missing from "+primaryLocale, r.Missing)

	files := make([]string, 0, len(r.Drift))
	for f := range r.Drift {
		files = append(files, f)
	}
	sort.Strings(files)
	var drift []string
	for _, f := range files {
		for _, k := range r.Drift[f] {
			drift = append(drift, f+": "+k)
		}
	}
	section("Locales out of step with "+primaryLocale, drift)
	section("Orphaned keys (warning)", r.Orphaned)

	if r.failed() {
		fmt.Fprintln(w, "FAIL")
		return
	}
	fmt.Fprintln(w, "OK")
}
