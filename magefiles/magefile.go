// Package main contains Mage build targets for report-engine developer tooling.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	reportsDir,
	"replies",
	".secrets",
}

// Init creates the project directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "report-engine"
	cmdPkg  = "./cmd/report-engine"

	// reportsDir is where generate and convert write documents by default.
	reportsDir = "reports"
)

// binPath is the built CLI.
var binPath = filepath.Join(binDir, binName)

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", binPath, version)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Stats prints non-blank Go lines per package, split into production and
// test code, and the number of generated documents per format in reports/.
func Stats() error {
	pkgs, err := countGoLines(".")
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(pkgs))
	for dir := range pkgs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PACKAGE\tPROD\tTEST")
	var prod, test int
	for _, dir := range dirs {
		c := pkgs[dir]
		fmt.Fprintf(tw, "%s\t%d\t%d\n", dir, c.prod, c.test)
		prod += c.prod
		test += c.test
	}
	fmt.Fprintf(tw, "total\t%d\t%d\n", prod, test)
	if err := tw.Flush(); err != nil {
		return err
	}

	docs, err := countDocuments(reportsDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Printf("\nNo documents in %s/.\n", reportsDir)
		return nil
	}
	exts := make([]string, 0, len(docs))
	for ext := range docs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	fmt.Printf("\nDocuments in %s/:\n", reportsDir)
	for _, ext := range exts {
		fmt.Printf("  %-6s %d\n", ext, docs[ext])
	}
	return nil
}

type lineCount struct {
	prod, test int
}

// countGoLines counts non-blank lines of Go files per package directory.
func countGoLines(root string) (map[string]lineCount, error) {
	counts := make(map[string]lineCount)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(path, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := nonBlankLines(path)
		if err != nil {
			return err
		}
		dir := filepath.ToSlash(filepath.Dir(path))
		c := counts[dir]
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		counts[dir] = c
		return nil
	})
	return counts, err
}

// skipDir reports whether a directory is ignored by the go tool ("_" or "." prefix).
func skipDir(path, name string) bool {
	return path != "." && (name[0] == '_' || name[0] == '.')
}

func nonBlankLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}

// countDocuments counts .docx, .md and .html files in dir by extension. A
// missing directory has none.
func countDocuments(dir string) (map[string]int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	docs := make(map[string]int)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch ext := filepath.Ext(e.Name()); ext {
		case ".docx", ".md", ".html":
			docs[ext]++
		}
	}
	return docs, nil
}
