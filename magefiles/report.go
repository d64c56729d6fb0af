package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Generate builds the CLI and generates a report from one client data file.
func Generate(file string) error {
	mg.Deps(Build)
	return sh.RunV(binPath, "generate", file)
}

// Convert re-renders every saved reply in replies/ into documents in reports/.
func Convert() error {
	mg.Deps(Build)
	replies, err := filepath.Glob(filepath.Join("replies", "*"))
	if err != nil {
		return err
	}
	if len(replies) == 0 {
		fmt.Println("[convert] No saved replies in replies/.")
		return nil
	}
	args := append([]string{"convert", "--output-dir", reportsDir}, replies...)
	return sh.RunV(binPath, args...)
}

// Serve builds the CLI and starts the upload page.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "serve")
}
