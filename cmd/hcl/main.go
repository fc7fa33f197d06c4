package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hcl/interpreter-go/pkg/driver"
	"hcl/interpreter-go/pkg/interpreter"
	"hcl/interpreter-go/pkg/modules"
)

const cliToolVersion = "hcl 0.1.0-dev"

// Exit codes follow the sysexits convention for data and software errors.
const (
	exitOK      = 0
	exitUsage   = 1
	exitLoad    = 65
	exitRuntime = 70
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return exitUsage
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return exitOK
	case "run":
		return runEntry(args[1:])
	case "deps":
		return runDeps(args[1:])
	default:
		return runEntry(args)
	}
}

func runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return exitUsage
	}

	var entry string
	var manifest *driver.Manifest
	if len(args) == 0 {
		m, err := loadManifestFrom(".")
		if err != nil {
			if errors.Is(err, driver.ErrManifestNotFound) {
				fmt.Fprintln(os.Stderr, "hcl run requires a program path (hcl.yml not found)")
			} else {
				fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			}
			return exitUsage
		}
		if m.Entry == "" {
			fmt.Fprintf(os.Stderr, "manifest %s has no entry\n", m.Path)
			return exitUsage
		}
		manifest = m
		entry = m.EntryPath()
	} else {
		entry = strings.TrimSpace(args[0])
		if entry == "" {
			fmt.Fprintln(os.Stderr, "hcl run requires a program path")
			return exitUsage
		}
		m, err := loadManifestFrom(filepath.Dir(entry))
		switch {
		case err == nil:
			manifest = m
		case errors.Is(err, driver.ErrManifestNotFound):
		default:
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return exitUsage
		}
	}
	return executeEntry(entry, manifest)
}

func executeEntry(entry string, manifest *driver.Manifest) int {
	home := strings.TrimSpace(os.Getenv(driver.EnvHome))
	if manifest != nil {
		home = manifest.HomeDir()
	}

	registry := modules.NewRegistry()
	if err := registerStd(registry, manifest, home); err != nil {
		fmt.Fprintf(os.Stderr, "failed to prepare standard library: %v\n", err)
		return exitUsage
	}

	loader := &driver.FileLoader{}
	program, err := loader.Load(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return exitLoad
	}

	interp := interpreter.NewWithConfig(interpreter.Config{
		Stdout:   os.Stdout,
		Stdin:    os.Stdin,
		Registry: registry,
		Loader:   loader,
		Home:     home,
		BaseDir:  filepath.Dir(entry),
		Prelude:  hostPrelude(),
	})
	if err := interp.Interpret(program); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitRuntime
	}
	return exitOK
}

func registerStd(reg *modules.Registry, manifest *driver.Manifest, home string) error {
	if manifest != nil {
		return manifest.RegisterStd(reg)
	}
	if home == "" {
		return nil
	}
	names, err := driver.ScanStd(home)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := reg.RegisterStd(name); err != nil {
			return err
		}
	}
	return nil
}

func runDeps(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "hcl deps does not take arguments (received %s)\n", strings.Join(args, " "))
		return exitUsage
	}
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to locate hcl.yml: %v\n", err)
		return exitUsage
	}
	if manifest.Stdlib == nil {
		fmt.Fprintf(os.Stderr, "manifest %s declares no stdlib source\n", manifest.Path)
		return exitUsage
	}
	home := manifest.HomeDir()
	fmt.Fprintf(os.Stdout, "Manifest: %s\n", manifest.Path)
	fmt.Fprintf(os.Stdout, "Stdlib: %s\n", manifest.Stdlib.Git)
	commit, err := driver.FetchStdlib(context.Background(), manifest.Stdlib, home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to fetch stdlib: %v\n", err)
		return exitUsage
	}
	names, err := driver.ScanStd(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to scan stdlib: %v\n", err)
		return exitUsage
	}
	fmt.Fprintf(os.Stdout, "Installed %s at %s (%d modules)\n", filepath.Join(home, "std"), commit, len(names))
	return exitOK
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	if start == "" {
		start = "."
	}
	manifestPath, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  hcl run [program.hcl]")
	fmt.Fprintln(os.Stderr, "  hcl <program.hcl>")
	fmt.Fprintln(os.Stderr, "  hcl deps")
	fmt.Fprintln(os.Stderr, "  hcl version")
}
