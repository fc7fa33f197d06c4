package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"hcl/interpreter-go/pkg/modules"
)

const (
	// ManifestName is the project file looked up from the working directory.
	ManifestName = "hcl.yml"
	// EnvHome overrides the manifest's home directory.
	EnvHome = "HCL_HOME"
)

var ErrManifestNotFound = errors.New("manifest: hcl.yml not found")

// Manifest represents the parsed contents of hcl.yml.
type Manifest struct {
	Path    string
	Dir     string
	Name    string
	Version string
	Home    string
	Entry   string
	Std     []string
	Stdlib  *StdlibSource
}

// StdlibSource pins the git repository holding the standard library.
type StdlibSource struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// Ref returns the requested revision, tag or branch (empty means the remote
// default branch).
func (s *StdlibSource) Ref() string {
	switch {
	case s == nil:
		return ""
	case s.Rev != "":
		return s.Rev
	case s.Tag != "":
		return s.Tag
	default:
		return s.Branch
	}
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// FindManifest walks up from start until it finds hcl.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// LoadManifest parses hcl.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

var (
	namePattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)
	modulePattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}([0-9A-Za-z\-\+\.]*)?$`)
)

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	} else if !namePattern.MatchString(m.Name) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("name %q must be an identifier", m.Name))
	}
	if m.Version != "" && !versionPattern.MatchString(m.Version) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("invalid version %q", m.Version))
	}
	seen := make(map[string]struct{}, len(m.Std))
	for i, name := range m.Std {
		if !modulePattern.MatchString(name) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("std[%d]: %q is not a module name", i, name))
			continue
		}
		if _, dup := seen[name]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("std[%d]: %q listed twice", i, name))
		}
		seen[name] = struct{}{}
	}
	if src := m.Stdlib; src != nil {
		if src.Git == "" {
			errs.Issues = append(errs.Issues, "stdlib: git must be provided")
		}
		refs := 0
		for _, ref := range []string{src.Rev, src.Tag, src.Branch} {
			if ref != "" {
				refs++
			}
		}
		if refs > 1 {
			errs.Issues = append(errs.Issues, "stdlib: specify at most one of rev, tag, or branch")
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// HomeDir is the root holding std/. HCL_HOME wins over the manifest; a
// relative home is taken from the manifest's directory.
func (m *Manifest) HomeDir() string {
	if env := strings.TrimSpace(os.Getenv(EnvHome)); env != "" {
		return env
	}
	if m.Home == "" {
		return m.Dir
	}
	if filepath.IsAbs(m.Home) {
		return m.Home
	}
	return filepath.Join(m.Dir, m.Home)
}

// EntryPath is the program run by `hcl run` without arguments.
func (m *Manifest) EntryPath() string {
	if m.Entry == "" || filepath.IsAbs(m.Entry) {
		return m.Entry
	}
	return filepath.Join(m.Dir, m.Entry)
}

// StdModules lists the std modules: the manifest's list if given, else
// whatever lives under <home>/std.
func (m *Manifest) StdModules() ([]string, error) {
	if len(m.Std) > 0 {
		return append([]string(nil), m.Std...), nil
	}
	return ScanStd(m.HomeDir())
}

// RegisterStd declares every std module in reg.
func (m *Manifest) RegisterStd(reg *modules.Registry) error {
	names, err := m.StdModules()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := reg.RegisterStd(name); err != nil {
			return fmt.Errorf("manifest: std module %s: %w", name, err)
		}
	}
	return nil
}

// ScanStd lists module names found as <home>/std/<name>.hcl or as their
// parsed trees. A missing std directory yields no modules.
func ScanStd(home string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(home, "std"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("manifest: scan std: %w", err)
	}
	seen := make(map[string]struct{})
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), TreeExtension)
		if !strings.HasSuffix(base, modules.SourceExtension) {
			continue
		}
		name := strings.TrimSuffix(base, modules.SourceExtension)
		if !modulePattern.MatchString(name) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type manifestFile struct {
	Name    string       `yaml:"name"`
	Version string       `yaml:"version"`
	Home    string       `yaml:"home"`
	Entry   string       `yaml:"entry"`
	Std     stringList   `yaml:"std"`
	Stdlib  *stdlibField `yaml:"stdlib"`
}

type stringList []string

type stdlibField struct {
	source StdlibSource
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:    path,
		Dir:     filepath.Dir(path),
		Name:    strings.TrimSpace(mf.Name),
		Version: strings.TrimSpace(mf.Version),
		Home:    strings.TrimSpace(mf.Home),
		Entry:   strings.TrimSpace(mf.Entry),
		Std:     mf.Std.Clone(),
	}
	if mf.Stdlib != nil {
		src := mf.Stdlib.source
		result.Stdlib = &src
	}
	return result
}

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			str = strings.TrimSpace(str)
			if str == "" {
				continue
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

// UnmarshalYAML accepts either a bare git URL or a mapping.
func (f *stdlibField) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		f.source = StdlibSource{Git: strings.TrimSpace(value.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Git    string `yaml:"git"`
			Rev    string `yaml:"rev"`
			Tag    string `yaml:"tag"`
			Branch string `yaml:"branch"`
		}
		if err := value.Decode(&raw); err != nil {
			return fmt.Errorf("manifest: stdlib: %w", err)
		}
		f.source = StdlibSource{
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
		}
		return nil
	case yaml.AliasNode:
		return f.UnmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("manifest: stdlib must be a git URL or a mapping, found %s", value.ShortTag())
	}
}
