package project

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

// DefaultRuntime is the import path generated code uses for the runtime.
const DefaultRuntime = "magen/mage"

var (
	ErrUnknownKey     = errors.New("unknown configuration key")
	ErrInvalidPackage = errors.New("invalid package name")
	ErrInvalidSuffix  = errors.New("destination suffix must end in .go")
)

// Config is the decoded magen.toml. Keys missing from the file keep their
// Default values.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Cache    CacheConfig    `toml:"cache"`

	// Path of the manifest the config came from, "" for defaults.
	Path string `toml:"-"`
}

type GenerateConfig struct {
	Package string `toml:"package"`
	Runtime string `toml:"runtime"`
	Suffix  string `toml:"suffix"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func Default() Config {
	return Config{
		Generate: GenerateConfig{Runtime: DefaultRuntime, Suffix: ".go"},
		Cache:    CacheConfig{Enabled: true},
	}
}

// LoadConfig decodes path over the defaults. Unknown keys are an error so
// typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	return cfg, nil
}

// Discover loads the nearest magen.toml above startDir, or returns the
// defaults when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadConfig(path)
}

func (c Config) Validate() error {
	if c.Generate.Package != "" && !ValidPackageName(c.Generate.Package) {
		return fmt.Errorf("%w %q", ErrInvalidPackage, c.Generate.Package)
	}
	if c.Generate.Runtime == "" {
		return errors.New("generate.runtime must not be empty")
	}
	if !strings.HasSuffix(c.Generate.Suffix, ".go") {
		return fmt.Errorf("%w: %q", ErrInvalidSuffix, c.Generate.Suffix)
	}
	return nil
}

// ValidPackageName reports whether name can be used in a package clause.
func ValidPackageName(name string) bool {
	return name != "_" && token.IsIdentifier(name)
}

// PackageFor picks a package name for sourcePath: the configured one, else
// the source directory name reduced to a valid identifier.
func (c Config) PackageFor(sourcePath string) string {
	if c.Generate.Package != "" {
		return c.Generate.Package
	}
	dir := filepath.Base(filepath.Dir(sourcePath))
	if abs, err := filepath.Abs(sourcePath); err == nil {
		dir = filepath.Base(filepath.Dir(abs))
	}
	var b strings.Builder
	for _, r := range strings.ToLower(dir) {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r) && b.Len() > 0:
			b.WriteRune(r)
		}
	}
	if name := b.String(); ValidPackageName(name) {
		return name
	}
	return "mage"
}

// DestinationFor returns the output path of sourcePath when none is given.
func (c Config) DestinationFor(sourcePath string) string {
	return sourcePath + c.Generate.Suffix
}
