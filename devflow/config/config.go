// Package config loads devflow settings from INI files. Later sources override
// earlier ones and missing files are ignored.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/ini.v1"
)

// FileName is looked up in the home directory and at the project root.
const FileName = ".devflow.ini"

const DefaultClangFormat = "clang-format-5.0"

type Config struct {
	BuildDir string
	CMake    CMakeConfig
	Format   FormatConfig
	Test     TestConfig
	Deps     DepsConfig
}

type CMakeConfig struct {
	Path      string
	Generator string
	BuildType string
	Defines   map[string]string
}

type FormatConfig struct {
	ClangFormat string
	Paths       []string
	Extensions  []string
}

type TestConfig struct {
	Suppressions string
}

type DepsConfig struct {
	// Sudo overrides the platform default when set.
	Sudo *bool
}

func Default() *Config {
	return &Config{
		BuildDir: "build",
		CMake: CMakeConfig{
			Defines: map[string]string{},
		},
		Format: FormatConfig{
			ClangFormat: DefaultClangFormat,
			Paths:       []string{"examples", "include", "src"},
			Extensions:  []string{"cpp", "hpp", "ipp"},
		},
		Test: TestConfig{
			Suppressions: filepath.Join("scripts", "memcheck.supp"),
		},
	}
}

// Load merges ~/.devflow.ini, <root>/.devflow.ini and extra, in that order.
// extra must exist when given.
func Load(root, extra string) (*Config, error) {
	var paths []string
	if home, err := homedir.Dir(); err == nil {
		paths = append(paths, filepath.Join(home, FileName))
	}
	paths = append(paths, filepath.Join(root, FileName))

	if extra != "" {
		if _, err := os.Stat(extra); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, extra)
	}
	return LoadFiles(paths...)
}

// LoadFiles merges the given files over Default. Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		return Default(), nil
	}

	others := make([]interface{}, 0, len(paths)-1)
	for _, p := range paths[1:] {
		others = append(others, p)
	}

	f, err := ini.LooseLoad(paths[0], others...)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return parse(f)
}

func parse(f *ini.File) (*Config, error) {
	c := Default()

	c.BuildDir = f.Section("").Key("build_dir").MustString(c.BuildDir)

	cmake := f.Section("cmake")
	c.CMake.Path = cmake.Key("path").MustString(c.CMake.Path)
	c.CMake.Generator = cmake.Key("generator").MustString(c.CMake.Generator)
	c.CMake.BuildType = cmake.Key("build_type").MustString(c.CMake.BuildType)

	if f.HasSection("cmake.defines") {
		for _, key := range f.Section("cmake.defines").Keys() {
			c.CMake.Defines[key.Name()] = key.String()
		}
	}

	format := f.Section("format")
	c.Format.ClangFormat = format.Key("clang_format").MustString(c.Format.ClangFormat)
	if format.HasKey("paths") {
		c.Format.Paths = format.Key("paths").Strings(",")
	}
	if format.HasKey("extensions") {
		c.Format.Extensions = format.Key("extensions").Strings(",")
	}

	c.Test.Suppressions = f.Section("test").Key("suppressions").MustString(c.Test.Suppressions)

	deps := f.Section("deps")
	if deps.HasKey("sudo") {
		sudo, err := deps.Key("sudo").Bool()
		if err != nil {
			return nil, fmt.Errorf("deps.sudo: %w", err)
		}
		c.Deps.Sudo = &sudo
	}

	return c, nil
}
