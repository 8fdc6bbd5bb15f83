// Package config resolves pix settings from flags, the config file and
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFolder is the application folder under the user's home directory.
const DefaultFolder = "Pictures/Pix"

// Config holds resolved settings. Zero values mean "not set" in a File.
type Config struct {
	Folders     []string `yaml:"folders"`
	Library     bool     `yaml:"library"`
	Mode        string   `yaml:"mode"`
	Locale      string   `yaml:"locale"`
	Labels      string   `yaml:"labels"`
	CaptureTime bool     `yaml:"capture_time"`
	Verify      bool     `yaml:"verify"`
	Selected    []string `yaml:"selected"`
}

// Path returns the default config file path (~/.pix/config.yaml).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pix", "config.yaml"), nil
}

// Load reads a config file. A missing file yields a zero Config and nil error.
func Load(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("cannot open config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	c.Labels = expandHome(c.Labels)
	for i, f := range c.Folders {
		c.Folders[i] = expandHome(f)
	}
	return c, nil
}

// Defaults returns the built-in settings.
func Defaults() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	return Config{
		Folders: []string{filepath.Join(home, DefaultFolder)},
		Mode:    "all",
	}, nil
}

// Resolve merges settings. Priority: flags > file > defaults. Boolean
// switches are enabled if either flags or file enable them.
func Resolve(flags, file Config) (Config, error) {
	def, err := Defaults()
	if err != nil {
		return Config{}, err
	}

	out := def
	out.Folders = firstList(flags.Folders, file.Folders, def.Folders)
	out.Mode = firstString(flags.Mode, file.Mode, def.Mode)
	out.Locale = firstString(flags.Locale, file.Locale)
	out.Labels = firstString(flags.Labels, file.Labels)
	out.Selected = firstList(flags.Selected, file.Selected)
	out.Library = flags.Library || file.Library
	out.CaptureTime = flags.CaptureTime || file.CaptureTime
	out.Verify = flags.Verify || file.Verify
	return out, nil
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstList(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
