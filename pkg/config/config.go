// Package config loads enjoi's json5 configuration.
//
// A config file named foo.json5 may be accompanied by foo.local.json5, whose
// values take priority. Both are layered over Default().
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

const appName = "enjoi"

type Source struct {
	BaseURL        string `json:"base_url"`
	AjaxURL        string `json:"ajax_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	UserAgent      string `json:"user_agent"`
}

func (s Source) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type Library struct {
	Path string `json:"path"`
}

type Log struct {
	Level string `json:"level"`
	// Pretty is a pointer so an explicit false survives the merge.
	Pretty *bool `json:"pretty"`
}

func (l Log) IsPretty() bool {
	return l.Pretty == nil || *l.Pretty
}

type Config struct {
	Source  Source  `json:"source"`
	Library Library `json:"library"`
	Log     Log     `json:"log"`
}

// Dir is the directory holding the default config file and library.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(".", "."+appName)
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), appName+".json5")
}

func Default() Config {
	pretty := true
	return Config{
		Source: Source{
			BaseURL:        "https://www1.gogoanime.ai",
			AjaxURL:        "https://ajax.gogo-load.com",
			TimeoutSeconds: 30,
			UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		},
		Library: Library{
			Path: filepath.Join(Dir(), "library.db"),
		},
		Log: Log{
			Level:  "info",
			Pretty: &pretty,
		},
	}
}

// Load reads path and its .local sibling over Default. Missing files are not
// an error; an empty path means DefaultPath.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	out := Default()

	for _, name := range []string{path, localPath(path)} {
		layer, found, err := readLayer(name)
		if err != nil {
			return Config{}, err
		}
		if !found {
			continue
		}
		if err := mergo.Merge(&out, layer, mergo.WithOverride); err != nil {
			return Config{}, fmt.Errorf("merge %s: %w", name, err)
		}
	}

	out.Source.BaseURL = strings.TrimRight(out.Source.BaseURL, "/")
	out.Source.AjaxURL = strings.TrimRight(out.Source.AjaxURL, "/")
	return out, nil
}

func readLayer(name string) (Config, bool, error) {
	var layer Config
	raw, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return layer, false, nil
	}
	if err != nil {
		return layer, false, err
	}
	if len(raw) == 0 {
		return layer, false, nil
	}
	if err := json5.Unmarshal(raw, &layer); err != nil {
		return layer, false, fmt.Errorf("parse %s: %w", name, err)
	}
	return layer, true, nil
}

// localPath turns dir/enjoi.json5 into dir/enjoi.local.json5.
func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}
