// Copyright 2025 everfront LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🏷️ Built-in defaults, matching the site corpus this tool was written for.
const (
	DefaultConfigFile = ".injectrc.yaml"
	DefaultRoot       = "public"
	DefaultExtension  = ".html"
	DefaultMarker     = "ef-header"
	DefaultAnchor     = "</header>"

	// DefaultFragmentGuard is the substring whose presence marks a file as
	// already patched. It must occur inside DefaultFragment.
	DefaultFragmentGuard = `id="notification-dropdown"`
)

// DefaultFragment is the notification dropdown block injected after the
// anchor tag. The leading and trailing newlines are part of the fragment.
const DefaultFragment = `
    <!-- Notification Dropdown (Pre-rendered, shown/hidden by JS) -->
    <div id="notification-dropdown" class="notification-dropdown" style="display: none;">
      <div class="notification-header">
        <h3>Notifications</h3>
        <button class="notification-mark-all" id="notification-mark-all-read">
          Mark all as read
        </button>
      </div>
      <div class="notification-list"></div>
      <div class="notification-footer">
        <a href="/notifications.html" class="notification-view-all">View all</a>
      </div>
    </div>
`

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	Root          string   `json:"root" yaml:"root" hcl:"root,optional"`                               // Directory tree to scan
	Extension     string   `json:"extension" yaml:"extension" hcl:"extension,optional"`                // File extension to match (e.g. ".html")
	Marker        string   `json:"marker" yaml:"marker" hcl:"marker,optional"`                         // Class token gating eligibility
	Anchor        string   `json:"anchor" yaml:"anchor" hcl:"anchor,optional"`                         // Closing tag the fragment is spliced after
	FragmentGuard string   `json:"fragment_guard" yaml:"fragment_guard" hcl:"fragment_guard,optional"` // Substring proving the fragment is already present
	Fragment      string   `json:"fragment" yaml:"fragment" hcl:"fragment,optional"`                   // Markup block to inject
	IgnoreGlobs   []string `json:"ignore_globs,omitempty" yaml:"ignore_globs,omitempty" hcl:"ignore_globs,optional"`
	DryRun        bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
}

// 🏭 Default returns a config populated with the built-in constants.
func Default() *Config {
	return &Config{
		Root:          DefaultRoot,
		Extension:     DefaultExtension,
		Marker:        DefaultMarker,
		Anchor:        DefaultAnchor,
		FragmentGuard: DefaultFragmentGuard,
		Fragment:      DefaultFragment,
	}
}

// 🎯 Load loads the configuration from a file. A missing file at the
// default path falls back to built-in defaults; a missing file at an
// explicitly chosen path is an error.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && filepath.Base(path) == DefaultConfigFile {
			logger.Debug().Msg("no config file, using defaults")
			cfg := Default()
			if err := cfg.Validate(); err != nil {
				return nil, errors.Errorf("validating default config: %w", err)
			}
			return cfg, nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate fills in defaults for empty fields and checks invariants.
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if cfg.Marker == "" {
		cfg.Marker = DefaultMarker
	}
	if cfg.Anchor == "" {
		cfg.Anchor = DefaultAnchor
	}
	if cfg.FragmentGuard == "" {
		cfg.FragmentGuard = DefaultFragmentGuard
	}
	if cfg.Fragment == "" {
		cfg.Fragment = DefaultFragment
	}

	if !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}

	// The guard is what makes repeated runs idempotent; a fragment that
	// does not contain its own guard would be re-injected on every run.
	if !strings.Contains(cfg.Fragment, cfg.FragmentGuard) {
		return errors.Errorf("fragment_guard %q not found in fragment", cfg.FragmentGuard)
	}

	cfg.Root = filepath.Clean(cfg.Root)

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s/**/*%s [marker=%s anchor=%s]", cfg.Root, cfg.Extension, cfg.Marker, cfg.Anchor)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
