// Copyright 2025 walteh LLC
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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/ordercopy/pkg/copier"
	"github.com/walteh/ordercopy/pkg/lister"
)

// 🔌 Parser is the interface for plan file parsers
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

// 📂 ListArgs describes how to list a source directory
type ListArgs struct {
	Dir         string   `json:"dir" yaml:"dir" hcl:"dir"`
	Recursive   bool     `json:"recursive,omitempty" yaml:"recursive,omitempty" hcl:"recursive,optional"`
	IncludeDirs bool     `json:"include_dirs,omitempty" yaml:"include_dirs,omitempty" hcl:"include_dirs,optional"`
	Filter      string   `json:"filter,omitempty" yaml:"filter,omitempty" hcl:"filter,optional"`
	SortBy      string   `json:"sort_by,omitempty" yaml:"sort_by,omitempty" hcl:"sort_by,optional"`
	Desc        bool     `json:"desc,omitempty" yaml:"desc,omitempty" hcl:"desc,optional"`
	Exclude     []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
}

// 📄 ItemArgs is one planned copy
type ItemArgs struct {
	Src     string `json:"src" yaml:"src" hcl:"src"`
	Order   int    `json:"order" yaml:"order" hcl:"order"`
	NewName string `json:"new_name,omitempty" yaml:"new_name,omitempty" hcl:"new_name,optional"`
}

// 🔧 CopyArgs represents an ordered copy run
type CopyArgs struct {
	Dest      string     `json:"dest" yaml:"dest" hcl:"dest"`
	Overwrite bool       `json:"overwrite,omitempty" yaml:"overwrite,omitempty" hcl:"overwrite,optional"`
	Items     []ItemArgs `json:"items" yaml:"items" hcl:"item,block"`
}

// 📚 Config is a plan file. Either section may be omitted, not both.
type Config struct {
	List *ListArgs `json:"list,omitempty" yaml:"list,omitempty" hcl:"list,block"`
	Copy *CopyArgs `json:"copy,omitempty" yaml:"copy,omitempty" hcl:"copy,block"`

	location string
}

// Location is the file the config was loaded from, empty for configs built in code
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads a plan file. Relative paths inside it are resolved against the
// directory that holds the file.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading plan")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading plan file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing plan: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving plan path: %w", err)
	}
	cfg.location = abs
	cfg.resolvePaths(filepath.Dir(abs))

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating plan: %w", err)
	}

	if cfg.Copy != nil {
		logger.Debug().Str("dest", cfg.Copy.Dest).Int("items", len(cfg.Copy.Items)).Msg("loaded copy plan")
	}

	return cfg, nil
}

func resolve(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func (cfg *Config) resolvePaths(base string) {
	if cfg.List != nil {
		cfg.List.Dir = resolve(base, cfg.List.Dir)
	}
	if cfg.Copy != nil {
		cfg.Copy.Dest = resolve(base, cfg.Copy.Dest)
		for i := range cfg.Copy.Items {
			cfg.Copy.Items[i].Src = resolve(base, cfg.Copy.Items[i].Src)
		}
	}
}

// 🔍 Validate checks if the plan is usable
func (cfg *Config) Validate() error {
	if cfg.List == nil && cfg.Copy == nil {
		return errors.Errorf("plan needs a list or copy section")
	}

	if l := cfg.List; l != nil {
		if strings.TrimSpace(l.Dir) == "" {
			return errors.Errorf("list.dir is required")
		}
		if _, ok := lister.ParseSortKey(l.SortBy); !ok {
			return errors.Errorf("list.sort_by %q is not one of name, size, modTime", l.SortBy)
		}
		for _, pattern := range l.Exclude {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf("list.exclude pattern %q is invalid", pattern)
			}
		}
	}

	if c := cfg.Copy; c != nil {
		if strings.TrimSpace(c.Dest) == "" {
			return errors.Errorf("copy.dest is required")
		}
		for i, item := range c.Items {
			if strings.TrimSpace(item.Src) == "" {
				return errors.Errorf("copy.items[%d].src is required", i)
			}
			if _, err := copier.TargetName(copier.Item{Src: item.Src, NewName: item.NewName}); err != nil {
				return errors.Errorf("copy.items[%d]: %w", i, err)
			}
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	parts := make([]string, 0, 2)
	if cfg.List != nil {
		parts = append(parts, fmt.Sprintf("list %s", cfg.List.Dir))
	}
	if cfg.Copy != nil {
		parts = append(parts, fmt.Sprintf("copy %d items -> %s", len(cfg.Copy.Items), cfg.Copy.Dest))
	}
	return strings.Join(parts, ", ")
}

// Options converts the list section for lister.List
func (l *ListArgs) Options() lister.Options {
	key, _ := lister.ParseSortKey(l.SortBy)
	return lister.Options{
		Dir:         l.Dir,
		Recursive:   l.Recursive,
		IncludeDirs: l.IncludeDirs,
		FilterText:  l.Filter,
		SortBy:      key,
		Desc:        l.Desc,
		Exclude:     l.Exclude,
	}
}

// Request converts the copy section for copier.Copy
func (c *CopyArgs) Request() copier.Request {
	items := make([]copier.Item, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, copier.Item{
			Src:     item.Src,
			Order:   item.Order,
			NewName: item.NewName,
		})
	}
	return copier.Request{
		Dest:      c.Dest,
		Overwrite: c.Overwrite,
		Items:     items,
	}
}

// FromRequest is the inverse of Request
func FromRequest(req copier.Request) *CopyArgs {
	items := make([]ItemArgs, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ItemArgs{
			Src:     item.Src,
			Order:   item.Order,
			NewName: item.NewName,
		})
	}
	return &CopyArgs{
		Dest:      req.Dest,
		Overwrite: req.Overwrite,
		Items:     items,
	}
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
