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
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
//
//	list {
//	  dir       = "./photos"
//	  recursive = true
//	}
//
//	copy {
//	  dest = "./ordered"
//	  item {
//	    src   = "./photos/b.jpg"
//	    order = 1
//	  }
//	}
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "plan.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}

// encodeHCL renders the config with the same block layout Parse accepts.
// Zero-valued optional attributes are left out so the output parses back.
func encodeHCL(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	if l := cfg.List; l != nil {
		body := root.AppendNewBlock("list", nil).Body()
		body.SetAttributeValue("dir", cty.StringVal(l.Dir))
		setBool(body, "recursive", l.Recursive)
		setBool(body, "include_dirs", l.IncludeDirs)
		setString(body, "filter", l.Filter)
		setString(body, "sort_by", l.SortBy)
		setBool(body, "desc", l.Desc)
		if len(l.Exclude) > 0 {
			vals := make([]cty.Value, 0, len(l.Exclude))
			for _, pattern := range l.Exclude {
				vals = append(vals, cty.StringVal(pattern))
			}
			body.SetAttributeValue("exclude", cty.ListVal(vals))
		}
	}

	if c := cfg.Copy; c != nil {
		if cfg.List != nil {
			root.AppendNewline()
		}
		body := root.AppendNewBlock("copy", nil).Body()
		body.SetAttributeValue("dest", cty.StringVal(c.Dest))
		setBool(body, "overwrite", c.Overwrite)
		for _, item := range c.Items {
			ib := body.AppendNewBlock("item", nil).Body()
			ib.SetAttributeValue("src", cty.StringVal(item.Src))
			ib.SetAttributeValue("order", cty.NumberIntVal(int64(item.Order)))
			setString(ib, "new_name", item.NewName)
		}
	}

	return hclwrite.Format(f.Bytes())
}

func setBool(body *hclwrite.Body, name string, v bool) {
	if v {
		body.SetAttributeValue(name, cty.True)
	}
}

func setString(body *hclwrite.Body, name, v string) {
	if v != "" {
		body.SetAttributeValue(name, cty.StringVal(v))
	}
}
