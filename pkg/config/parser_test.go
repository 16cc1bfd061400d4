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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParser struct {
	suffix string
}

func (p *stubParser) CanParse(filename string) bool {
	return len(filename) >= len(p.suffix) && filename[len(filename)-len(p.suffix):] == p.suffix
}

func (p *stubParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	return &Config{}, nil
}

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	// Save original parsers
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	// Reset parsers
	parsers = nil

	stub := &stubParser{suffix: ".plan"}
	Register(stub)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Same(t, stub, GetParser("x.plan"), "registered parser should be found")
	assert.Nil(t, GetParser("x.yaml"), "no parser for unknown extension")
}

// 🧪 TestGetParser tests extension matching for the built-in parsers
func TestGetParser(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{"plan.yaml", &YAMLParser{}},
		{"plan.YML", &YAMLParser{}},
		{"plan.json", &JSONParser{}},
		{"plan.hcl", &HCLParser{}},
		{"plan.toml", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should not find a parser")
				return
			}
			require.NotNil(t, got, "should find a parser")
			assert.IsType(t, tt.want, got, "parser type should match")
		})
	}
}

// 🧪 TestParsersAgree checks that every format decodes to the same plan
func TestParsersAgree(t *testing.T) {
	want := &Config{
		List: &ListArgs{Dir: "photos", Recursive: true, SortBy: "size", Desc: true, Exclude: []string{"**/*.tmp"}},
		Copy: &CopyArgs{
			Dest: "ordered",
			Items: []ItemArgs{
				{Src: "photos/b.jpg", Order: 1, NewName: "001_b.jpg"},
				{Src: "photos/a.jpg", Order: 2},
			},
		},
	}

	inputs := map[string]string{
		"plan.yaml": `
list:
  dir: photos
  recursive: true
  sort_by: size
  desc: true
  exclude: ["**/*.tmp"]
copy:
  dest: ordered
  items:
    - src: photos/b.jpg
      order: 1
      new_name: 001_b.jpg
    - src: photos/a.jpg
      order: 2
`,
		"plan.json": `{
  "list": {"dir": "photos", "recursive": true, "sort_by": "size", "desc": true, "exclude": ["**/*.tmp"]},
  "copy": {
    "dest": "ordered",
    "items": [
      {"src": "photos/b.jpg", "order": 1, "new_name": "001_b.jpg"},
      {"src": "photos/a.jpg", "order": 2}
    ]
  }
}`,
		"plan.hcl": `
list {
  dir       = "photos"
  recursive = true
  sort_by   = "size"
  desc      = true
  exclude   = ["**/*.tmp"]
}

copy {
  dest = "ordered"
  item {
    src      = "photos/b.jpg"
    order    = 1
    new_name = "001_b.jpg"
  }
  item {
    src   = "photos/a.jpg"
    order = 2
  }
}
`,
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			p := GetParser(name)
			require.NotNil(t, p, "parser should exist")
			got, err := p.Parse(context.Background(), []byte(data))
			require.NoError(t, err, "parse should succeed")
			assert.Equal(t, want, got, "decoded plan should match")
		})
	}
}

// 🧪 TestParsersRejectUnknownFields tests strict decoding
func TestParsersRejectUnknownFields(t *testing.T) {
	inputs := map[string]string{
		"plan.yaml": "copy:\n  dest: out\n  colour: red\n",
		"plan.json": `{"copy": {"dest": "out", "colour": "red"}}`,
		"plan.hcl":  "copy {\n  dest = \"out\"\n  colour = \"red\"\n}\n",
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := GetParser(name).Parse(context.Background(), []byte(data))
			require.Error(t, err, "unknown field should fail")
		})
	}
}
