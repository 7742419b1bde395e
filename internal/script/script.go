/*
 * Copyright (C) 2026  Henrique Almeida
 * This file is part of GoEliza.
 *
 * GoEliza is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as published
 * by the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * GoEliza is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with GoEliza.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package script holds the data document that parameterizes a conversation
// engine: greetings, farewells, fallbacks, word transforms, synonym classes,
// reflection pairs and ranked keywords with their decomposition and
// reassembly rules. A Script is read-only once loaded and may be shared
// between engine instances.
package script

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Map a canonical word onto the literal substrings it replaces during
// input normalization
type Transform struct {
	Word        string   `json:"word" yaml:"word"`
	Equivalents []string `json:"equivalents" yaml:"equivalents"`
}

// Group a head word with the equivalents that may stand in for it inside
// a decomposition rule
type Synonym struct {
	Word        string   `json:"word" yaml:"word"`
	Equivalents []string `json:"equivalents" yaml:"equivalents"`
}

// Describe a word-level swap applied to captured text before it is quoted
// back. When Twoway is set the pair swaps in both directions.
type Reflection struct {
	Word    string `json:"word" yaml:"word"`
	Inverse string `json:"inverse" yaml:"inverse"`
	Twoway  bool   `json:"twoway" yaml:"twoway"`
}

// Pair a decomposition rule with its reassembly templates. When Memorise
// is set, assembled responses are held back for a later turn instead of
// being returned immediately.
type Rule struct {
	Memorise      bool     `json:"memorise" yaml:"memorise"`
	Decomposition string   `json:"decomposition_rule" yaml:"decomposition_rule"`
	Reassembly    []string `json:"reassembly_rules" yaml:"reassembly_rules"`
}

// A recognized topic word. Rank orders keywords within a phrase, higher
// first.
type Keyword struct {
	Key   string `json:"key" yaml:"key"`
	Rank  uint8  `json:"rank" yaml:"rank"`
	Rules []Rule `json:"rules" yaml:"rules"`
}

// The full script document
type Script struct {
	Greetings   []string     `json:"greetings" yaml:"greetings"`
	Farewells   []string     `json:"farewells" yaml:"farewells"`
	Fallbacks   []string     `json:"fallbacks" yaml:"fallbacks"`
	Transforms  []Transform  `json:"transforms" yaml:"transforms"`
	Synonyms    []Synonym    `json:"synonyms" yaml:"synonyms"`
	Reflections []Reflection `json:"reflections" yaml:"reflections"`
	Keywords    []Keyword    `json:"keywords" yaml:"keywords"`
}

// Read a script document from disk. Files ending in .yaml or .yml decode
// as YAML, everything else as JSON.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Decode a JSON script document
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return &s, nil
}

// Decode a YAML script document
func ParseYAML(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return &s, nil
}

// Parse an in-memory JSON script document
func LoadString(doc string) (*Script, error) {
	return Parse([]byte(doc))
}

// Look up a keyword by its key. The returned handle points into the
// script's keyword list, so callers share the backing data instead of
// copying rule sets around.
func (s *Script) FindKeyword(key string) *Keyword {
	for i := range s.Keywords {
		if s.Keywords[i].Key == key {
			return &s.Keywords[i]
		}
	}
	return nil
}

// Pick a random greeting. Reports false when the list is empty.
func (s *Script) RandGreeting() (string, bool) {
	return pick(s.Greetings)
}

// Pick a random farewell. Reports false when the list is empty.
func (s *Script) RandFarewell() (string, bool) {
	return pick(s.Farewells)
}

// Pick a random fallback statement. Reports false when the list is empty.
func (s *Script) RandFallback() (string, bool) {
	return pick(s.Fallbacks)
}

func pick(list []string) (string, bool) {
	if len(list) == 0 {
		return "", false
	}
	return list[rand.IntN(len(list))], true
}
