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

// Package eliza implements the response-selection engine described by
// Weizenbaum in 1966: a turn of user text is normalized, segmented into
// phrases, matched against ranked keywords, decomposed by regex rules and
// answered from reassembly templates, with pronoun reflection and a small
// memory of deferred responses.
//
// One engine instance holds one conversation. The script is read-only and
// may be shared; the memory queue and template usage counts are exclusive
// to the instance, and all state changes happen in the goroutine calling
// Respond.
package eliza

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"github.com/h3nc4/GoEliza/internal/script"
)

// Cap on deferred responses held for later turns. When full, the oldest
// entry is dropped.
const memoryLimit = 8

// Hardcoded responses for scripts with empty sections
const (
	defaultGreeting = "Hello, I am Eliza."
	defaultFarewell = "Goodbye."
	defaultFallback = "Go on."
)

// A single-session conversation engine
type Eliza struct {
	script *script.Script
	log    *zap.Logger

	// Deferred responses, oldest first
	memory []string

	// Usage counts keyed by decomposition rule source + template
	ruleUsage map[string]int

	// Precompiled permutations keyed by decomposition rule source
	matchers map[string][]*regexp2.Regexp
}

// Create a new engine for the given script and precompile every
// decomposition rule's synonym permutations. Malformed rules are logged
// and skipped so a partially broken script still yields a working bot.
// A nil logger disables logging.
func New(scr *script.Script, log *zap.Logger) (*Eliza, error) {
	if scr == nil {
		return nil, errors.New("script must not be nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	e := &Eliza{
		script:    scr,
		log:       log,
		ruleUsage: make(map[string]int),
		matchers:  make(map[string][]*regexp2.Regexp),
	}
	e.compileMatchers()
	return e, nil
}

// Load a script document from disk and create an engine for it
func FromFile(path string, log *zap.Logger) (*Eliza, error) {
	scr, err := script.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load script: %w", err)
	}
	return New(scr, log)
}

// Compile all decomposition rules up front; the original design compiled
// per turn. Also flag redirections that name unknown keywords, since they
// will be skipped at runtime.
func (e *Eliza) compileMatchers() {
	for _, kw := range e.script.Keywords {
		for _, r := range kw.Rules {
			if _, done := e.matchers[r.Decomposition]; !done {
				e.matchers[r.Decomposition] = compilePermutations(r.Decomposition, e.script.Synonyms, e.log)
			}
			for _, t := range r.Reassembly {
				if target, ok := gotoTarget(t); ok && e.script.FindKeyword(target) == nil {
					e.log.Warn("Redirection names an unknown keyword",
						zap.String("key", kw.Key),
						zap.String("goto", target),
					)
				}
			}
		}
	}
}

// Pick a random greeting from the script
func (e *Eliza) Greet() string {
	if g, ok := e.script.RandGreeting(); ok {
		return g
	}
	e.log.Warn("Script has no greetings to use")
	return defaultGreeting
}

// Pick a random farewell from the script
func (e *Eliza) Farewell() string {
	if f, ok := e.script.RandFarewell(); ok {
		return f
	}
	e.log.Warn("Script has no farewells to use")
	return defaultFarewell
}

// Produce the response for one turn of user input. Never fails: when no
// keyword rule yields a response, a deferred memory is used, and failing
// that a fallback statement.
func (e *Eliza) Respond(input string) string {
	phrases := segment(normalize(input, e.script.Transforms))
	phrase, keystack, found := buildKeystack(phrases, e.script.Keywords)

	if found {
		if response, ok := e.searchResponse(phrase, keystack); ok {
			return response
		}
	}

	if len(e.memory) > 0 {
		response := e.memory[0]
		e.memory = e.memory[1:]
		e.log.Debug("Using memory", zap.String("response", response))
		return response
	}

	if f, ok := e.script.RandFallback(); ok {
		e.log.Debug("Using fallback statement")
		return f
	}
	e.log.Warn("Script has no fallbacks to use")
	return defaultFallback
}

// Walk the keystack looking for a rule whose decomposition matches the
// active phrase, then reassemble a response from it. Redirections push
// their target keyword to the front of the stack; the pop budget bounds
// the walk so a script with cyclic redirections cannot spin forever.
func (e *Eliza) searchResponse(phrase string, keystack []*script.Keyword) (string, bool) {
	budget := len(keystack) + len(e.script.Keywords)

	for pops := 0; len(keystack) > 0 && pops < budget; pops++ {
		kw := keystack[0]
		keystack = keystack[1:]

	rules:
		for _, r := range kw.Rules {
			captures := e.match(r.Decomposition, phrase)
			if captures == nil {
				continue
			}

			// A rule matched; templates that turn out to be broken
			// redirections are retried up to the template count
			for tries := 0; tries < len(r.Reassembly); tries++ {
				template, ok := e.selectTemplate(r.Decomposition, r.Reassembly)
				if !ok {
					continue rules
				}

				if target, isGoto := gotoTarget(template); isGoto {
					next := e.script.FindKeyword(target)
					if next == nil {
						e.log.Error("No such keyword",
							zap.String("goto", target),
							zap.String("key", kw.Key),
						)
						continue
					}
					e.log.Debug("Using redirection",
						zap.String("goto", target),
						zap.String("key", kw.Key),
						zap.String("rule", r.Decomposition),
					)
					keystack = append([]*script.Keyword{next}, keystack...)
					break rules
				}

				response, err := assemble(template, captures, e.script.Reflections)
				if err != nil {
					e.log.Error("Reassembly failed",
						zap.String("template", template),
						zap.String("rule", r.Decomposition),
						zap.Error(err),
					)
					continue rules
				}

				if r.Memorise {
					e.remember(response, kw.Key, r.Decomposition)
					continue rules
				}

				e.log.Debug("Found response",
					zap.String("key", kw.Key),
					zap.String("rule", r.Decomposition),
				)
				return response, true
			}
		}
	}

	return "", false
}

// Queue an assembled response for delivery on a later keyword-less turn
func (e *Eliza) remember(response, key, rule string) {
	if len(e.memory) >= memoryLimit {
		e.memory = e.memory[1:]
	}
	e.memory = append(e.memory, response)
	e.log.Debug("Saving response for later",
		zap.String("key", key),
		zap.String("rule", rule),
	)
}
