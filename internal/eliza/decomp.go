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

package eliza

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"github.com/h3nc4/GoEliza/internal/script"
)

// Bound each decomposition match so catastrophic backtracking degrades to
// a failed match instead of stalling the turn
const matchTimeout = 2 * time.Second

// Expand a decomposition rule into its concrete regex sources. A token
// with a leading '@' names a synonym class: the rule expands to the base
// pattern with the marker stripped, plus one pattern per equivalent with
// the class head replaced. Rules with more than one '@' are malformed and
// expand to nothing.
func permutationSources(rule string, synonyms []script.Synonym) []string {
	if strings.Count(rule, "@") > 1 {
		return nil
	}

	sources := []string{strings.ReplaceAll(rule, "@", "")}

	for _, w := range words(rule) {
		if !strings.Contains(w, "@") {
			continue
		}
		// Format example: '(.*) my (.* @family)'
		stem := scrubLetters(w)
		for _, syn := range synonyms {
			if syn.Word != stem {
				continue
			}
			for _, equivalent := range syn.Equivalents {
				expanded := strings.ReplaceAll(rule, stem, equivalent)
				sources = append(sources, strings.ReplaceAll(expanded, "@", ""))
			}
			break
		}
	}

	return sources
}

// Compile every permutation of a decomposition rule. Permutations that
// fail to compile are dropped and logged; the rest proceed.
func compilePermutations(rule string, synonyms []script.Synonym, log *zap.Logger) []*regexp2.Regexp {
	if strings.Count(rule, "@") > 1 {
		log.Error("Decomposition rule is limited to one synonym marker",
			zap.String("rule", rule),
		)
		return nil
	}

	var compiled []*regexp2.Regexp
	for _, src := range permutationSources(rule, synonyms) {
		re, err := regexp2.Compile(src, regexp2.None)
		if err != nil {
			log.Error("Invalid decomposition rule permutation",
				zap.String("rule", rule),
				zap.String("permutation", src),
				zap.Error(err),
			)
			continue
		}
		re.MatchTimeout = matchTimeout
		compiled = append(compiled, re)
	}

	return compiled
}

// Try the precompiled permutations of a decomposition rule against the
// active phrase, in permutation order. On the first match, return the
// capture groups indexed from 1 (index 0 holds the full match). Returns
// nil when nothing matches.
func (e *Eliza) match(ruleSource, phrase string) []string {
	for _, re := range e.matchers[ruleSource] {
		m, err := re.FindStringMatch(phrase)
		if err != nil {
			// Timeouts land here; treat the permutation as a non-match
			e.log.Error("Decomposition match aborted",
				zap.String("rule", ruleSource),
				zap.Error(err),
			)
			continue
		}
		if m == nil {
			continue
		}

		groups := m.Groups()
		captures := make([]string, len(groups))
		for i := range groups {
			captures[i] = groups[i].String()
		}
		return captures
	}
	return nil
}
