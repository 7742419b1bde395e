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
	"fmt"
	"strconv"
	"strings"

	"github.com/h3nc4/GoEliza/internal/script"
)

// Choose a reassembly template for a matched decomposition rule. Usage is
// tracked under the concatenation of the rule source and the template, so
// identical reply text under two different rules counts separately.
//
// A never-used template always wins, in declaration order. Otherwise the
// template with the lowest usage count is chosen, first-seen minimum on
// ties. The chosen template's count is incremented. Reports false only
// when templates is empty.
func (e *Eliza) selectTemplate(ruleSource string, templates []string) (string, bool) {
	best := -1
	bestCount := 0

	for i, t := range templates {
		usage, seen := e.ruleUsage[ruleSource+t]
		if !seen {
			// Cold template, takes precedence over every used one
			e.ruleUsage[ruleSource+t] = 0
			best = i
			break
		}
		if best == -1 || usage < bestCount {
			best = i
			bestCount = usage
		}
	}

	if best == -1 {
		return "", false
	}

	chosen := templates[best]
	e.ruleUsage[ruleSource+chosen]++
	return chosen, true
}

// Report whether a template is a redirection, and to which keyword.
// "GOTO  elsewhere" redirects to "elsewhere"; whitespace is insignificant.
func gotoTarget(template string) (string, bool) {
	if !strings.Contains(template, "GOTO") {
		return "", false
	}
	stripped := strings.ReplaceAll(template, "GOTO", "")
	return strings.Join(strings.Fields(stripped), ""), true
}

// Fill a reassembly template from the capture groups of a matched
// decomposition rule. Any whitespace-delimited token containing '$' is a
// back-reference: the token is scrubbed to alphanumerics and its leading
// digit run names the capture index, so "$2?" and "$2a" both reference
// capture 2 while "$a" fails. The referenced capture is reflected before
// substitution. Fails when the index is non-numeric or outside
// 1..len(captures)-1 (captures[0] holds the full match).
func assemble(template string, captures []string, reflections []script.Reflection) (string, error) {
	out := template

	for _, w := range words(template) {
		if !strings.Contains(w, "$") {
			continue
		}
		// Format example: 'What makes you think I am $2?'
		scrubbed := scrubAlphanumeric(w)
		n, err := parseCaptureIndex(scrubbed)
		if err != nil {
			return "", fmt.Errorf("invalid capture reference %q: %w", w, err)
		}
		if n < 1 || n >= len(captures) {
			return "", fmt.Errorf("capture $%d is outside capture range", n)
		}
		out = strings.ReplaceAll(out, scrubbed, reflect(captures[n], reflections))
		out = strings.ReplaceAll(out, "$", "")
	}

	return out, nil
}

// Parse the leading digit run of a scrubbed back-reference token
func parseCaptureIndex(token string) (int, error) {
	end := 0
	for end < len(token) && token[end] >= '0' && token[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("no capture index in %q", token)
	}
	return strconv.Atoi(token[:end])
}

// Swap pronouns and verb forms word by word so a capture from the user's
// sentence can be quoted back grammatically. The first reflection entry
// whose word matches (or whose inverse matches, for two-way pairs) wins;
// unmatched words pass through. Output words are joined by single spaces.
func reflect(text string, reflections []script.Reflection) string {
	in := words(text)
	out := make([]string, 0, len(in))

	for _, w := range in {
		emitted := w
		for _, r := range reflections {
			if r.Word == w {
				emitted = r.Inverse
				break
			}
			if r.Twoway && r.Inverse == w {
				emitted = r.Word
				break
			}
		}
		out = append(out, emitted)
	}

	return strings.Join(out, " ")
}
