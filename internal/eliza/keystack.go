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
	"sort"

	"github.com/h3nc4/GoEliza/internal/script"
)

// Scan phrases in order and build the keystack from the first phrase that
// mentions a recognized keyword. Every keyword occurrence in that phrase
// is pushed (duplicates included), then the stack is stably sorted by rank
// descending. Reports false when no phrase contains a keyword.
//
// The stack holds handles into the script's keyword list so that pushing
// a redirection target later never copies rule sets.
func buildKeystack(phrases []string, keywords []script.Keyword) (string, []*script.Keyword, bool) {
	for _, phrase := range phrases {
		var stack []*script.Keyword
		for _, w := range words(phrase) {
			for i := range keywords {
				if keywords[i].Key == w {
					stack = append(stack, &keywords[i])
					break
				}
			}
		}
		if len(stack) == 0 {
			continue
		}

		sort.SliceStable(stack, func(i, j int) bool {
			return stack[i].Rank > stack[j].Rank
		})
		return phrase, stack, true
	}

	return "", nil, false
}
