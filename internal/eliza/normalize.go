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

	"github.com/h3nc4/GoEliza/internal/script"
)

// Lowercase the input and canonicalize near-synonyms. Each transform is a
// literal substring replacement, applied in script order; later transforms
// see the output of earlier ones.
func normalize(raw string, transforms []script.Transform) string {
	text := strings.ToLower(raw)
	for _, t := range transforms {
		for _, equivalent := range t.Equivalents {
			text = strings.ReplaceAll(text, equivalent, t.Word)
		}
	}
	return text
}

// Split normalized text into phrases on clause boundaries. The " but "
// connector splits first, then '.', ',' and '?'. Fragments are trimmed and
// empty fragments are kept, so a trailing delimiter yields a trailing
// empty phrase. The " but " split is a literal substring match on the
// lowercased text: it fires wherever "but" has a space on each side, and
// never inside a longer word such as "butter" nor at the very start or
// end of the text.
func segment(normalized string) []string {
	var phrases []string
	for _, clause := range strings.Split(normalized, " but ") {
		start := 0
		for i := 0; i < len(clause); i++ {
			switch clause[i] {
			case '.', ',', '?':
				phrases = append(phrases, strings.TrimSpace(clause[start:i]))
				start = i + 1
			}
		}
		phrases = append(phrases, strings.TrimSpace(clause[start:]))
	}
	return phrases
}

// Split a phrase into whitespace-delimited words
func words(phrase string) []string {
	return strings.Fields(phrase)
}

// Strip everything but ASCII letters. Used to recover the synonym head
// from a marked decomposition token like "@family)".
func scrubLetters(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Strip everything but ASCII letters and digits. Used to recover the
// capture index from a reassembly token like "$2?".
func scrubAlphanumeric(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
