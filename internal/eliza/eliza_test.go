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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h3nc4/GoEliza/internal/script"
)

func TestNew(t *testing.T) {
	t.Run("Nil Script", func(t *testing.T) {
		_, err := New(nil, nil)
		assert.Error(t, err)
	})

	t.Run("Precompiles Rules", func(t *testing.T) {
		scr := &script.Script{
			Synonyms: []script.Synonym{{Word: "family", Equivalents: []string{"mother"}}},
			Keywords: []script.Keyword{
				{Key: "my", Rules: []script.Rule{
					{Decomposition: "(.*)my (.* @family)", Reassembly: []string{"Tell me more."}},
				}},
			},
		}
		e, err := New(scr, nil)
		require.NoError(t, err)
		assert.Len(t, e.matchers["(.*)my (.* @family)"], 2)
	})
}

func TestGreetFarewell(t *testing.T) {
	t.Run("From Script", func(t *testing.T) {
		scr := &script.Script{
			Greetings: []string{"Hello there."},
			Farewells: []string{"See you."},
		}
		e, err := New(scr, nil)
		require.NoError(t, err)
		assert.Equal(t, "Hello there.", e.Greet())
		assert.Equal(t, "See you.", e.Farewell())
	})

	t.Run("Empty Sections", func(t *testing.T) {
		e, err := New(&script.Script{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Hello, I am Eliza.", e.Greet())
		assert.Equal(t, "Goodbye.", e.Farewell())
	})
}

func TestRespondFallback(t *testing.T) {
	e, err := New(&script.Script{}, nil)
	require.NoError(t, err)

	// Empty fallbacks and empty memory always yield the default, so
	// repeated turns are deterministic
	for range 3 {
		assert.Equal(t, "Go on.", e.Respond(""))
	}
	assert.Equal(t, "Go on.", e.Respond("no keywords in here"))
}

func TestRespondGoto(t *testing.T) {
	t.Run("Defined Target", func(t *testing.T) {
		scr := &script.Script{
			Keywords: []script.Keyword{
				{Key: "trigger", Rank: 1, Rules: []script.Rule{
					{Decomposition: "(.*)", Reassembly: []string{"GOTO topic"}},
				}},
				{Key: "topic", Rules: []script.Rule{
					{Decomposition: "(.*)", Reassembly: []string{"Redirected fine."}},
				}},
			},
		}
		e, err := New(scr, nil)
		require.NoError(t, err)
		assert.Equal(t, "Redirected fine.", e.Respond("trigger"))
	})

	t.Run("Unknown Target Skipped", func(t *testing.T) {
		scr := &script.Script{
			Keywords: []script.Keyword{
				{Key: "trigger", Rules: []script.Rule{
					{Decomposition: "(.*)", Reassembly: []string{"GOTO missing", "Recovered."}},
				}},
			},
		}
		e, err := New(scr, nil)
		require.NoError(t, err)
		assert.Equal(t, "Recovered.", e.Respond("trigger"))
	})

	t.Run("Cyclic Redirections Bounded", func(t *testing.T) {
		scr := &script.Script{
			Keywords: []script.Keyword{
				{Key: "ping", Rules: []script.Rule{
					{Decomposition: "(.*)", Reassembly: []string{"GOTO pong"}},
				}},
				{Key: "pong", Rules: []script.Rule{
					{Decomposition: "(.*)", Reassembly: []string{"GOTO ping"}},
				}},
			},
		}
		e, err := New(scr, nil)
		require.NoError(t, err)
		// Must terminate and fall through to the default fallback
		assert.Equal(t, "Go on.", e.Respond("ping"))
	})
}

func TestRespondMemory(t *testing.T) {
	memScript := func() *script.Script {
		return &script.Script{
			Keywords: []script.Keyword{
				{Key: "x", Rules: []script.Rule{
					{Memorise: true, Decomposition: "(.*)", Reassembly: []string{"Saved $1."}},
					{Decomposition: "(.*)", Reassembly: []string{"Noted."}},
				}},
			},
		}
	}

	t.Run("Deferred Delivery", func(t *testing.T) {
		e, err := New(memScript(), nil)
		require.NoError(t, err)

		// The memorise rule stores its assembly; the next rule answers
		assert.Equal(t, "Noted.", e.Respond("x marks the spot"))
		// A keyword-less turn pops the memory instead of the fallback
		assert.Equal(t, "Saved x marks the spot.", e.Respond("nothing here"))
		// Memory drained; back to the fallback
		assert.Equal(t, "Go on.", e.Respond("nothing here"))
	})

	t.Run("Capped Queue", func(t *testing.T) {
		e, err := New(memScript(), nil)
		require.NoError(t, err)

		for i := 1; i <= memoryLimit+1; i++ {
			assert.Equal(t, "Noted.", e.Respond(fmt.Sprintf("x number %d", i)))
		}
		// The oldest entry was dropped when the queue overflowed
		assert.Equal(t, "Saved x number 2.", e.Respond("nothing here"))
	})
}

func TestRespondMalformedRules(t *testing.T) {
	t.Run("Bad Capture Reference Recoverable", func(t *testing.T) {
		scr := &script.Script{
			Keywords: []script.Keyword{
				{Key: "x", Rules: []script.Rule{
					{Decomposition: "(.*)", Reassembly: []string{"Out of range $7."}},
					{Decomposition: "(.*)", Reassembly: []string{"Still works."}},
				}},
			},
		}
		e, err := New(scr, nil)
		require.NoError(t, err)
		assert.Equal(t, "Still works.", e.Respond("x"))
	})

	t.Run("Uncompilable Rule Recoverable", func(t *testing.T) {
		scr := &script.Script{
			Keywords: []script.Keyword{
				{Key: "x", Rules: []script.Rule{
					{Decomposition: "(.*x", Reassembly: []string{"Never selectable."}},
					{Decomposition: "(.*)", Reassembly: []string{"Still works."}},
				}},
			},
		}
		e, err := New(scr, nil)
		require.NoError(t, err)
		assert.Equal(t, "Still works.", e.Respond("x"))
	})
}
