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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/h3nc4/GoEliza/internal/eliza"
	"github.com/h3nc4/GoEliza/internal/logger"
)

func main() {
	// Initialize logger; ELIZA_DEBUG traces the selection pipeline
	log, err := logger.New(os.Getenv("ELIZA_DEBUG") != "")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if len(os.Args) != 2 {
		_, _ = fmt.Fprintln(os.Stderr, "Usage: goeliza <script path>")
		os.Exit(1)
	}

	if err := run(os.Args[1], log); err != nil {
		log.Fatal("Session failed", zap.Error(err))
	}
}

func run(scriptPath string, log *zap.Logger) error {
	bot, err := eliza.FromFile(scriptPath, log)
	if err != nil {
		return fmt.Errorf("failed to start eliza: %w", err)
	}

	rl, err := readline.New(color.GreenString("> "))
	if err != nil {
		return fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	return chat(bot, rl, os.Stdout)
}

// Read a single line of user input
type lineReader interface {
	Readline() (string, error)
}

// Loop over user input until /quit or end of input, printing the bot's
// side of the conversation
func chat(bot *eliza.Eliza, in lineReader, out io.Writer) error {
	say := color.New(color.FgCyan)
	_, _ = say.Fprintln(out, bot.Greet())

	for {
		line, err := in.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				break
			}
			return fmt.Errorf("failed to read line: %w", err)
		}

		if strings.TrimSpace(line) == "/quit" {
			break
		}

		_, _ = say.Fprintln(out, bot.Respond(line))
	}

	_, _ = say.Fprintln(out, bot.Farewell())
	return nil
}
