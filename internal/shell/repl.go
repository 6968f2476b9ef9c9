// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

// historyFileName persists interactive history between runs, in the
// user's home directory.
const historyFileName = ".xgthist"

// Run enters the interactive read-eval loop and blocks until an exit
// request or end of input. Interactive errors are printed and the loop
// continues; Run itself only fails when the terminal cannot be set up.
func (s *Session) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            s.prompt,
		HistoryFile:       historyFile(),
		AutoComplete:      s.completer(),
		InterruptPrompt:   "^C",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	// Close flushes history on every exit path.
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch err {
		case nil:
		case readline.ErrInterrupt:
			continue
		case io.EOF:
			fmt.Fprintln(s.out)
			return nil
		default:
			return err
		}

		quit, err := s.Dispatch(line)
		if err != nil {
			s.printError(err)
		}
		if quit {
			return nil
		}
	}
}

// printError reports a handler error without leaving the loop. Unknown
// verbs print bare; everything else gets the Error prefix.
func (s *Session) printError(err error) {
	if _, ok := err.(*UnknownCommandError); ok {
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

// completer adapts the per-command completion callbacks to readline's
// prefix completer. Verbs complete by themselves; commands with a
// callback complete their argument too.
func (s *Session) completer() readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(s.verbs))
	for _, verb := range s.verbs {
		cmd := s.commands[verb]
		if cmd.complete == nil {
			items = append(items, readline.PcItem(verb))
			continue
		}
		complete := cmd.complete
		items = append(items, readline.PcItem(verb,
			readline.PcItemDynamic(func(line string) []string {
				partial := lastToken(line)
				return complete(partial, line, len(line)-len(partial), len(line))
			})))
	}
	return readline.NewPrefixCompleter(items...)
}

// lastToken returns the token being completed, using the same
// delimiters as the original console (space and equals).
func lastToken(line string) string {
	if i := strings.LastIndexAny(line, " ="); i >= 0 {
		return line[i+1:]
	}
	return line
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(home, historyFileName)
}
