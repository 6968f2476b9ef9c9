// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package shell implements the xgtsh command interpreter: the verb
// registry and dispatch loop, the per-command argument parsers, the job
// and frame report renderers, and the interactive and batch drivers.
// All server access goes through the xgt.Service held by the Session;
// a nil service means the shell is running disconnected.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"xgtsh/cli/internal/xgt"
)

// Prompt is the interactive prompt string.
const Prompt = "xGT>> "

// internalFramePrefix marks server-internal frames hidden from frame
// listings unless verbose mode is on.
const internalFramePrefix = "xgt__"

// completeFunc produces completion candidates for the token between
// start and end within line. partial is the token typed so far.
type completeFunc func(partial, line string, start, end int) []string

// handlerFunc consumes the text trailing a verb and reports whether the
// loop should terminate. Service failures come back as the error; usage
// problems are printed directly and return a nil error.
type handlerFunc func(args string) (bool, error)

// command binds a verb to its handler, a one-line help string, and an
// optional completion callback.
type command struct {
	run      handlerFunc
	help     string
	complete completeFunc
}

// UnknownCommandError reports a verb with no registered handler.
type UnknownCommandError struct {
	Verb string
}

func (e *UnknownCommandError) Error() string {
	return "Unknown command: " + e.Verb
}

// Options configures a new Session.
type Options struct {
	Out           io.Writer // command output, defaults to os.Stdout
	Err           io.Writer // diagnostics, defaults to os.Stderr
	Verbose       bool
	Debug         bool
	ClientVersion string
}

// Session holds the shell state threaded through every handler: the
// service handle, the verbosity and debug toggles, and the immutable
// verb registry built at construction.
type Session struct {
	ctx context.Context
	svc xgt.Service

	out    io.Writer
	errOut io.Writer

	verbose       bool
	debug         bool
	prompt        string
	clientVersion string

	commands map[string]*command
	verbs    []string
}

// NewSession builds a session over svc. A nil svc produces a
// disconnected session whose handlers report "Not connected to a
// server" instead of failing.
func NewSession(svc xgt.Service, opts Options) *Session {
	s := &Session{
		ctx:           context.Background(),
		out:           opts.Out,
		errOut:        opts.Err,
		verbose:       opts.Verbose,
		debug:         opts.Debug,
		prompt:        Prompt,
		clientVersion: opts.ClientVersion,
		commands:      map[string]*command{},
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.errOut == nil {
		s.errOut = os.Stderr
	}
	s.svc = svc
	s.registerAll()
	return s
}

// register adds one verb to the registry. Called only from
// registerAll; the registry is immutable afterwards.
func (s *Session) register(verb string, run handlerFunc, help string, complete completeFunc) {
	s.commands[verb] = &command{run: run, help: help, complete: complete}
	s.verbs = append(s.verbs, verb)
}

func (s *Session) registerAll() {
	s.register("cancel", s.cmdCancel, "Cancel a job", nil)
	s.register("config", s.cmdConfig, "Show or set server configuration", nil)
	s.register("debug", s.cmdDebug, "Set debug on or off", nil)
	s.register("default_namespace", s.cmdDefaultNamespace, "Show or set the default namespace", s.completeNamespace)
	s.register("drop", s.cmdDrop, "Drop a frame", nil)
	s.register("exit", s.cmdExit, "Exit the console", nil)
	s.register("help", s.cmdHelp, "List commands or show help for one command", nil)
	s.register("job", s.cmdJob, "Show detail information on a job or range of jobs", nil)
	s.register("jobs", s.cmdJobs, "Show summary information on jobs", nil)
	s.register("memory", s.cmdMemory, "Show server memory status", nil)
	s.register("namespaces", s.cmdNamespaces, "Show current namespaces", nil)
	s.register("query", s.cmdQuery, "Run a query", nil)
	s.register("save", s.cmdSave, "Save a frame to a file", nil)
	s.register("schema", s.cmdSchema, "Show schema of the specified frame", nil)
	s.register("scroll", s.cmdScroll, "Scroll through frame data", nil)
	s.register("show", s.cmdShow, "Show frame information for a namespace", s.completeNamespace)
	s.register("show_frames", s.cmdShowFrames, "Show all frames in the default namespace", nil)
	s.register("user_labels", s.cmdUserLabels, "Show the current user's security labels", nil)
	s.register("verbose", s.cmdVerbose, "Turn verbose setting on/off", nil)
	s.register("version", s.cmdVersion, "Show version information", nil)
	s.register("zap", s.cmdZap, "Delete all frames in a namespace", s.completeNamespace)
	sort.Strings(s.verbs)
}

// SplitCommand splits an input line into its verb and trailing text.
func SplitCommand(line string) (verb, args string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	parts := strings.SplitN(line, " ", 2)
	verb = parts[0]
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}
	return verb, args
}

// Dispatch runs the handler for one input line. An empty line is a
// no-op. The returned bool is the termination signal; errors are
// reported by the caller according to its mode.
func (s *Session) Dispatch(line string) (bool, error) {
	verb, args := SplitCommand(line)
	if verb == "" {
		return false, nil
	}
	cmd, ok := s.commands[verb]
	if !ok {
		return false, &UnknownCommandError{Verb: verb}
	}
	return cmd.run(args)
}

// connected reports whether a live service is attached, printing the
// standard diagnostic when it is not.
func (s *Session) connected() bool {
	if s.svc == nil {
		fmt.Fprintln(s.out, "Not connected to a server")
		return false
	}
	return true
}
