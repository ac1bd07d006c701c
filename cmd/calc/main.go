package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/zephyrtronium/calc"
)

const usage = `usage: calc [-d] [-f format] [-H history] [-e expr]... [expr...]

With no expressions, calc reads expressions interactively.

options:
  -d, --debug print tokens and parse trees
  -e expr     evaluate expr (any number of times)
  -f format   result formatting verb (default %g)
  -H file     history file (default ~/.calc_history)
  -h, --help  print this help
`

const historyFile = ".calc_history"

var (
	errcolor = color.New(color.FgRed)
	dbgcolor = color.New(color.FgCyan)
)

func main() {
	log.SetFlags(0)
	var (
		exprs []string
		verb  = "%g"
		hist  string
		debug bool
	)
	args := longopts(os.Args)
	opts, optind, err := getopt.Getopts(args, "de:f:H:h")
	if err != nil {
		log.Fatalln(err)
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'd':
			debug = true
		case 'e':
			exprs = append(exprs, opt.Value)
		case 'f':
			verb = opt.Value
		case 'H':
			hist = opt.Value
		case 'h':
			io.WriteString(os.Stdout, usage)
			return
		}
	}
	exprs = append(exprs, args[optind:]...)

	s := session{
		env:  calc.NewEnv(),
		verb: verb + "\n",
		dbg:  log.New(io.Discard, "", 0),
	}
	s.setDebug(debug)

	if len(exprs) > 0 {
		ok := true
		for _, src := range exprs {
			ok = s.run(src) && ok
		}
		if !ok {
			os.Exit(1)
		}
		return
	}

	if hist == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		hist = filepath.Join(home, historyFile)
	}
	s.repl(hist)
}

// longopts rewrites the long options --debug and --help to their short
// forms. Option values and arguments after the options are left alone.
func longopts(argv []string) []string {
	r := append([]string(nil), argv...)
	for i := 1; i < len(r); i++ {
		switch r[i] {
		case "--":
			return r
		case "--debug":
			r[i] = "-d"
		case "--help":
			r[i] = "-h"
		case "-e", "-f", "-H":
			// value
			i++
		default:
			if !strings.HasPrefix(r[i], "-") {
				return r
			}
		}
	}
	return r
}

// session is the state of one run of calc.
type session struct {
	env   *calc.Env
	verb  string
	dbg   *log.Logger
	debug bool
}

func (s *session) setDebug(on bool) {
	s.debug = on
	if on {
		s.dbg.SetOutput(color.Error)
	} else {
		s.dbg.SetOutput(io.Discard)
	}
}

func (s *session) repl(hist string) {
	fmt.Println("calc: type an expression, debug to toggle tracing, exit to quit")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(hist); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		f, err := os.Create(hist)
		if err != nil {
			log.Println("saving history:", err)
			return
		}
		ln.WriteHistory(f)
		f.Close()
	}()

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			log.Println(err)
			return
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit":
			return
		case "debug", "dbg":
			s.setDebug(!s.debug)
			if s.debug {
				fmt.Println("Debug mode enabled.")
			} else {
				fmt.Println("Debug mode disabled.")
			}
			ln.AppendHistory(line)
			continue
		}
		ln.AppendHistory(line)
		s.run(line)
	}
}

// run evaluates one expression and prints its result or error. It reports
// whether evaluation succeeded.
func (s *session) run(src string) bool {
	s.trace("input: %q", src)
	toks, err := calc.Tokenize(src)
	if err != nil {
		report("LexError", err)
		return false
	}
	for _, t := range toks {
		s.trace("  %-15v %-6q col %d", t.Kind, t.Text, t.Pos)
	}
	a, err := calc.Parse(toks)
	if err != nil {
		report("ParseError", err)
		return false
	}
	s.trace("ast: %v", a)
	r, err := calc.Evaluate(a, s.env)
	if err != nil {
		report("EvalError", err)
		return false
	}
	if r.IsAssignment() {
		fmt.Printf("%s = "+s.verb, r.Name, r.Value)
	} else {
		fmt.Printf("Result: "+s.verb, r.Value)
	}
	return true
}

func (s *session) trace(format string, args ...interface{}) {
	s.dbg.Print(dbgcolor.Sprintf(format, args...))
}

func report(stage string, err error) {
	errcolor.Fprintf(color.Error, "%s: %v\n", stage, err)
}
