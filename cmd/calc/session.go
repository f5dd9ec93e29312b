package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	calc "github.com/somecho/cli-calculator"
)

const help = `Enter an expression to evaluate it, or "let name = expression" to define a
variable for later lines.

operators:  + - * / %  and parentheses; - also negates
functions:  sqrt floor ceil cos sin tan (one operand)
            pow(x, y) log(x, base)
            max min (two or more operands)

commands:
  :vars   list defined variables
  :help   print this help
  :quit   exit
`

const historyFile = ".calc_history"

var errQuit = errors.New("quit")

var errcolor = color.New(color.FgRed)

// session holds the variables defined by earlier lines and the settings for
// evaluating and printing later ones.
type session struct {
	ctx    *calc.Context
	scan   []calc.ScanOption
	verb   string
	echo   bool
	tokens bool

	out  io.Writer
	errs io.Writer

	// failures counts lines that failed to scan, parse, or evaluate.
	failures int
}

func newSession(o *options, out, errs io.Writer) (*session, error) {
	ctx, err := o.context()
	if err != nil {
		return nil, err
	}
	s := session{
		ctx:    ctx,
		scan:   o.scanopts(),
		verb:   o.verb + "\n",
		echo:   o.echo,
		tokens: o.tokens,
		out:    out,
		errs:   errs,
	}
	return &s, nil
}

// exec runs one line of input. Errors are printed before being returned. A
// failed line leaves the session's variables as they were.
func (s *session) exec(line string) error {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return nil
	case strings.HasPrefix(line, ":"):
		return s.command(line)
	}
	toks, err := calc.Tokenize(line, s.scan...)
	if err != nil {
		return s.fail(err)
	}
	if s.tokens {
		s.printTokens(toks)
	}
	a, err := calc.Parse(toks)
	if err != nil {
		return s.fail(err)
	}
	if s.echo {
		fmt.Fprintf(s.out, "%v : ", a)
	}
	r, err := s.ctx.Eval(a)
	if err != nil {
		if s.echo {
			fmt.Fprintln(s.out)
		}
		return s.fail(err)
	}
	if _, ok := a.Assigns(); ok {
		if s.echo {
			fmt.Fprintln(s.out)
		}
		return nil
	}
	fmt.Fprintf(s.out, s.verb, r)
	return nil
}

func (s *session) command(line string) error {
	switch strings.ToLower(line) {
	case ":quit", ":q":
		return errQuit
	case ":vars":
		for _, nm := range s.ctx.Names() {
			v, _ := s.ctx.Lookup(nm)
			fmt.Fprintf(s.out, "%s = "+s.verb, nm, v)
		}
	case ":help":
		fmt.Fprint(s.out, help)
	default:
		return s.fail(fmt.Errorf("unknown command %s; type :help for commands", line))
	}
	return nil
}

func (s *session) printTokens(toks []calc.Token) {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v@%d", tok, tok.Col)
	}
	fmt.Fprintln(s.out, b.String())
}

func (s *session) fail(err error) error {
	s.failures++
	errcolor.Fprintln(s.errs, err)
	return err
}

// batch runs each line of r in turn.
func batch(s *session, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s.exec(sc.Text()) == errQuit {
			return nil
		}
	}
	return sc.Err()
}

// interactive runs lines from the terminal with line editing and history.
// Ctrl+C abandons the current line and Ctrl+D ends the session.
func interactive(s *session) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("> ")
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			return nil
		case err != nil:
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if s.exec(line) == errQuit {
			return nil
		}
	}
}
