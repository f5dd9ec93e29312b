// Command calc evaluates single-precision arithmetic expressions.
//
// Each argument is evaluated in order as its own line. With no arguments,
// calc reads lines from standard input, with line editing and history when
// standard input is a terminal. With -s, it serves evaluations over HTTP
// instead.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/mattn/go-isatty"

	calc "github.com/somecho/cli-calculator"
)

const usage = `usage: calc [options] [expression ...]

options:
  -h          print this help and exit
  -e          echo each parsed expression before its result
  -t          print the tokens of each line
  -k          reject words that are not function names
  -p bits     precision of pow and log in bits (default 64)
  -f verb     result format (default %g)
  -g x=expr   define a variable before evaluating (repeatable)
  -s addr     serve /eval and /stats over HTTP on addr
`

type options struct {
	help   bool
	echo   bool
	tokens bool
	kwonly bool
	prec   uint
	verb   string
	addr   string
	given  [][2]string
}

// readFlags parses the options in args and leaves the operands in it.
func readFlags(args *[]string) (*options, error) {
	opts, optind, err := getopt.Getopts(*args, "hetkp:f:g:s:")
	if err != nil {
		return nil, err
	}
	*args = (*args)[optind:]
	o := options{prec: calc.DefaultPrec, verb: "%g"}
	for _, opt := range opts {
		switch opt.Option {
		case 'h':
			o.help = true
		case 'e':
			o.echo = true
		case 't':
			o.tokens = true
		case 'k':
			o.kwonly = true
		case 'p':
			p, err := strconv.ParseUint(opt.Value, 10, 32)
			if err != nil || p == 0 {
				return nil, fmt.Errorf("invalid -p parameter %q", opt.Value)
			}
			o.prec = uint(p)
		case 'f':
			o.verb = opt.Value
		case 'g':
			d := strings.SplitN(opt.Value, "=", 2)
			if len(d) != 2 {
				return nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, opt.Value)
			}
			o.given = append(o.given, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		case 's':
			o.addr = opt.Value
		}
	}
	return &o, nil
}

// context creates the session context with the -g definitions applied in
// order, so later definitions can use earlier ones.
func (o *options) context() (*calc.Context, error) {
	ctx := calc.NewContext(calc.Prec(o.prec))
	for _, d := range o.given {
		nm, vl := d[0], d[1]
		if !isname(nm) {
			return nil, fmt.Errorf("invalid variable name %q", nm)
		}
		a, err := calc.ParseString(vl, o.scanopts()...)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", nm, err)
		}
		r, err := ctx.Eval(a)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", nm, err)
		}
		ctx.Set(nm, r)
	}
	return ctx, nil
}

func (o *options) scanopts() []calc.ScanOption {
	if o.kwonly {
		return []calc.ScanOption{calc.KeywordsOnly()}
	}
	return nil
}

// isname reports whether s scans as exactly one identifier.
func isname(s string) bool {
	toks, err := calc.Tokenize(s)
	return err == nil && len(toks) == 1 && toks[0].Kind == calc.TokenIdent
}

func main() {
	log.SetFlags(0)
	args := os.Args
	o, err := readFlags(&args)
	if err != nil {
		log.Fatal(err)
	}
	if o.help {
		os.Stdout.WriteString(usage)
		return
	}
	s, err := newSession(o, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	switch fd := os.Stdin.Fd(); {
	case o.addr != "":
		serve(o.addr, s)
	case len(args) > 0:
		for _, arg := range args {
			if s.exec(arg) == errQuit {
				break
			}
		}
	case isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd):
		if err := interactive(s); err != nil {
			log.Fatal(err)
		}
	default:
		if err := batch(s, os.Stdin); err != nil {
			log.Fatal(err)
		}
	}
	if s.failures > 0 {
		os.Exit(1)
	}
}
