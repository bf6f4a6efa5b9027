package main

import (
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
)

// escapeNegatives rewrites args so negative positional numbers such as
// "convert -40 C F" reach their arguments instead of being scanned as
// short flags. Flags are kept ahead of a "--" terminator and positionals
// from the first negative number on follow it:
//
//	best -1200 mm --system imperial
//	best --system imperial -- -1200 mm
//
// Args that already contain "--", or have no negative positional, are
// returned unchanged. Negative flag values (--cutoff -5) are left to
// kong's hyphen-prefixed parameter support.
func escapeNegatives(app *kong.Application, args []string) []string {
	takesValue := flagArity(app)

	var (
		head, flags, tail []string
		escaped           bool
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args
		case isNegativeNumber(arg):
			escaped = true
			tail = append(tail, arg)
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			flags = append(flags, arg)
			if takesValue(arg) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		case escaped:
			tail = append(tail, arg)
		default:
			head = append(head, arg)
		}
	}
	if !escaped {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, head...)
	out = append(out, flags...)
	out = append(out, "--")
	return append(out, tail...)
}

// flagArity reports whether a flag token consumes the following arg.
// Unknown flags are treated as booleans and left for kong to reject.
func flagArity(app *kong.Application) func(arg string) bool {
	long := map[string]bool{}
	short := map[rune]bool{}
	for _, node := range app.Leaves(false) {
		for _, group := range node.AllFlags(false) {
			for _, f := range group {
				long[f.Name] = !f.IsBool()
				if f.Short != 0 {
					short[f.Short] = !f.IsBool()
				}
			}
		}
	}

	return func(arg string) bool {
		if name, ok := strings.CutPrefix(arg, "--"); ok {
			if strings.Contains(name, "=") {
				return false
			}
			return long[name]
		}
		// "-p" takes the next arg; "-p2" carries its value.
		if r := []rune(arg[1:]); len(r) == 1 {
			return short[r[0]]
		}
		return false
	}
}

func isNegativeNumber(arg string) bool {
	if !strings.HasPrefix(arg, "-") || len(arg) < 2 {
		return false
	}
	_, err := strconv.ParseFloat(arg, 64)
	return err == nil
}
