// Package flagx filters command-line arguments so that each configuration
// layer parses only the flags it owns.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Flag names an accepted flag. A Bool flag never takes the following
// argument as its value; it may still be written as -name=false.
type Flag struct {
	Name string
	Bool bool
}

// Value declares a flag that takes a value.
func Value(name string) Flag { return Flag{Name: name} }

// Bool declares a boolean flag.
func Bool(name string) Flag { return Flag{Name: name, Bool: true} }

// FilterArgs returns the arguments belonging to the given flags, keeping
// their order. Supported forms:
//
//	-d postgres://...     value as the next argument
//	-d=postgres://...     value after '='
//	-W                    boolean flag
//
// A value flag takes the next argument only if it does not start with '-'.
func FilterArgs(args []string, flags ...Flag) []string {
	known := make(map[string]Flag, len(flags))
	for _, f := range flags {
		known[f.Name] = f
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := known[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		f, ok := known[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if f.Bool {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFile returns the path given with -c or -config, or "" when neither
// is present. When both appear the last one wins.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, Value("-c"), Value("-config")))

	return path
}
