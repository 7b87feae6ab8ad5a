// Package flagx holds small helpers for components that parse only their
// own subset of os.Args.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed (and their values) from
// args. Both "-f value" and "-f=value" forms are recognized. A flag followed
// by another dash-prefixed token is treated as having no separate value.
//
// The result is never nil.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := known[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := known[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// SourceFiles is the set of optional configuration files named on the
// command line.
type SourceFiles struct {
	// JSON is the path given with -c or -config.
	JSON string
	// Env is the path given with -env; it points to a dotenv file.
	Env string
}

// ConfigSourceFlags extracts -c/-config and -env from os.Args without
// touching any other flag. Missing flags yield empty paths.
func ConfigSourceFlags() SourceFiles {
	var src SourceFiles

	args := FilterArgs(os.Args[1:], []string{"-c", "-config", "-env"})

	fs := flag.NewFlagSet("sources", flag.ContinueOnError)
	fs.StringVar(&src.JSON, "config", "", "path to JSON config file")
	fs.StringVar(&src.JSON, "c", "", "path to JSON config file (short)")
	fs.StringVar(&src.Env, "env", "", "path to dotenv file")
	_ = fs.Parse(args)

	return src
}
