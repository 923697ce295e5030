package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
//
// Parameters:
//
//	args         — the command-line arguments (usually os.Args[1:])
//	allowedFlags — list of allowed flag names (e.g. []string{"-c", "--config"})
//
// Returns:
//
//	A slice containing the allowed flags and their values (if provided separately).
func FilterArgs(args []string, allowedFlags []string) []string {
	// Convert the list of allowed flags into a map for O(1) lookup
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	result := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		name := arg
		if idx := strings.Index(arg, "="); idx >= 0 {
			name = arg[:idx]
		}

		if _, ok := allowed[name]; !ok {
			continue
		}

		result = append(result, arg)

		// flag and value supplied as two separate args
		if name == arg && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			result = append(result, args[i+1])
			i++
		}
	}
	return result
}

// JsonConfigFlags scans os.Args for the -c/-config flags and returns the
// JSON config file path, or an empty string if neither flag was passed.
// Other flags are ignored so each component can parse its own set later.
func JsonConfigFlags() string {
	args := FilterArgs(os.Args[1:], []string{"-c", "-config", "--config"})

	fs := flag.NewFlagSet("jsonconfig", flag.ContinueOnError)
	short := fs.String("c", "", "json config file path")
	long := fs.String("config", "", "json config file path")

	if err := fs.Parse(args); err != nil {
		return ""
	}

	if *short != "" {
		return *short
	}
	return *long
}
