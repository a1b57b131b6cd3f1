// Package cmdpath shortens long command lines for display.
package cmdpath

import (
	"os"
	"strings"
)

const storeRoot = "/nix/store/"

// Step is one pure rewrite of a command line.
type Step func(string) string

// Pipeline applies its steps in order.
type Pipeline []Step

func (p Pipeline) Apply(s string) string {
	for _, step := range p {
		s = step(s)
	}
	return s
}

// DefaultPipeline shortens store paths first, then the home directory
// taken from $HOME.
func DefaultPipeline() Pipeline {
	return Pipeline{ShortenStorePath, ShortenHomePath(os.Getenv("HOME"))}
}

// FormatCommand returns cmd unchanged unless abbr is set.
func FormatCommand(cmd string, abbr bool) string {
	if !abbr {
		return cmd
	}
	return DefaultPipeline().Apply(cmd)
}

// ShortenStorePath rewrites commands living under the package store.
//
//	/nix/store/<hash>-foo-1.0/bin/foo --x  ->  foo --x
//	/nix/store/<hash>-foo-1.0/lib/helper   ->  /nix/store/...helper
//
// A bare store entry with no path below it is left alone.
func ShortenStorePath(s string) string {
	if !strings.HasPrefix(s, storeRoot) {
		return s
	}
	path, args := splitCommand(s)
	rel := strings.Trim(strings.TrimPrefix(path, storeRoot), "/")
	if rel == "" {
		return s
	}
	parts := strings.Split(rel, "/")
	if len(parts) < 2 {
		return s
	}
	last := parts[len(parts)-1]
	if i := strings.LastIndex(path, "/bin/"); i >= 0 && !strings.Contains(path[i+len("/bin/"):], "/") {
		return last + args
	}
	return storeRoot + "..." + last + args
}

// ShortenHomePath returns a step replacing a leading home directory with
// "~/". An empty home disables the step.
func ShortenHomePath(home string) Step {
	home = strings.TrimRight(home, "/")
	return func(s string) string {
		if home == "" {
			return s
		}
		switch {
		case s == home:
			return "~/"
		case strings.HasPrefix(s, home+"/"):
			return "~/" + s[len(home)+1:]
		}
		return s
	}
}

// splitCommand splits off everything from the first whitespace, keeping
// the separator with the arguments.
func splitCommand(s string) (path, args string) {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}
