package pyext

import "strings"

// CFlags converts the host compiler's include directories and a target's
// macro definitions into a CGO_CFLAGS value: one -I flag per directory
// followed by one -D flag per macro, space-joined.
//
// The function is pure and preserves input order; callers wanting sorted
// output must sort beforehand.
func CFlags(includeDirs []string, macros []Macro) string {
	args := make([]string, 0, len(includeDirs)+len(macros))
	for _, dir := range includeDirs {
		args = append(args, "-I"+dir)
	}
	for _, macro := range macros {
		if macro.Value == nil {
			args = append(args, "-D"+macro.Name)
		} else {
			args = append(args, "-D"+macro.Name+"="+*macro.Value)
		}
	}
	return strings.Join(args, " ")
}
