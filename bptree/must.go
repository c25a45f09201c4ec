package bptree

import "fmt"

// must panics if cond is false. It is reserved for configuration and
// invariant violations that indicate a bug in the caller rather than a
// runtime condition this package can recover from, the same role
// CheckErr/PanicIfErr play in the teacher's packages.
func must(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
