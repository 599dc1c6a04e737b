package facade

import (
	"reflect"
	"runtime"
	"slices"
	"strings"
)

// maxStackDepth bounds the frames inspected by call-site attribution.
const maxStackDepth = 64

// runtimePackage frames never count as application callers.
const runtimePackage = "runtime"

// selfPackage is the import path of this package. Its frames are always skipped.
//
//nolint:gochecknoglobals // Computed once, never modified.
var selfPackage = reflect.TypeFor[Factory]().PkgPath()

// packageSet is a list of import paths. A path also covers its subpackages.
type packageSet []string

// contains reports whether pkg is one of the paths or lives below one of them.
func (s packageSet) contains(pkg string) bool {
	for _, p := range s {
		if pkg == p || strings.HasPrefix(pkg, p+"/") {
			return true
		}
	}

	return false
}

// with returns a new set extended with pkgs. Blank and duplicate entries are dropped.
func (s packageSet) with(pkgs ...string) packageSet {
	merged := make(packageSet, 0, len(s)+len(pkgs))
	merged = append(merged, s...)

	for _, p := range pkgs {
		p = strings.TrimSuffix(strings.TrimSpace(p), "/")
		if p == "" || slices.Contains(merged, p) {
			continue
		}

		merged = append(merged, p)
	}

	return merged
}

// funcPackage returns the import path part of a fully qualified function name:
//
//	"example.com/app/server.(*Server).Run.func1" -> "example.com/app/server"
//
// Dots in the last path element are escaped as %2e by the linker.
func funcPackage(function string) string {
	start := strings.LastIndexByte(function, '/')
	if start < 0 {
		start = 0
	}

	pkg := function
	if dot := strings.IndexByte(function[start:], '.'); dot >= 0 {
		pkg = function[:start+dot]
	}

	return strings.ReplaceAll(pkg, "%2e", ".")
}

// toFrame converts a runtime frame.
// CallersFrames reports the call PC, one less than the return address;
// PC is restored so a second CallersFrames pass resolves the same frame
// even when the callee was inlined into it.
//
//nolint:gocritic // runtime.Frame is passed by value by CallersFrames.
func toFrame(f runtime.Frame) Frame {
	frame := Frame{
		Function: f.Function,
		File:     f.File,
		Line:     f.Line,
	}

	if f.PC != 0 {
		frame.PC = f.PC + 1
	}

	return frame
}

// locateCaller walks the stack of its caller and returns the first frame whose
// package is neither this package, the runtime, nor in internal.
// When nothing qualifies it returns the nearest frame outside this package
// and found is false. It never panics.
func locateCaller(internal packageSet) (frame Frame, found bool) {
	var pcs [maxStackDepth]uintptr

	// Skip runtime.Callers and locateCaller.
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return Frame{}, false
	}

	var (
		nearest Frame
		frames  = runtime.CallersFrames(pcs[:n])
	)

	for {
		f, more := frames.Next()

		pkg := funcPackage(f.Function)
		if pkg != selfPackage {
			if !nearest.Defined() {
				nearest = toFrame(f)
			}

			if pkg != runtimePackage && !internal.contains(pkg) {
				return toFrame(f), true
			}
		}

		if !more {
			break
		}
	}

	return nearest, false
}

// callerAt returns the frame skip levels above the function calling callerAt.
// skip 0 is that function itself.
func callerAt(skip int) Frame {
	var pcs [1]uintptr

	// Skip runtime.Callers and callerAt.
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return Frame{}
	}

	f, _ := runtime.CallersFrames(pcs[:]).Next()

	return toFrame(f)
}
