package facadetest

import "github.com/oshokin/logfacade/facade"

// PackagePath is the import path of this package, for facade.WithInternalPackages.
const PackagePath = "github.com/oshokin/logfacade/facade/facadetest"

// Relay writes msg at the info level on behalf of its caller,
// acting as one wrapper layer between application code and the facade.
//
//go:noinline
func Relay(h facade.Handle, msg string) {
	h.Info(msg)
}

// RelayDepth writes msg through depth nested wrapper layers.
//
//go:noinline
func RelayDepth(h facade.Handle, msg string, depth int) {
	if depth <= 1 {
		Relay(h, msg)

		return
	}

	RelayDepth(h, msg, depth-1)
}

// RelayInlined is Relay without the inlining barrier. The compiler folds it
// into its caller, so the wrapper has no physical frame of its own.
func RelayInlined(h facade.Handle, msg string) {
	h.Info(msg)
}
