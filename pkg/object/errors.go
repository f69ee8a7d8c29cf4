package object

import "errors"

// Sentinel errors from the taxonomy in spec.md §7. Callers branch on these
// with errors.Is; wrapping with %w preserves them as the diagnostic
// propagates up to the command surface.
var (
	ErrBadArguments    = errors.New("bad arguments")
	ErrBadDigest       = errors.New("bad digest")
	ErrMissing         = errors.New("object missing")
	ErrCorruptObject   = errors.New("corrupt object")
	ErrCorruptTree     = errors.New("corrupt tree")
	ErrCorruptDelta    = errors.New("corrupt delta")
	ErrCorruptStream   = errors.New("corrupt stream")
	ErrCorruptPack     = errors.New("corrupt pack")
	ErrUnresolvedDelta = errors.New("unresolved delta")
	ErrTransport       = errors.New("transport error")
	ErrFilesystemIO    = errors.New("filesystem I/O error")
)
