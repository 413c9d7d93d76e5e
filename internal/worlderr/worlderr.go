// Package worlderr defines the sentinel error kinds shared across the world
// subsystem. Components wrap one of these with context via fmt.Errorf and
// callers match with errors.Is, mirroring the plain-error idiom the rest of
// the codebase uses.
package worlderr

import "errors"

var (
	// ErrOutOfMemory is returned by the mesh allocator when no arena fits
	// a requested allocation. Callers log it, drop the attempt, and mark
	// the chunk dirty for retry next frame.
	ErrOutOfMemory = errors.New("world: out of memory")

	// ErrInvalidCoordinate marks a block access outside y in [0,256).
	// get_block callers treat it as air; set_block callers treat it as a
	// no-op, so this is rarely surfaced directly.
	ErrInvalidCoordinate = errors.New("world: invalid coordinate")

	// ErrStaleJobResult names a worker result whose job token no longer
	// matches its target's current token. Nothing returns it: the LOD
	// scheduler drops such completions without an error value.
	ErrStaleJobResult = errors.New("world: stale job result")

	// ErrDeviceLost names an RHI upload/draw failure. rhi.Buffer reports
	// no errors, so nothing returns it, and the facade has no device-loss
	// recovery path.
	ErrDeviceLost = errors.New("world: device lost")

	// ErrGeneratorAbort names a generation pipeline stopped by the shared
	// stop flag. Generator.Populate has no stop-flag check and always runs
	// to completion, so nothing returns it.
	ErrGeneratorAbort = errors.New("world: generator aborted")
)
