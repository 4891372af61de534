// Package filesystem provides the afero filesystems wpstack writes through.
//
// Real runs use NewOS. Dry runs use NewDryRun, which layers an in-memory
// copy-on-write overlay over a read-only view of the disk so a whole
// generation can run without touching anything, then reports what would
// have changed. Tests use NewMemory.
package filesystem
