// Package project locates and materializes generated project directories.
//
// A project directory is derived from the application name alone, so
// generating twice with the same name targets the same directory. When the
// directory already exists, Materialize captures the carried state (the
// .env secrets file, plus any --keep patterns) before the template tree is
// copied over it and writes that state back afterwards.
//
// Concurrent runs against the same project directory are not supported.
// Nothing here locks the directory; the second run may capture a half
// written .env from the first.
package project
