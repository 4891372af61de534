// Package testutil provides utilities for testing wpstack components.
//
// Key components:
//   - TemplateTree: a small in-memory template tree with every well-known
//     file and a representative set of placeholder tokens
//   - NewMemoryFS: afero memory filesystem seeded from a path/content map
//   - File assertions against any afero filesystem
//
// Usage guidelines:
//   - Filesystem tests run on afero.NewMemMapFs with absolute paths
//   - All test data should be defined inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
