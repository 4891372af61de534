// Package replacements builds the placeholder dictionary applied to a
// materialized project.
//
// Every token maps to an Entry tagged with its Kind. Field and Constant
// entries copy a value verbatim, Derived entries transform settings, Probe
// entries inspect the project directory and Secret entries draw random
// bytes. Resolution goes through a Pass so that a secret token yields the
// same value everywhere it appears during one rewrite.
package replacements
