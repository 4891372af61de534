// Package editor implements the interactive settings menu.
//
// The menu is an explicit state machine (Editor) driven by whole input
// lines, plus a Console adapter that does the terminal I/O. Tests feed the
// Editor scripted lines and inspect its state and Settings without any
// console at all.
//
//	Display ──Displayed──▶ AwaitSelection ──field selector──▶ EditField
//	   ▲                      │    │                            │
//	   └──────────────────────┼────┼───────── non-blank value ──┘
//	                          │    └── "q" ──▶ Aborted
//	                          └─────── "w" ──▶ Committed
//
// Invalid selections and blank values are reported as recoverable errors
// and leave both the state and the Settings untouched.
package editor
