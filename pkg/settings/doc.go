// Package settings holds the generator settings: a closed, ordered set of
// named string fields that drive project generation.
//
// Settings values are immutable. Every edit goes through Settings.Merge,
// which returns a new value, so a Settings captured by one component is
// never changed underneath it by another.
//
// # Persisted form
//
// Settings are persisted as a flat YAML mapping (generator-settings.yml) and
// may also be read from TOML. Loading layers the file over Defaults using
// koanf:
//
//  1. Defaults() through a confmap provider
//  2. the file (YAML or TOML by extension)
//  3. optionally WPSTACK_<FIELD> environment variables (ApplyEnv)
//
// Keys missing from the file keep their default. Keys the generator does not
// know are carried through Load and Serialize untouched but are never read
// by anything else. Keys written with a leading colon (":domains") load as
// the plain field name.
package settings
