package project

import (
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/wpstack/pkg/settings"
)

// DefaultRoot is the directory that holds every generated project.
const DefaultRoot = "applications"

// Paths of well-known files, relative to the project directory.
const (
	CarriedStateFile = ".env"
	PlainConfigFile  = "nginx-conf/nginx.conf"
	SSLConfigFile    = "nginx-conf/nginx-ssl.conf"
	TLSOptionsFile   = "nginx-conf/options-ssl-nginx.conf"
	BasicAuthFile    = "nginx-auth/.htpasswd"
	InstructionsFile = "instructions.txt"
)

var nonIdentifier = regexp.MustCompile(`\W`)

// Sanitize replaces every character outside [A-Za-z0-9_] with '-'.
func Sanitize(name string) string {
	return nonIdentifier.ReplaceAllString(name, "-")
}

// Directory returns the project directory for s under root.
func Directory(root string, s settings.Settings) string {
	if root == "" {
		root = DefaultRoot
	}
	return filepath.Join(root, Sanitize(s.Get(settings.ApplicationName)))
}

// SSLActive reports whether certificates are provisioned, which selects the
// SSL web-server config.
func SSLActive(s settings.Settings) bool {
	return s.Get(settings.CertbotActive) == "yes"
}
