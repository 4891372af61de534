package replacements

import (
	"fmt"

	"github.com/arthur-debert/wpstack/pkg/project"
	"github.com/arthur-debert/wpstack/pkg/settings"
)

// Kind tags how an entry's value is produced.
type Kind int

const (
	// Field copies a single setting.
	Field Kind = iota
	// Constant copies a value fixed when the dictionary is built.
	Constant
	// Derived transforms one or more settings.
	Derived
	// Probe inspects the materialized project directory.
	Probe
	// Secret generates random hex, once per token per pass.
	Secret
)

func (k Kind) String() string {
	switch k {
	case Field:
		return "field"
	case Constant:
		return "constant"
	case Derived:
		return "derived"
	case Probe:
		return "probe"
	case Secret:
		return "secret"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Derivation names a settings transform used by Derived entries.
type Derivation int

const (
	ServerNames Derivation = iota
	CertbotDomains
	CertbotMode
	SSLCertificates
	ProjectDirectory
)

func (d Derivation) String() string {
	switch d {
	case ServerNames:
		return "server-names"
	case CertbotDomains:
		return "certbot-domains"
	case CertbotMode:
		return "certbot-mode"
	case SSLCertificates:
		return "ssl-certificates"
	case ProjectDirectory:
		return "project-directory"
	default:
		return fmt.Sprintf("Derivation(%d)", int(d))
	}
}

// Entry describes how one token is resolved. Only the member matching Kind
// is meaningful.
type Entry struct {
	Token      string
	Kind       Kind
	Field      settings.Field
	Value      string
	Derivation Derivation
	// Path is the probed file, relative to the project directory.
	Path string
}

// Source is a short human description of where the value comes from.
func (e Entry) Source() string {
	switch e.Kind {
	case Field:
		return string(e.Field)
	case Constant:
		return e.Value
	case Derived:
		return e.Derivation.String()
	case Probe:
		return e.Path
	case Secret:
		return fmt.Sprintf("%d random bytes, hex", SecretBytes)
	}
	return ""
}

// Tokens
const (
	TokenCertbotDomains     = "__CERTBOT_DOMAINS__"
	TokenCertbotEmail       = "__CERTBOT_EMAIL__"
	TokenCertbotMode        = "__CERTBOT_MODE__"
	TokenGeneratorDirectory = "__GENERATOR_DIRECTORY__"
	TokenGeneratorFile      = "__GENERATOR_FILE__"
	TokenMySQLImage         = "__MYSQL_IMAGE__"
	TokenMySQLUser          = "__MYSQL_USER__"
	TokenNginxBasicAuth     = "__NGINX_BASIC_AUTH__"
	TokenNginxDomains       = "__NGINX_DOMAINS__"
	TokenNginxImage         = "__NGINX_IMAGE__"
	TokenNginxSSLCerts      = "__NGINX_SSL_CERTS__"
	TokenProjectDirectory   = "__PROJECT_DIRECTORY__"
	TokenRandomPassword     = "__RANDOM_PASSWORD__"
	TokenRandomRootPassword = "__RANDOM_ROOT_PASSWORD__"
	TokenServerDirectory    = "__SERVER_DIRECTORY__"
	TokenWordPressImage     = "__WORDPRESS_IMAGE__"
)

// SecretBytes is the number of random bytes behind each secret.
const SecretBytes = 16

func entries(in Input) []Entry {
	return []Entry{
		{Token: TokenCertbotDomains, Kind: Derived, Derivation: CertbotDomains},
		{Token: TokenCertbotEmail, Kind: Field, Field: settings.CertbotEmail},
		{Token: TokenCertbotMode, Kind: Derived, Derivation: CertbotMode},
		{Token: TokenGeneratorDirectory, Kind: Constant, Value: in.GeneratorDir},
		{Token: TokenGeneratorFile, Kind: Constant, Value: in.GeneratorFile},
		{Token: TokenMySQLImage, Kind: Field, Field: settings.MySQLImage},
		{Token: TokenMySQLUser, Kind: Field, Field: settings.MySQLUsername},
		{Token: TokenNginxBasicAuth, Kind: Probe, Path: project.BasicAuthFile},
		{Token: TokenNginxDomains, Kind: Derived, Derivation: ServerNames},
		{Token: TokenNginxImage, Kind: Field, Field: settings.NginxImage},
		{Token: TokenNginxSSLCerts, Kind: Derived, Derivation: SSLCertificates},
		{Token: TokenProjectDirectory, Kind: Derived, Derivation: ProjectDirectory},
		{Token: TokenRandomPassword, Kind: Secret},
		{Token: TokenRandomRootPassword, Kind: Secret},
		{Token: TokenServerDirectory, Kind: Field, Field: settings.ServerDirectory},
		{Token: TokenWordPressImage, Kind: Field, Field: settings.WordPressImage},
	}
}
