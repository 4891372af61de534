package replacements

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/wpstack/pkg/project"
	"github.com/arthur-debert/wpstack/pkg/settings"
)

const (
	renewFlag   = "--force-renewal"
	stagingFlag = "--staging"

	directiveIndent = "        "
)

var domainSeparator = regexp.MustCompile(`,\s*`)

// SplitDomains splits a comma separated domain list. Whitespace after a
// comma is dropped and trailing empty entries are discarded.
func SplitDomains(list string) []string {
	parts := domainSeparator.Split(list, -1)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func derive(d Derivation, s settings.Settings, root string) (string, error) {
	domains := SplitDomains(s.Get(settings.Domains))

	switch d {
	case ServerNames:
		return strings.Join(domains, " "), nil
	case CertbotDomains:
		flags := make([]string, len(domains))
		for i, domain := range domains {
			flags[i] = "-d " + domain
		}
		return strings.Join(flags, " "), nil
	case CertbotMode:
		if s.Get(settings.CertbotMode) == "live" {
			return renewFlag, nil
		}
		return stagingFlag, nil
	case SSLCertificates:
		lines := make([]string, 0, 2*len(domains))
		for _, domain := range domains {
			lines = append(lines,
				fmt.Sprintf("%sssl_certificate /etc/letsencrypt/live/%s/fullchain.pem;", directiveIndent, domain),
				fmt.Sprintf("%sssl_certificate_key /etc/letsencrypt/live/%s/privkey.pem;", directiveIndent, domain),
			)
		}
		return strings.Join(lines, "\n"), nil
	case ProjectDirectory:
		return project.Directory(root, s), nil
	}
	return "", fmt.Errorf("unknown derivation %s", d)
}

func basicAuth(s settings.Settings) string {
	return strings.Join([]string{
		fmt.Sprintf("%sauth_basic \"%s\";", directiveIndent, s.Get(settings.ApplicationName)),
		directiveIndent + "auth_basic_user_file /etc/nginx/auth/.htpasswd;",
	}, "\n")
}
