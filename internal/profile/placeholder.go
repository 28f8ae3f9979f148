package profile

import (
	"strings"
	"unicode"
)

const DefaultCompanyName = "Your Company"

var placeholderNames = []string{"New Company", DefaultCompanyName}

// IsPlaceholder reports whether name is one of the default company names
// handed out before the member picked a real one.
func IsPlaceholder(name string) bool {
	for _, p := range placeholderNames {
		if strings.EqualFold(name, p) {
			return true
		}
	}
	return false
}

// DeriveName builds a company name from an email address: the local part split
// on separators, followed by the first label of the domain, each token capitalized.
// "jane@acme.com" becomes "Jane Acme". It returns "" when nothing usable remains.
func DeriveName(email string) string {
	local, domain := email, ""
	if at := strings.LastIndex(email, "@"); at >= 0 {
		local, domain = email[:at], email[at+1:]
	}

	if dot := strings.Index(domain, "."); dot >= 0 {
		domain = domain[:dot]
	}

	tokens := append(splitTokens(local), splitTokens(domain)...)
	for i, t := range tokens {
		tokens[i] = capitalize(t)
	}

	return strings.Join(tokens, " ")
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+' || unicode.IsSpace(r)
	})
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
