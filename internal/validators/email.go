package validators

import (
	"net"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmailSyntaxValid hace solo el chequeo sintáctico; alcanza para el email
// opcional del formulario público de reservas.
func IsEmailSyntaxValid(email string) bool {
	return emailRe.MatchString(email)
}

// IsEmailDomainValid verifica además que el dominio resuelva (MX o A).
// Se usa en el registro de barberos, donde un email inválido duele más.
func IsEmailDomainValid(email string) bool {
	if !IsEmailSyntaxValid(email) {
		return false
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
