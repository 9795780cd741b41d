package security

// Principal is a resolved authenticated identity: username plus the authority
// names used for authorization decisions. It is built fresh per authentication
// attempt and never persisted. Password holds the stored hash when the
// principal was loaded from the database, and the empty string (never unset)
// when it was built from token claims.
type Principal struct {
	Username           string   `json:"username"`
	Password           string   `json:"-"`
	Authorities        []string `json:"authorities"`
	AccountExpired     bool     `json:"account_expired"`
	AccountLocked      bool     `json:"account_locked"`
	CredentialsExpired bool     `json:"credentials_expired"`
	Disabled           bool     `json:"disabled"`
}

// HasAuthority reports whether the principal carries the named authority.
func (p *Principal) HasAuthority(name string) bool {
	for _, a := range p.Authorities {
		if a == name {
			return true
		}
	}
	return false
}
