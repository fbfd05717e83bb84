package auth

// AuthorityUser is the only authority granted to token holders.
const AuthorityUser = "ROLE_USER"

// Principal is the authenticated identity of one request. It is never persisted.
type Principal struct {
	UserID      int64    `json:"user_id"`
	Email       string   `json:"email"`
	Authorities []string `json:"authorities"`
}

func (p Principal) HasAuthority(a string) bool {
	for _, have := range p.Authorities {
		if have == a {
			return true
		}
	}
	return false
}
