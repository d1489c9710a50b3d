package token

// Claim mirrors what the identity provider asserts about the caller. The
// service trusts these fields verbatim and never re-authenticates.
type Claim struct {
	Iss      string   `json:"iss"`
	Metadata Metadata `json:"metadata"`
	Aud      string   `json:"aud"`
	Exp      string   `json:"exp"`
}

type Metadata struct {
	UserID        string `json:"user_id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

const RoleAdmin = "admin"

// IsAdmin reports whether the identity provider granted the admin capability.
func (c *Claim) IsAdmin() bool {
	return c.Metadata.Role == RoleAdmin
}
