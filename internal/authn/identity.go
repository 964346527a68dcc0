// Package authn resolves the acting identity for a request and enforces
// the role gates. Identity comes from the signed access-token cookie,
// never from ambient state.
package authn

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Identity struct {
	UserID uint
	Role   string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// EffectiveUserID picks the user id an operation acts on. An admin may
// act on behalf of an explicitly supplied positive id; everyone else
// always acts as themselves. A stray user_id from a non-admin client
// is substituted, not rejected.
func EffectiveUserID(id Identity, requested int) uint {
	if id.IsAdmin() && requested > 0 {
		return uint(requested)
	}
	return id.UserID
}
