package domain

// Credentials is the token pair issued on login.
//
// Both tokens are opaque for the client: only Access is attached to requests.
type Credentials struct {
	Access  string
	Refresh string
}

func (c Credentials) Empty() bool {
	return c.Access == ""
}
