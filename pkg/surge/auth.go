package surge

import "net/http"

// Auth identifies the caller on a single API call. The two
// implementations are [Token] and [Basic]; the interface is closed so
// the set of accepted credential shapes stays explicit.
//
// Credentials are never stored on the [Client]. Each call receives its
// own Auth, which keeps one client usable for many accounts at once.
type Auth interface {
	apply(req *http.Request)
}

// Token authenticates with an API token, normally obtained from
// [Client.Login]. It is sent as a bearer token.
type Token string

func (t Token) apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+string(t))
}

// Basic authenticates with a username and password, normally the
// account email and password during login.
type Basic struct {
	Username string
	Password string
}

func (b Basic) apply(req *http.Request) {
	req.SetBasicAuth(b.Username, b.Password)
}
