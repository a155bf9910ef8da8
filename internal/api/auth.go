package api

import "github.com/soundclone/soundclone/internal/catalog"

// Restore recovers the session behind the ambient cookie, if any.
// Returns ErrUnauthorized when no valid session exists.
func (c *Client) Restore() (catalog.SessionUser, catalog.User, error) {
	var out wireUser
	if err := c.get("/api/auth", &out); err != nil {
		return catalog.SessionUser{}, catalog.User{}, err
	}
	return userToCatalog(out)
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. The session cookie lands in
// the client's jar.
func (c *Client) Login(email, password string) (catalog.SessionUser, catalog.User, error) {
	var out wireUser
	if err := c.post("/api/auth/login", loginBody{Email: email, Password: password}, &out); err != nil {
		return catalog.SessionUser{}, catalog.User{}, err
	}
	return userToCatalog(out)
}

type signupBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account and authenticates as it.
func (c *Client) Signup(username, email, password string) (catalog.SessionUser, catalog.User, error) {
	var out wireUser
	if err := c.post("/api/auth/signup", signupBody{Username: username, Email: email, Password: password}, &out); err != nil {
		return catalog.SessionUser{}, catalog.User{}, err
	}
	return userToCatalog(out)
}

// Logout terminates the server-side session.
func (c *Client) Logout() error {
	return c.get("/api/auth/logout", nil)
}
