// Package session wraps the cookie session that carries the logged-in
// identity and the shopping cart across requests. Two concurrent
// requests from the same browser race last-write-wins on the cookie.
//
// The whole session lives in one cookie, so its encoded size is bound
// by securecookie's 4096-byte limit. A cart of a few dozen distinct
// lines fits comfortably; past the limit Save returns an error and the
// stale cookie keeps its previous contents.
package session

import (
	"encoding/gob"

	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/mgarrido/tienda/internal/cart"
)

const Name = "tienda_session"

const (
	userKey = "user"
	cartKey = "cart"
)

// User is the public identity bound to the session at login. The
// password hash never travels here.
type User struct {
	ID     uint
	Nombre string
	Email  string
}

func init() {
	gob.Register(User{})
	gob.Register(&cart.Cart{})
}

func CurrentUser(c echo.Context) (User, bool) {
	s, err := echosession.Get(Name, c)
	if err != nil {
		return User{}, false
	}
	u, ok := s.Values[userKey].(User)
	return u, ok
}

func SetUser(c echo.Context, u User) error {
	s, err := echosession.Get(Name, c)
	if err != nil {
		return err
	}
	s.Values[userKey] = u
	return s.Save(c.Request(), c.Response())
}

// Cart returns the session cart, creating an empty one on first
// access. Mutations are not persisted until SaveCart runs.
func Cart(c echo.Context) *cart.Cart {
	s, err := echosession.Get(Name, c)
	if err == nil {
		if ct, ok := s.Values[cartKey].(*cart.Cart); ok && ct.Items != nil {
			return ct
		}
	}
	return cart.New()
}

func SaveCart(c echo.Context, ct *cart.Cart) error {
	s, err := echosession.Get(Name, c)
	if err != nil {
		return err
	}
	s.Values[cartKey] = ct
	return s.Save(c.Request(), c.Response())
}

// Destroy drops the whole session: identity and cart.
func Destroy(c echo.Context) error {
	s, err := echosession.Get(Name, c)
	if err != nil {
		return err
	}
	s.Options.MaxAge = -1
	s.Values = map[interface{}]interface{}{}
	return s.Save(c.Request(), c.Response())
}
