package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New("unauthorized")
)

const principalKey = "principal"

// Principal is the request-scoped identity. The zero value is an anonymous
// visitor.
type Principal struct {
	RestaurantID   uint
	RestaurantName string
}

func (p Principal) Authenticated() bool {
	return p.RestaurantID != 0
}

// Owned is implemented by every row that belongs to a restaurant.
type Owned interface {
	OwnerID() uint
}

// Authorize reports whether p may act on resource.
func Authorize(p Principal, resource Owned) error {
	if !p.Authenticated() {
		return ErrUnauthenticated
	}
	if resource == nil || resource.OwnerID() != p.RestaurantID {
		return ErrUnauthorized
	}
	return nil
}

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

func PrincipalFrom(c *gin.Context) Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(Principal); ok {
			return p
		}
	}
	return Principal{}
}
