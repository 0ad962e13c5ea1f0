package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Principal is the caller of a request. A nil *Principal is an anonymous caller.
type Principal struct {
	UserID    uint
	Username  string
	IsAdmin   bool
	TokenID   string
	ExpiresAt time.Time
}

func (p *Principal) Authenticated() bool {
	return p != nil && p.UserID != 0
}

func (p *Principal) Admin() bool {
	return p.Authenticated() && p.IsAdmin
}

func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the caller stored by the authentication middleware,
// or nil for anonymous requests.
func PrincipalFrom(c *gin.Context) *Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*Principal)
	return p
}
