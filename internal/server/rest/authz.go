package rest

import (
	"slices"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Operation names a privileged action.
type Operation string

const (
	OpRegisterItem Operation = "item.register"
	OpClaimItem    Operation = "item.claim"
	OpItemImage    Operation = "item.image"
	OpRegisterUser Operation = "user.register"
)

// allowedRoles is the whole access policy. Operations missing here are
// denied to everyone.
var allowedRoles = map[Operation][]models.Role{
	OpRegisterItem: {models.RoleSecretary, models.RoleAdmin},
	OpClaimItem:    {models.RoleSecretary, models.RoleAdmin},
	OpItemImage:    {models.RoleSecretary, models.RoleAdmin},
	OpRegisterUser: {models.RoleAdmin},
}

func authorize(id *models.Identity, op Operation) error {
	if id == nil {
		return common.ErrUnauthenticated
	}
	if !slices.Contains(allowedRoles[op], id.Role) {
		return common.ErrForbidden
	}
	return nil
}

// require runs authorize for the caller and writes the error response on
// denial. Handlers return when it reports false.
func (s *HTTPServer) require(c *gin.Context, op Operation) bool {
	if err := authorize(identityOf(c), op); err != nil {
		s.abortWithError(c, err)
		return false
	}
	return true
}
