package echoapi

import (
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/identity"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = core.CleanString(r.Email, true /* lower */)
	return core.Validate.Struct(r)
}

type LoginResponse struct {
	Token    string            `json:"token"`
	Identity identity.Identity `json:"user"`
}

type SearchResponse struct {
	Data  []identity.SearchHit `json:"data"`
	Total int                  `json:"total"`
}
