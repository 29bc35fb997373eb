package request

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
}

type Register struct {
	Name     string `json:"name" binding:"required,max=64"`
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type Login struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required"`
}

type EditPassword struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}
