package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserController 账号信息接口，唯一不要求身份头的入口
type UserController struct {
	Email string
}

// GetUser 返回配置的账号邮箱，未配置时返回null
func (uc *UserController) GetUser(c *gin.Context) {
	if uc.Email == "" {
		c.JSON(http.StatusOK, gin.H{"email": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": uc.Email})
}
