package main

import (
	"github.com/gin-gonic/gin"

	"EduAble/internal/app"
	"EduAble/internal/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
