package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/safeops/payloadeye/controller"
	"github.com/safeops/payloadeye/handler"
	"github.com/safeops/payloadeye/middleware"
)

func addRouters(r gin.IRouter, env *handler.Env) {
	addHealthRouter(r)
	apiV1 := setV1Group(r)
	addrCtrl := controller.AddressController{Book: env.Book}
	addrCtrl.Routers(apiV1)
	reportCtrl := controller.ReportController{Env: env}
	reportCtrl.Routers(apiV1)
}

func setV1Group(r gin.IRouter) gin.IRouter {
	return r.Group("/api/v1", middleware.CheckAPIKEY())
}

func addHealthRouter(r gin.IRouter) {
	r.GET("/health", func(context *gin.Context) {
		context.JSON(http.StatusOK, fmt.Sprintf("running on %v", time.Now()))
	})
}
