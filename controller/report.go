package controller

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safeops/payloadeye/handler"
	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/report"
)

type ReportController struct {
	Env *handler.Env
}

func (rc *ReportController) Routers(routers gin.IRouter) {
	api := routers.Group("/payload")
	{
		api.POST("/report", rc.ReportPayload)
	}
}

// ReportPayload renders the report for one posted transaction-builder
// payload.
func (rc *ReportController) ReportPayload(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(
			http.StatusOK,
			gin.H{
				"code": http.StatusBadRequest,
				"msg":  fmt.Sprintf("read request body is err: %v", err),
			})
		return
	}
	fileName := c.DefaultQuery("filename", "payload.json")
	payload, err := model.DecodePayload(body, fileName)
	if err != nil {
		c.JSON(
			http.StatusOK,
			gin.H{
				"code": http.StatusBadRequest,
				"msg":  err.Error(),
			})
		return
	}

	payloads := []*model.Payload{payload}
	results, err := handler.RunAll(rc.Env, payloads)
	if err != nil {
		c.JSON(
			http.StatusOK,
			gin.H{
				"code": http.StatusInternalServerError,
				"msg":  fmt.Sprintf("report payload %s is err: %v", fileName, err),
			})
		return
	}
	rendered := report.Build(rc.Env.Book, payloads, results)
	text := ""
	if len(rendered) > 0 {
		text = rendered[0].Text
	}
	digest := report.NewDigest(payloads, results, rendered)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": gin.H{
		"text":      text,
		"uncovered": digest.Uncovered,
	}})
}
