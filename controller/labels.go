package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/safeops/payloadeye/addrbook"
	"github.com/safeops/payloadeye/utils"
)

type AddressController struct {
	Book addrbook.Resolver
}

func (ac *AddressController) Routers(routers gin.IRouter) {
	api := routers.Group("/address")
	{
		api.GET("/:address/labels", ac.FindLabelByAddress)
	}
}

// FindLabelByAddress resolves one address to its address-book name on the
// requested chain.
func (ac *AddressController) FindLabelByAddress(c *gin.Context) {
	chain := utils.GetChainFromQuery(c.Query(utils.ChainKey))
	address := strings.ToLower(c.Param("address"))
	if address == "" {
		c.JSON(
			http.StatusOK,
			gin.H{
				"code": http.StatusBadRequest,
				"msg":  "the address argument in the path is empty",
			})
		return
	}
	label := ac.Book.NameOf(chain, address)
	if label == "" {
		label = utils.SentinelNotFound
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": gin.H{
		"chain":   chain,
		"address": address,
		"label":   label,
	}})
}
