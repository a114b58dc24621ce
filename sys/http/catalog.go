package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"opalclean-api/res/pricing"
	"opalclean-api/res/wizard"
)

// getCatalog returns the immutable pricing catalog plus the precomputed
// static filters the add-ons step renders.
func (s *server) getCatalog(c *gin.Context) {
	serviceID := c.Query("service")

	c.JSON(http.StatusOK, gin.H{
		"catalog":     s.Catalog,
		"mostPopular": s.Catalog.MostPopularAddOns(),
		"recommended": s.Catalog.RecommendedForService(serviceID),
	})
}

// previewQuote computes a price breakdown for a posted wizard state without
// touching any session. Used by the marketing pages' standalone calculators.
func (s *server) previewQuote(c *gin.Context) {
	state := wizard.NewState()
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if state.Extras == nil {
		state.Extras = map[string]int{}
	}

	c.JSON(http.StatusOK, gin.H{
		"breakdown": pricing.ComputeBreakdown(&state, s.Catalog),
		"combo":     pricing.CupboardComboStatus(state.Extras),
	})
}
