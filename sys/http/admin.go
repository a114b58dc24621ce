package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
	"go.uber.org/zap"

	"opalclean-api/res/store"
)

const maxQuotePageSize = 100

func (s *server) listQuotes(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	filters := store.QuoteFilters{
		Limit:   25,
		OrderBy: "created_at DESC",
	}
	if v := c.Query("status"); v != "" {
		status := store.QuoteStatus(v)
		filters.Status = &status
	}
	if v := c.Query("service"); v != "" {
		filters.ServiceID = &v
	}
	if v := c.Query("suburb"); v != "" {
		filters.Suburb = &v
	}
	if v := c.Query("sameDay"); v != "" {
		sameDay := v == "true"
		filters.SameDay = &sameDay
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		filters.Limit = min(v, maxQuotePageSize)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		filters.Offset = v
	}

	quotes, err := s.Store.Quotes().ListAll(c.Request.Context(), filters)
	if err != nil {
		s.Logger.Error("failed to list quotes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list quotes"})
		return
	}
	total, err := s.Store.Quotes().Count(c.Request.Context(), filters)
	if err != nil {
		s.Logger.Error("failed to count quotes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list quotes"})
		return
	}

	if err := s.decorateQuoteCleaners(c.Request.Context(), quotes); err != nil {
		s.Logger.Error("failed to load cleaners for quotes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list quotes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"total":  total,
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}

// decorateQuoteCleaners attaches the assigned cleaner to each quote in one
// batched lookup over the distinct cleaner ids in the page.
func (s *server) decorateQuoteCleaners(ctx context.Context, quotes []*store.Quote) error {
	ids := make([]string, 0, len(quotes))
	seen := make(map[string]bool, len(quotes))
	for _, quote := range quotes {
		if quote.CleanerID == nil || seen[*quote.CleanerID] {
			continue
		}
		seen[*quote.CleanerID] = true
		ids = append(ids, *quote.CleanerID)
	}
	if len(ids) == 0 {
		return nil
	}

	cleaners, err := s.Store.Cleaners().GetMany(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[string]*store.Cleaner, len(cleaners))
	for i, cleaner := range cleaners {
		if cleaner != nil {
			byID[ids[i]] = cleaner
		}
	}
	for _, quote := range quotes {
		if quote.CleanerID != nil {
			quote.Cleaner = byID[*quote.CleanerID]
		}
	}
	return nil
}

func (s *server) getQuote(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	quote, err := s.Store.Quotes().Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrQuoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
			return
		}
		s.Logger.Error("failed to get quote", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get quote"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

type updateQuoteStatusInput struct {
	Status store.QuoteStatus `json:"status" binding:"required"`
}

func (s *server) updateQuoteStatus(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	var input updateQuoteStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quoteID := c.Param("id")
	if err := s.Store.Quotes().UpdateStatus(c.Request.Context(), quoteID, input.Status); err != nil {
		switch {
		case errors.Is(err, store.ErrQuoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
		case errors.Is(err, store.ErrInvalidStatusTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.Logger.Error("failed to update quote status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update quote"})
		}
		return
	}

	quote, err := s.Store.Quotes().Get(c.Request.Context(), quoteID)
	if err != nil {
		s.Logger.Error("failed to reload quote", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update quote"})
		return
	}

	// The office watches the channel, so cancellations get a ping too.
	if input.Status == store.QuoteStatusCancelled && s.Notifier != nil {
		if err := s.Notifier.NotifyBookingCancelled(c.Request.Context(), quote); err != nil {
			s.Logger.Error("failed to send cancellation notification",
				zap.String("quoteId", quote.ID),
				zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, quote)
}

type assignCleanerInput struct {
	CleanerID string `json:"cleanerId" binding:"required"`
}

func (s *server) assignCleaner(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	var input assignCleanerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quoteID := c.Param("id")
	if err := s.Store.Quotes().AssignCleaner(c.Request.Context(), quoteID, input.CleanerID); err != nil {
		switch {
		case errors.Is(err, store.ErrQuoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
		case errors.Is(err, store.ErrCleanerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "cleaner not found"})
		default:
			s.Logger.Error("failed to assign cleaner", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign cleaner"})
		}
		return
	}

	quote, err := s.Store.Quotes().Get(c.Request.Context(), quoteID)
	if err != nil {
		s.Logger.Error("failed to reload quote", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign cleaner"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *server) getStats(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	days := 30
	if v, err := strconv.Atoi(c.Query("days")); err == nil && v > 0 {
		days = v
	}
	since := time.Now().AddDate(0, 0, -days)

	stats, err := s.Store.Quotes().Stats(c.Request.Context(), since)
	if err != nil {
		s.Logger.Error("failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":  days,
		"stats": stats,
	})
}

func (s *server) listCleaners(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	activeOnly := c.Query("active") == "true"
	cleaners, err := s.Store.Cleaners().List(c.Request.Context(), activeOnly)
	if err != nil {
		s.Logger.Error("failed to list cleaners", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cleaners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleaners": cleaners})
}

type createCleanerInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Suburb    string `json:"suburb"`
	Notes     string `json:"notes"`
}

func (s *server) createCleaner(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	var input createCleanerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cleaner := &store.Cleaner{
		ID:        fmt.Sprintf("clr_%s", xid.New().String()),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Suburb:    input.Suburb,
		Notes:     input.Notes,
		IsActive:  true,
	}
	if err := s.Store.Cleaners().Create(c.Request.Context(), cleaner); err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			c.JSON(http.StatusConflict, gin.H{"error": "a cleaner with this email already exists"})
			return
		}
		s.Logger.Error("failed to create cleaner", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create cleaner"})
		return
	}
	c.JSON(http.StatusCreated, cleaner)
}

func (s *server) getCleaner(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	cleaner, err := s.Store.Cleaners().Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrCleanerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cleaner not found"})
			return
		}
		s.Logger.Error("failed to get cleaner", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cleaner"})
		return
	}
	c.JSON(http.StatusOK, cleaner)
}

type updateCleanerInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Suburb    *string `json:"suburb"`
	Notes     *string `json:"notes"`
	IsActive  *bool   `json:"isActive"`
}

func (s *server) updateCleaner(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	var input updateCleanerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cleaner, err := s.Store.Cleaners().Update(c.Request.Context(), c.Param("id"), store.CleanerUpdate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Suburb:    input.Suburb,
		Notes:     input.Notes,
		IsActive:  input.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCleanerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "cleaner not found"})
		case errors.Is(err, store.ErrUniqueViolation):
			c.JSON(http.StatusConflict, gin.H{"error": "a cleaner with this email already exists"})
		default:
			s.Logger.Error("failed to update cleaner", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cleaner"})
		}
		return
	}
	c.JSON(http.StatusOK, cleaner)
}

func (s *server) deleteCleaner(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	if err := s.Store.Cleaners().Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrCleanerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cleaner not found"})
			return
		}
		s.Logger.Error("failed to delete cleaner", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete cleaner"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
