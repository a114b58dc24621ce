package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"opalclean-api/res/session"
	"opalclean-api/res/verify"
	"opalclean-api/res/wizard"
)

// createWizard starts a fresh booking session
func (s *server) createWizard(c *gin.Context) {
	state := wizard.NewState()
	sessionID := uuid.New().String()

	if err := s.Sessions.Set(c.Request.Context(), sessionID, &state); err != nil {
		s.Logger.Error("failed to create wizard session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, s.buildWizardView(sessionID, &state))
}

// getWizard returns the current state and a freshly computed price summary
func (s *server) getWizard(c *gin.Context) {
	sessionID := c.Param("id")

	state, ok := s.loadSession(c, sessionID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.buildWizardView(sessionID, state))
}

// applyWizardAction runs one intent through the reducer and persists the
// resulting state. Submission has its own endpoint; begin_submit intents
// posted here are rejected.
func (s *server) applyWizardAction(c *gin.Context) {
	sessionID := c.Param("id")

	var action wizard.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if action.Type == wizard.ActionBeginSubmit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "use the submit endpoint"})
		return
	}

	state, ok := s.loadSession(c, sessionID)
	if !ok {
		return
	}

	next, err := s.Engine.Apply(c.Request.Context(), *state, action)
	if err != nil {
		s.Logger.Error("failed to apply wizard action", zap.Error(err), zap.String("action", string(action.Type)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply action"})
		return
	}

	if err := s.Sessions.Set(c.Request.Context(), sessionID, &next); err != nil {
		s.Logger.Error("failed to save wizard session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	c.JSON(http.StatusOK, s.buildWizardView(sessionID, &next))
}

// submitWizardInput carries the bot-verification token issued to the client
type submitWizardInput struct {
	VerificationToken string `json:"verificationToken"`
}

// submitWizard performs the one irreversible transition: verification,
// validation, then the submission collaborator. On validation failure the
// earliest failing section is opened and no submission happens; on
// collaborator failure the state is preserved for a manual retry.
func (s *server) submitWizard(c *gin.Context) {
	sessionID := c.Param("id")

	var input submitWizardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	state, ok := s.loadSession(c, sessionID)
	if !ok {
		return
	}

	if s.Verifier != nil {
		err := s.Verifier.Verify(c.Request.Context(), input.VerificationToken, c.ClientIP())
		if errors.Is(err, verify.ErrVerificationFailed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "verification failed"})
			return
		}
		if err != nil {
			s.Logger.Error("verification service unavailable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "verification unavailable, please retry"})
			return
		}
	}

	next, err := s.Engine.Apply(c.Request.Context(), *state, wizard.Action{Type: wizard.ActionBeginSubmit})

	// Persist whatever the engine left us with, success or not, so a retry
	// picks up exactly where the user stopped.
	if saveErr := s.Sessions.Set(c.Request.Context(), sessionID, &next); saveErr != nil {
		s.Logger.Error("failed to save wizard session", zap.Error(saveErr))
	}

	if errors.Is(err, wizard.ErrSubmissionFailed) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "booking could not be submitted, please try again"})
		return
	}
	if err != nil {
		s.Logger.Error("submit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "booking could not be submitted"})
		return
	}

	if !next.Completed {
		// A completion predicate failed; the view shows which section opened
		c.JSON(http.StatusUnprocessableEntity, s.buildWizardView(sessionID, &next))
		return
	}

	c.JSON(http.StatusOK, s.buildWizardView(sessionID, &next))
}

// loadSession fetches the wizard state, writing the error response on failure
func (s *server) loadSession(c *gin.Context, sessionID string) (*wizard.State, bool) {
	state, err := s.Sessions.Get(c.Request.Context(), sessionID)
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	if err != nil {
		s.Logger.Error("failed to load wizard session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return nil, false
	}
	return state, true
}
