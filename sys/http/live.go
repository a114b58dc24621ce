package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"opalclean-api/res/wizard"
)

// liveWizard upgrades the request to a websocket and runs the wizard over
// it: the client streams intents, the server answers every one with the full
// view so the price summary stays in sync without polling. Events on one
// session are handled strictly in arrival order; submission stays on the
// REST endpoint because it carries the verification token.
func (s *server) liveWizard(c *gin.Context) {
	sessionID := c.Param("id")

	state, ok := s.loadSession(c, sessionID)
	if !ok {
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			// In production, only allow connections from the trusted frontend
			if s.Environment == "production" {
				return r.Header.Get("Origin") == s.FrontendURL
			}
			return true
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(s.buildWizardView(sessionID, state)); err != nil {
		return
	}

	for {
		var action wizard.Action
		if err := conn.ReadJSON(&action); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.Logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		if action.Type == wizard.ActionBeginSubmit {
			_ = conn.WriteJSON(gin.H{"error": "use the submit endpoint"})
			continue
		}

		next, err := s.Engine.Apply(c.Request.Context(), *state, action)
		if err != nil {
			_ = conn.WriteJSON(gin.H{"error": "failed to apply action"})
			continue
		}
		if err := s.Sessions.Set(c.Request.Context(), sessionID, &next); err != nil {
			s.Logger.Error("failed to save wizard session", zap.Error(err))
			_ = conn.WriteJSON(gin.H{"error": "failed to save session"})
			continue
		}

		*state = next
		if err := conn.WriteJSON(s.buildWizardView(sessionID, state)); err != nil {
			return
		}
	}
}
