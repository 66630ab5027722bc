// README: Session memory and location resolution handlers.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roam/internal/modules/session"
)

type sessionMemoryReq struct {
	SessionID string            `json:"session_id"`
	Memory    map[string]string `json:"memory"`
}

func (s *Server) handleSessionMemory(c *gin.Context) {
	var req sessionMemoryReq
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		writeError(c, http.StatusBadRequest, "session_id required")
		return
	}
	sess, err := s.sessions.Load(c.Request.Context(), req.SessionID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	sess.UpdateMemory(req.Memory)
	if err := s.sessions.Save(c.Request.Context(), sess); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"memory": sess.Memory})
}

type resolveLocationReq struct {
	SessionID    string  `json:"session_id"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	LanguageCode string  `json:"language_code"`
}

func (s *Server) handleResolveLocation(c *gin.Context) {
	var req resolveLocationReq
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		writeError(c, http.StatusBadRequest, "session_id required")
		return
	}

	location, err := s.geocode.Reverse(c.Request.Context(), req.Lat, req.Lng, req.LanguageCode)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "reverse geocoding failed")
		return
	}

	sess, err := s.sessions.Load(c.Request.Context(), req.SessionID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	sess.Lat, sess.Lng = req.Lat, req.Lng
	sess.UpdateMemory(map[string]string{
		session.KeyCurrentLocation: location.City,
	})
	if err := s.sessions.Save(c.Request.Context(), sess); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": location})
}
