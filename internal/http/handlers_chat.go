// README: Chat, plan, and places handlers.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roam/internal/http/middleware"
	"roam/internal/intent"
	"roam/internal/maps"
	"roam/internal/service"
	"roam/internal/travel"
)

type chatReq struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := s.chat.Handle(c.Request.Context(), service.ChatCommand{
		SessionID: req.SessionID,
		Message:   req.Message,
		UserID:    middleware.UserID(c),
	})
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reply":      res.Reply,
		"intent":     res.Intent,
		"language":   res.Language,
		"session_id": res.SessionID,
	})
}

type planReq struct {
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	Budget       int      `json:"budget"`
	BudgetLevel  string   `json:"budget_level"`
	Departure    string   `json:"departure_date"`
	Return       string   `json:"return_date"`
	Preferences  []string `json:"preferences"`
	LanguageCode string   `json:"language_code"`
}

func (s *Server) handlePlan(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Origin == "" || req.Destination == "" {
		writeError(c, http.StatusBadRequest, "origin and destination required")
		return
	}

	bundle := s.builder.BuildBundle(c.Request.Context(), travel.Request{
		Origin:        req.Origin,
		Destination:   req.Destination,
		Budget:        req.Budget,
		BudgetLevel:   req.BudgetLevel,
		DepartureDate: req.Departure,
		ReturnDate:    req.Return,
		Preferences:   req.Preferences,
		LanguageCode:  req.LanguageCode,
	})
	c.JSON(http.StatusOK, gin.H{
		"plan":   travel.FormatTravelPlan(bundle, req.LanguageCode),
		"cards":  travel.CardsFromBundle(bundle),
		"bundle": bundle,
	})
}

type placesReq struct {
	Query        string `json:"query"`
	City         string `json:"city"`
	LanguageCode string `json:"language_code"`
}

func (s *Server) handlePlaces(c *gin.Context) {
	var req placesReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		writeError(c, http.StatusBadRequest, "query required")
		return
	}

	category := maps.DetectCategory(req.Query)
	city := req.City
	if city == "" {
		city = intent.SearchCity(req.Query)
	}

	results, err := s.places.Search(c.Request.Context(), category, city, req.LanguageCode, 6)
	if err != nil || len(results) == 0 {
		writeError(c, http.StatusNotFound, "no places found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"reply":   travel.FormatSpecificSearch(category.Label(), city, results, category.CardType()),
	})
}
