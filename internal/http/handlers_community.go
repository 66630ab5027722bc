// README: Community trip handlers: publish, browse, my trips, delete.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roam/internal/http/middleware"
	"roam/internal/modules/community"
)

type publishTripReq struct {
	Title        string          `json:"title"`
	Destination  string          `json:"destination"`
	Description  string          `json:"description"`
	DurationDays int             `json:"duration_days"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Itinerary    json.RawMessage `json:"itinerary"`
	Price        int             `json:"price"`
	Currency     string          `json:"currency"`
	CoverImage   string          `json:"cover_image"`
	Tags         []string        `json:"tags"`
	Category     string          `json:"category"`
	BudgetLevel  string          `json:"budget_level"`
}

func (s *Server) handlePublishTrip(c *gin.Context) {
	var req publishTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	trip, err := s.community.Publish(c.Request.Context(), community.PublishCommand{
		CreatorID:    middleware.UserID(c),
		Title:        req.Title,
		Destination:  req.Destination,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Itinerary:    req.Itinerary,
		Price:        req.Price,
		Currency:     req.Currency,
		CoverImage:   req.CoverImage,
		Tags:         req.Tags,
		Category:     req.Category,
		BudgetLevel:  req.BudgetLevel,
	})
	if err != nil {
		writeCommunityError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

func (s *Server) handleBrowseTrips(c *gin.Context) {
	filter := community.BrowseFilter{
		Destination: c.Query("destination"),
		Category:    c.Query("category"),
		BudgetLevel: c.Query("budget_level"),
		MinDays:     queryInt(c, "min_days"),
		MaxDays:     queryInt(c, "max_days"),
		FreeOnly:    c.Query("free_only") == "true",
		Limit:       queryInt(c, "limit"),
	}
	trips, err := s.community.Browse(c.Request.Context(), filter)
	if err != nil {
		writeCommunityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips, "count": len(trips)})
}

func (s *Server) handleGetTrip(c *gin.Context) {
	trip, err := s.community.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeCommunityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

func (s *Server) handleMyTrips(c *gin.Context) {
	trips, err := s.community.MyTrips(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeCommunityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips, "count": len(trips)})
}

func (s *Server) handleDeleteTrip(c *gin.Context) {
	err := s.community.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeCommunityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
