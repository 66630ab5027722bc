// README: Auth handlers: register, login, profile, password reset.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roam/internal/http/middleware"
	"roam/internal/modules/user"
)

type registerReq struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	Country     string `json:"country"`
}

type userResponse struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	Username        string   `json:"username"`
	FullName        string   `json:"full_name,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	DateOfBirth     string   `json:"date_of_birth,omitempty"`
	Age             int      `json:"age,omitempty"`
	Country         string   `json:"country,omitempty"`
	ProfileImage    string   `json:"profile_image,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	TravelFrequency string   `json:"travel_frequency,omitempty"`
	Budget          string   `json:"budget,omitempty"`
	TravelReasons   []string `json:"travel_reasons,omitempty"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		FullName:        u.FullName,
		Gender:          u.Gender,
		DateOfBirth:     u.DateOfBirth,
		Age:             u.Age,
		Country:         u.Country,
		ProfileImage:    u.ProfileImage,
		Interests:       u.Interests,
		TravelFrequency: u.TravelFrequency,
		Budget:          u.Budget,
		TravelReasons:   u.TravelReasons,
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	u, err := s.users.Register(c.Request.Context(), user.RegisterCommand{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		FullName:    req.FullName,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Country:     req.Country,
	})
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(u)})
}

type loginReq struct {
	Identifier string `json:"identifier"` // email or username
	Password   string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	u, token, err := s.users.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": toUserResponse(u)})
}

func (s *Server) handleMe(c *gin.Context) {
	u, err := s.users.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(u)})
}

type profileUpdateReq struct {
	FullName        *string   `json:"full_name"`
	Gender          *string   `json:"gender"`
	DateOfBirth     *string   `json:"date_of_birth"`
	Country         *string   `json:"country"`
	ProfileImage    *string   `json:"profile_image"`
	Interests       *[]string `json:"interests"`
	TravelFrequency *string   `json:"travel_frequency"`
	Budget          *string   `json:"budget"`
	TravelReasons   *[]string `json:"travel_reasons"`
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req profileUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	u, err := s.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), user.ProfileUpdate{
		FullName:        req.FullName,
		Gender:          req.Gender,
		DateOfBirth:     req.DateOfBirth,
		Country:         req.Country,
		ProfileImage:    req.ProfileImage,
		Interests:       req.Interests,
		TravelFrequency: req.TravelFrequency,
		Budget:          req.Budget,
		TravelReasons:   req.TravelReasons,
	})
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(u)})
}

func (s *Server) handleDeactivate(c *gin.Context) {
	if err := s.users.Deactivate(c.Request.Context(), middleware.UserID(c)); err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

type forgotPasswordReq struct {
	Email string `json:"email"`
}

func (s *Server) handleForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		writeError(c, http.StatusBadRequest, "email required")
		return
	}
	token, err := s.users.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		writeUserError(c, err)
		return
	}
	if token != "" {
		// Token delivery belongs to the mail layer; logged until that ships.
		s.log.Info("password reset token issued", zap.String("email", req.Email))
	}
	// Same reply whether or not the account exists.
	c.JSON(http.StatusOK, gin.H{"status": "if the account exists, a reset link has been sent"})
}

type resetPasswordReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		writeError(c, http.StatusBadRequest, "token required")
		return
	}
	if err := s.users.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}
