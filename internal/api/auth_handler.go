package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"

	"github.com/eventboard/events-api/pkg/events"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *events.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, events.ErrUserExists) {
			s.renderError(w, r, http.StatusBadRequest, "Email already registered")
			return
		}
		s.log.Error("registration failed", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "registration failed")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, newUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, events.ErrInvalidCredentials) {
			s.renderError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.log.Error("login failed", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "login failed")
		return
	}

	render.JSON(w, r, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUserID(w, r)
	if !ok {
		return
	}

	user, err := s.auth.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, events.ErrUserNotFound) {
			s.renderError(w, r, http.StatusNotFound, "user not found")
			return
		}
		s.log.Error("failed to load user", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "failed to load user")
		return
	}

	render.JSON(w, r, newUserResponse(user))
}

type updateProfileRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUserID(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.auth.UpdateProfile(r.Context(), userID, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrUserNotFound):
			s.renderError(w, r, http.StatusNotFound, "user not found")
		case errors.Is(err, events.ErrUserExists):
			s.renderError(w, r, http.StatusBadRequest, "Email already registered")
		default:
			s.log.Error("profile update failed", "error", err)
			s.renderError(w, r, http.StatusInternalServerError, "profile update failed")
		}
		return
	}

	render.JSON(w, r, newUserResponse(user))
}

// currentUserID extracts the authenticated user id from the verified token.
func (s *Server) currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		s.renderError(w, r, http.StatusUnauthorized, "invalid token")
		return 0, false
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusUnauthorized, "invalid token subject")
		return 0, false
	}

	return userID, true
}
