package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tdo/internal/models"
	"tdo/internal/serverdb"
)

// registerRequest is the JSON body for POST /auth/register.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the JSON response for a successful login.
type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// issueToken signs a short-lived access token for the user.
func (s *Server) issueToken(userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// verifyToken validates an access token and returns the subject user id.
func (s *Server) verifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.jwtSecret, nil
		})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("missing subject claim")
	}
	return claims.Subject, nil
}

func publicUser(u *serverdb.User) models.User {
	return models.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// handleRegister handles POST /auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.config.AllowSignup {
		writeError(w, http.StatusForbidden, ErrCodeSignupDisabled, "signups are disabled")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid json body")
		return
	}

	fields := models.FieldErrors{}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		fields["username"] = "username is required"
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		fields["email"] = "valid email is required"
	}
	if len(req.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	if existing, err := s.store.GetUserByUsername(req.Username); err != nil {
		logFor(r.Context()).Error("check username", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to register")
		return
	} else if existing != nil {
		writeValidationError(w, models.FieldErrors{"username": "username is already taken"})
		return
	}
	if existing, err := s.store.GetUserByEmail(req.Email); err != nil {
		logFor(r.Context()).Error("check email", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to register")
		return
	} else if existing != nil {
		writeValidationError(w, models.FieldErrors{"email": "email is already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logFor(r.Context()).Error("hash password", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to register")
		return
	}

	user, err := s.store.CreateUser(req.Username, req.Email, string(hash))
	if err != nil {
		logFor(r.Context()).Error("create user", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to register")
		return
	}

	logFor(r.Context()).Info("user registered", "uid", user.ID, "username", user.Username)
	writeJSON(w, http.StatusCreated, publicUser(user))
}

// handleLogin handles POST /auth/login. Credentials arrive form-encoded
// as username and password; the response carries the bearer token and
// the authenticated user.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid form body")
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "username and password are required")
		return
	}

	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		logFor(r.Context()).Error("login lookup", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to log in")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "incorrect username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "incorrect username or password")
		return
	}

	token, err := s.issueToken(user.ID, time.Now())
	if err != nil {
		logFor(r.Context()).Error("issue token", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to log in")
		return
	}

	s.metrics.RecordLogin()
	logFor(r.Context()).Info("login", "uid", user.ID)
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        publicUser(user),
	})
}

// handleMe handles GET /auth/me.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u := getUserFromContext(r.Context())
	user, err := s.store.GetUserByID(u.UserID)
	if err != nil || user == nil {
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, publicUser(user))
}
