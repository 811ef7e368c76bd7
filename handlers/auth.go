package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/camden-git/rosterbackend/config"
	"github.com/camden-git/rosterbackend/models"
	"github.com/camden-git/rosterbackend/repository"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthHandler struct {
	UserRepo repository.UserRepository
	Cfg      config.Config
}

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// SetupFirstAdmin creates the first operator account. It refuses once any
// account exists, so it is safe to leave exposed.
func (h *AuthHandler) SetupFirstAdmin(w http.ResponseWriter, r *http.Request) {
	count, err := h.UserRepo.Count()
	if err != nil {
		log.Printf("Error counting users during setup: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to check existing accounts"})
		return
	}
	if count > 0 {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Setup already completed"})
		return
	}

	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(payload.Username) == "" || len(payload.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username required and password must be at least 8 characters"})
		return
	}

	user := &models.User{Username: payload.Username}
	if err := user.SetPassword(payload.Password); err != nil {
		log.Printf("Error hashing password for first admin: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create account"})
		return
	}
	if err := h.UserRepo.Create(user); err != nil {
		log.Printf("Error creating first admin '%s': %v", payload.Username, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create account"})
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login verifies operator credentials and issues a JWT
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	user, err := h.UserRepo.GetByUsername(payload.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error fetching user '%s' during login: %v", payload.Username, err)
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
		return
	}

	if !user.CheckPassword(payload.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
		return
	}

	expirationTime := time.Now().Add(time.Duration(h.Cfg.JWTExpirationHours) * time.Hour)
	claims := &jwt.RegisteredClaims{
		Subject:   fmt.Sprint(user.ID),
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "rosterbackend",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(h.Cfg.JWTSecret))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     tokenString,
		User:      *user,
		ExpiresAt: expirationTime,
	})
}
