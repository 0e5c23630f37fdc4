package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/chathuri2/CrickInfo/middleware"
	"github.com/chathuri2/CrickInfo/services"
)

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("username, email, and password are required"))
		return
	}

	user, err := h.authService.Register(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := h.signToken(user.ID, string(user.Role), user.Username)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"user":  user,
		"token": token,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	user, err := h.authService.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := h.signToken(user.ID, string(user.Role), user.Username)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"user":  user,
		"token": token,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	user, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Email == "" {
		badRequestResponse(w, r, errors.New("email is required"))
		return
	}

	_, _, err := h.authService.GeneratePasswordResetToken(r.Context(), input.Email)
	if err != nil && !errors.Is(err, services.ErrUserNotFound) {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// Do not reveal whether the address exists.
	response := jsonResponse{
		"message": "if the email address is registered, a reset token has been sent",
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Token == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("token and password are required"))
		return
	}

	if _, err := h.authService.ResetPasswordByToken(r.Context(), input.Token, input.Password); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"message": "password has been reset"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) signToken(userID int, role, name string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"name":    name,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
