package mockapi

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

const tokenTTL = 24 * time.Hour

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signinResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type authHandler struct {
	state     *state
	jwtSecret string
}

// Signup registers a plain (non-admin) account.
func (h *authHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	if _, exists := h.state.accounts[req.Email]; exists {
		return domain.ErrEmailTaken
	}
	h.state.addAccountLocked(req.Name, req.Email, req.Password, "")

	return c.JSON(http.StatusCreated, h.state.accounts[req.Email].user)
}

// Signin verifies the password and issues a bearer token.
func (h *authHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.state.mu.Lock()
	acct, ok := h.state.accounts[req.Email]
	h.state.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		return domain.ErrInvalidCredentials
	}

	token, err := h.generateToken(acct.user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, signinResponse{User: acct.user, Token: token})
}

func (h *authHandler) generateToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"email": user.Email,
		"name":  user.Name,
		"type":  user.Type,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}
