package handler

import (
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities
    "time"     // expiry timestamps in responses

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/hostel-room-booking/internal/config" // app configuration
    "github.com/iliyamo/hostel-room-booking/internal/model"  // fixed accounts and roles
    "github.com/iliyamo/hostel-room-booking/internal/utils"  // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for the login endpoint.  There is no
// registration and no refresh flow: the demo ships exactly two credential
// pairs (one student, one admin) built at startup, and a session is nothing
// more than a short-lived JWT carrying the active role.
type AuthHandler struct {
    Cfg      config.Config
    Accounts []model.Account
}

func NewAuthHandler(cfg config.Config, accounts []model.Account) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Accounts: accounts}
}

// ----- DTOs -----

type loginReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

type loginResp struct {
    AccountID string    `json:"account_id"`
    Role      string    `json:"role"`
    Token     string    `json:"token"`
    Expires   time.Time `json:"expires"`
}

// Login verifies a credential pair against the two fixed accounts and
// returns a session token.  Unknown usernames and wrong passwords are
// indistinguishable in the response.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Username = strings.ToLower(strings.TrimSpace(req.Username))
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
    }

    for _, acc := range h.Accounts {
        if acc.Username != req.Username {
            continue
        }
        if !utils.VerifyPassword(acc.PasswordHash, req.Password) {
            break
        }
        tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, acc.ID, acc.Role, h.Cfg.AccessTTLMin)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
        }
        return c.JSON(http.StatusOK, loginResp{
            AccountID: acc.ID,
            Role:      acc.Role,
            Token:     tok.Token,
            Expires:   tok.Exp,
        })
    }
    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
}

// Me returns the identity stored in the session token.  Useful for the
// presentation layer to restore its role flag after a reload.
func (h *AuthHandler) Me(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "account_id": c.Get("account_id"),
        "role":       c.Get("role"),
    })
}
