package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kbrewster21/league-office-go/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func RegisterPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		RenderTemplate(c, "register.html", nil)
	}
}

func LoginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		RenderTemplate(c, "login.html", nil)
	}
}

func RegisterHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		email := c.PostForm("email")
		password := c.PostForm("password")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to hash password")
			return
		}

		if _, err := store.CreateUser(db, username, email, string(hashedPassword)); err != nil {
			c.String(http.StatusInternalServerError, "Failed to register: %v", err)
			return
		}

		RenderTemplate(c, "register.html", gin.H{
			"Success": true,
		})
	}
}

func LoginHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.PostForm("email")
		password := c.PostForm("password")

		user, err := store.GetUserByEmailOrUsername(db, identifier)
		if err != nil {
			c.String(http.StatusUnauthorized, "Invalid username/email or password")
			return
		}

		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
		if err != nil {
			c.String(http.StatusUnauthorized, "Invalid email or password")
			return
		}

		tokenBytes := make([]byte, 16)
		rand.Read(tokenBytes)
		token := hex.EncodeToString(tokenBytes)

		expiresAt := time.Now().Add(24 * time.Hour)
		if err := store.CreateSession(db, user.ID, token, expiresAt); err != nil {
			c.String(http.StatusInternalServerError, "Failed to create session")
			return
		}

		c.SetCookie("session_token", token, 3600*24, "/", "", false, true)
		c.Redirect(http.StatusFound, "/trades")
	}
}

func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("session_token", "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/login")
	}
}
