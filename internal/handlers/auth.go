package handlers

import (
	"database/sql"
	"net/http"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/database"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/models"
	"storefront-backend/internal/state"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userQueries  *database.UserQueries
	orderQueries *database.OrderQueries
	states       *state.Store
	jwtSecret    string
}

func NewAuthHandler(db *sql.DB, states *state.Store, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userQueries:  database.NewUserQueries(db),
		orderQueries: database.NewOrderQueries(db),
		states:       states,
		jwtSecret:    jwtSecret,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := h.userQueries.EmailExists(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         models.RoleCustomer,
	}
	if err := h.userQueries.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	accessToken, refreshToken, err := h.issueTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	h.establishSession(c, user)

	c.JSON(http.StatusCreated, models.AuthResponse{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userQueries.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, err := h.issueTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	h.establishSession(c, user)

	c.JSON(http.StatusOK, models.AuthResponse{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout clears the state slot's identity snapshot, order count and
// wishlist. The cart is kept.
func (h *AuthHandler) Logout(c *gin.Context) {
	container := h.states.Load(c.Request.Context(), stateKey(c))
	container.ClearSession(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := auth.ValidateToken(req.RefreshToken, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	user, err := h.userQueries.GetUserByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	accessToken, refreshToken, err := h.issueTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func (h *AuthHandler) issueTokens(user *models.User) (string, string, error) {
	accessToken, err := auth.GenerateAccessToken(user.ID, user.Email, user.Role, h.jwtSecret)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := auth.GenerateRefreshToken(user.ID, user.Email, user.Role, h.jwtSecret)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// establishSession caches the identity snapshot and refreshed order count
// in the user's state slot.
func (h *AuthHandler) establishSession(c *gin.Context, user *models.User) {
	ctx := c.Request.Context()
	container := h.states.Load(ctx, userStateKey(user.ID))
	container.SetUser(ctx, &state.UserSession{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})

	if count, err := h.orderQueries.CountOrdersByUser(user.ID); err == nil {
		container.SetOrderCount(ctx, count)
	}

	// Merge the guest cart accumulated before sign-in.
	if sessionID := middleware.GetSessionID(c); sessionID != "" {
		guest := h.states.Load(ctx, guestStateKey(sessionID))
		for _, item := range guest.Snapshot().Cart {
			container.AddToCart(ctx, state.ProductSnapshot{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.UnitPrice,
				Image:     item.Image,
				Category:  item.Category,
			}, item.Quantity)
		}
		guest.ResetCart(ctx)
	}
}
