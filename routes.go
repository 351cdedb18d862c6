package main

import (
	"net/http"

	"kosman/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// setupRoutes wires the /api surface. Reads require any valid token,
// mutations require admin (or super_admin), user management requires
// super_admin. Owner accounts are read-only throughout.
func setupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/auth/register", registerHandler)
	api.POST("/auth/login", loginHandler)

	authed := api.Group("")
	authed.Use(jwtAuthMiddleware())
	{
		authed.GET("/auth/me", meHandler)

		authed.GET("/rooms", listRoomsHandler)
		authed.GET("/rooms/:id", getRoomHandler)
		authed.GET("/tenants", listTenantsHandler)
		authed.GET("/tenants/:id", getTenantHandler)
		authed.GET("/rentals", listRentalsHandler)
		authed.GET("/rentals/:id", getRentalHandler)
		authed.GET("/bills", listBillsHandler)
		authed.GET("/bills/:id", getBillHandler)
		authed.GET("/maintenance", listMaintenanceHandler)
		authed.GET("/maintenance/:id", getMaintenanceHandler)
		authed.GET("/transactions", listTransactionsHandler)
		authed.GET("/transactions/summary", transactionSummaryHandler)
		authed.GET("/transactions/export", exportTransactionsHandler)
		authed.GET("/categories", listCategoriesHandler)
		authed.GET("/dashboard", dashboardHandler)
	}

	admin := api.Group("")
	admin.Use(jwtAuthMiddleware(), requireAdmin())
	{
		admin.POST("/rooms", createRoomHandler)
		admin.PUT("/rooms/:id", updateRoomHandler)
		admin.DELETE("/rooms/:id", deleteRoomHandler)

		admin.POST("/tenants", createTenantHandler)
		admin.PUT("/tenants/:id", updateTenantHandler)
		admin.DELETE("/tenants/:id", deleteTenantHandler)

		admin.POST("/rentals", createRentalHandler)
		admin.POST("/rentals/:id/end", endRentalHandler)

		admin.POST("/bills", createBillHandler)
		admin.POST("/bills/generate-monthly", generateMonthlyBillsHandler)
		admin.POST("/bills/:id/mark-paid", markBillPaidHandler)
		admin.POST("/bills/:id/upload", uploadProofHandler)

		admin.POST("/maintenance", createMaintenanceHandler)
		admin.PUT("/maintenance/:id", updateMaintenanceHandler)

		admin.POST("/transactions", createTransactionHandler)
		admin.POST("/categories", createCategoryHandler)
	}

	super := api.Group("")
	super.Use(jwtAuthMiddleware(), requireSuperAdmin())
	{
		super.GET("/users", listUsersHandler)
		super.DELETE("/users/:id", deleteUserHandler)
	}
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		idFloat, okID := claims["user_id"].(float64)
		if !okID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		c.Set("user_id", uint(idFloat))
		c.Set("email", email)
		c.Set("role", role)
		c.Next()
	}
}

func currentRole(c *gin.Context) string {
	role, _ := c.Get("role")
	s, _ := role.(string)
	return s
}

// requireAdmin gates mutations to admin and super_admin principals.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := currentRole(c)
		if role != models.RoleAdmin && role != models.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "butuh akses admin"})
			return
		}
		c.Next()
	}
}

func requireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentRole(c) != models.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "butuh akses super admin"})
			return
		}
		c.Next()
	}
}

func registerHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := RegisterUser(req.Email, req.Password, req.Role)
	if err != nil {
		status := http.StatusBadRequest
		if err == errEmailTaken {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	tokenString, err := generateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": tokenString, "token_type": "bearer", "user": user})
}

func meHandler(c *gin.Context) {
	idVal, _ := c.Get("user_id")
	id, _ := idVal.(uint)
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
