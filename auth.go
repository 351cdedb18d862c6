package main

import (
	"fmt"
	"strings"
	"time"

	"kosman/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser creates an account with the given role. Only admin and owner
// can be self-registered; super_admin accounts come from cmd/create_superadmin.
func RegisterUser(email, password, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email wajib diisi")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password terlalu pendek (min 6)")
	}
	if role != models.RoleAdmin && role != models.RoleOwner {
		return nil, fmt.Errorf("role harus admin atau owner")
	}
	// pre-check existing (optimistic; unique index backs it up)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, errEmailTaken
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Email: email, HashedPassword: hashedPassword, Role: role}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the initial check
			return nil, errEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

var errEmailTaken = fmt.Errorf("email sudah terdaftar")

// Authenticate checks credentials and returns the matching user.
func Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("email atau password salah")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("email atau password salah")
	}
	return user, nil
}

// generateToken issues an HS256 access token carrying the acting principal
// (user id, email, role) used by the role-gate middleware.
func generateToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "already exists")
}
