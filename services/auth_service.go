package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rkant062/fitback/config"
	"github.com/rkant062/fitback/models"
	"github.com/rkant062/fitback/utils"

	"gorm.io/gorm"
)

func RegisterUser(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user with that email or username", ErrAlreadyExists)
		}
		return nil, err
	}
	return &user, nil
}

func AuthenticateUser(email, password string) (string, *models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user)
	if result.Error != nil {
		return "", nil, fmt.Errorf("%w: user", ErrNotFound)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, fmt.Errorf("%w: incorrect password", ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}
