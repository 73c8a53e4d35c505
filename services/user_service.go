package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rkant062/fitback/config"
	"github.com/rkant062/fitback/models"

	"gorm.io/gorm"
)

func GetProfile(userID uint) (*models.User, error) {
	var user models.User
	err := config.DB.Preload("Categories").Preload("DefaultTasks").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return &user, nil
}

func UpdateProfile(userID uint, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err := config.DB.Model(&user).Update("username", username).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username %q", ErrAlreadyExists, username)
		}
		return nil, err
	}
	return &user, nil
}
