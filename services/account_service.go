package services

import (
	"errors"

	"smarty/models"

	"gorm.io/gorm"
)

type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

func (s *AccountService) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := s.DB.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Email doesn't exist")
		}
		return nil, err
	}
	return &account, nil
}

// ExistsByEmail rejects an email that is already registered.
func (s *AccountService) ExistsByEmail(email string) error {
	var count int64
	if err := s.DB.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return Conflictf("Account with email %s already exists", email)
	}
	return nil
}
