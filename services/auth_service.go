package services

import (
	"smarty/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB       *gorm.DB
	Accounts *AccountService
}

func NewAuthService(db *gorm.DB, accounts *AccountService) *AuthService {
	return &AuthService{DB: db, Accounts: accounts}
}

// Authenticate resolves the account by email and checks the password.
func (s *AuthService) Authenticate(email, password string) (*models.Account, error) {
	account, err := s.Accounts.GetAccountByEmail(email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, NotFoundf("Password isn't valid")
	}

	return account, nil
}

// CanUpdatePassword checks that the requester's account owns the address
// whose password is being changed.
func (s *AuthService) CanUpdatePassword(requesterEmail, targetEmail string) error {
	if requesterEmail != targetEmail {
		return Forbiddenf("Password can be changed only by the account owner")
	}
	return nil
}
