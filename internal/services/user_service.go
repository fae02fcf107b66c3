package services

import (
	"errors"
	"fmt"

	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/repository"
	"github.com/onside-finance/onside/internal/schemas"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
)

type UserService struct {
	db               *gorm.DB
	userRepo         *repository.UserRepository
	transactionRepo  *repository.TransactionRepository
	subscriptionRepo *repository.SubscriptionRepository
	goalRepo         *repository.GoalRepository
	tokenRepo        *repository.TokenRepository
	passwordCost     int
}

func NewUserService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	transactionRepo *repository.TransactionRepository,
	subscriptionRepo *repository.SubscriptionRepository,
	goalRepo *repository.GoalRepository,
	tokenRepo *repository.TokenRepository,
) *UserService {
	return &UserService{
		db:               db,
		userRepo:         userRepo,
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
		goalRepo:         goalRepo,
		tokenRepo:        tokenRepo,
		passwordCost:     bcrypt.DefaultCost,
	}
}

// SetPasswordCost overrides the bcrypt cost, mostly so tests stay fast.
func (s *UserService) SetPasswordCost(cost int) {
	s.passwordCost = cost
}

// Register creates a user and its profile in one transaction.
func (s *UserService) Register(in schemas.UserCreate) (*models.User, error) {
	taken, err := s.userRepo.UsernameTaken(in.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		PasswordHash: hash,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreateInTx(tx, user); err != nil {
			return translateUserError(err)
		}
		profile := models.NewProfile(user.ID)
		in.Profile.Apply(profile)
		if err := s.userRepo.SaveProfileInTx(tx, profile); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return s.userRepo.FindByID(user.ID)
}

// GetOrCreate returns the user with that username, provisioning an account
// without a password when none exists. Used by the OIDC login flow.
func (s *UserService) GetOrCreate(username, email string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &models.User{Username: username, Email: email}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreateInTx(tx, user); err != nil {
			return translateUserError(err)
		}
		return s.userRepo.SaveProfileInTx(tx, models.NewProfile(user.ID))
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("user provisioned", zap.Uint("user_id", user.ID), zap.String("username", username))
	return s.userRepo.FindByID(user.ID)
}

func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.FindAll()
}

// Update applies the patch to the user and its profile atomically: either
// both rows change or neither does.
func (s *UserService) Update(id uint, patch schemas.UserPatch) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if patch.Username != nil && *patch.Username != user.Username {
		taken, err := s.userRepo.UsernameTaken(*patch.Username, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}

	patch.ApplyUser(user)
	if patch.Password != nil {
		hash, err := s.hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	profile := user.Profile
	if profile == nil {
		profile = models.NewProfile(user.ID)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateInTx(tx, user); err != nil {
			return translateUserError(err)
		}
		if patch.Profile != nil {
			patch.Profile.Apply(profile)
			if err := s.userRepo.SaveProfileInTx(tx, profile); err != nil {
				return fmt.Errorf("failed to save profile: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Warn("user update rolled back", zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}

	return s.userRepo.FindByID(id)
}

// Delete removes the user together with everything it owns.
func (s *UserService) Delete(id uint) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactionRepo.DeleteByUserIDInTx(tx, id); err != nil {
			return err
		}
		if err := s.subscriptionRepo.DeleteByUserIDInTx(tx, id); err != nil {
			return err
		}
		if err := s.goalRepo.DeleteByUserIDInTx(tx, id); err != nil {
			return err
		}
		if err := s.tokenRepo.DeleteByUserIDInTx(tx, id); err != nil {
			return err
		}
		if err := s.userRepo.DeleteProfileInTx(tx, id); err != nil {
			return err
		}
		return s.userRepo.DeleteInTx(tx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	zap.L().Info("user deleted", zap.Uint("user_id", id), zap.String("username", user.Username))
	return nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func translateUserError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUsernameTaken
	}
	return err
}
