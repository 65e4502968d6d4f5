// Package accounts handles signup, password login and the admin user
// management operations.
package accounts

import (
	"context" // Request scoped context
	"errors"  // Error inspection
	"strings" // Input normalisation

	"food_ordering/internal/domain" // Importing domain models
	"food_ordering/internal/wallet" // Balance cache invalidation

	"github.com/shopspring/decimal" // Fixed-point money
	"github.com/sirupsen/logrus"    // Logging library
	"golang.org/x/crypto/bcrypt"    // Password hashing
	"gorm.io/gorm"                  // GORM ORM library
)

// Service manages user accounts
type Service struct {
	db      *gorm.DB           // Storage client
	wallets *wallet.Controller // Used to drop cached balances; may be nil
	cost    int                // bcrypt cost
}

// NewService creates an account service
func NewService(db *gorm.DB, wallets *wallet.Controller) *Service {
	return &Service{db: db, wallets: wallets, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost, mainly to keep tests fast
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

// normalizeEmail makes email lookups case-insensitive
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a user with role "user" and an empty wallet
func (s *Service) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	var existing int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, domain.StorageError(err)
	}
	if existing > 0 {
		return nil, domain.ErrEmailAlreadyExists
	}
	// Hash the password and create the user
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, domain.Wrap(domain.ErrStorage.WithMessage("Failed to hash password"), err)
	}
	user := domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleUser,
		Wallet:   decimal.Zero,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// A concurrent signup can still win the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailAlreadyExists
		}
		logrus.WithFields(logrus.Fields{"email": email, "error": err.Error()}).Error("User insert failed")
		return nil, domain.Wrap(domain.ErrStorage.WithMessage("Insert error"), err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "type": "signup"}).Info("User created")
	return &user, nil
}

// Login checks a password against the stored hash
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, domain.StorageError(err)
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logrus.WithField("user_id", user.ID).Warn("Login rejected")
		return nil, domain.ErrInvalidPassword
	}
	return &user, nil
}

// Get returns a user by id
func (s *Service) Get(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return &user, nil
}

// ListUsers returns every user, newest first
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := s.db.WithContext(ctx).Order("id desc").Find(&users).Error; err != nil {
		return nil, domain.StorageError(err)
	}
	return users, nil
}

// UserUpdate carries the admin-editable fields of a user
type UserUpdate struct {
	Name   string          // Display name
	Role   string          // user or admin
	Wallet decimal.Decimal // New balance
}

// UpdateUser overwrites name, role and balance of a user
func (s *Service) UpdateUser(ctx context.Context, id uint, in UserUpdate) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.ErrMissingFields
	}
	if !domain.IsValidRole(in.Role) {
		return domain.ErrInvalidRole
	}
	if in.Wallet.IsNegative() || !in.Wallet.Equal(in.Wallet.Round(2)) || in.Wallet.GreaterThan(wallet.MaxAmount) {
		return domain.ErrInvalidAmount
	}
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"name":   in.Name,
		"role":   in.Role,
		"wallet": in.Wallet.Round(2),
	})
	if res.Error != nil {
		logrus.WithFields(logrus.Fields{"user_id": id, "error": res.Error.Error()}).Error("User update failed")
		return domain.Wrap(domain.ErrStorage.WithMessage("DB update error"), res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
	}
	if s.wallets != nil {
		s.wallets.Invalidate(ctx, id)
	}
	logrus.WithFields(logrus.Fields{"user_id": id, "role": in.Role, "wallet": in.Wallet.String()}).Info("User updated by admin")
	return nil
}

// DeleteUser removes a user together with their orders
func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.User{}, id)
		if res.Error != nil {
			return domain.Wrap(domain.ErrStorage.WithMessage("Delete failed"), res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.Order{}).Error; err != nil {
			return domain.Wrap(domain.ErrStorage.WithMessage("Delete failed"), err)
		}
		return nil
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindStorage {
			logrus.WithFields(logrus.Fields{"user_id": id, "error": err.Error()}).Error("User delete failed")
		}
		return err
	}
	if s.wallets != nil {
		s.wallets.Invalidate(ctx, id)
	}
	logrus.WithField("user_id", id).Info("User deleted")
	return nil
}
