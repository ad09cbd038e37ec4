// Package service implements the business logic of the fleetpanel
// application: account lifecycle, vehicle management, auditing, and server
// status reporting.
package service

import (
	"errors"

	"github.com/fleetpanel/fleetpanel/database"
	"github.com/fleetpanel/fleetpanel/database/model"
	"github.com/fleetpanel/fleetpanel/logger"
	"github.com/fleetpanel/fleetpanel/util/crypto"

	"gorm.io/gorm"
)

// Expected account-lifecycle outcomes. Anything else coming out of the user
// service is a persistence failure and must be surfaced as a generic error.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordConfirm   = errors.New("password confirmation required")
	ErrPasswordMismatch  = errors.New("password confirmation mismatch")
)

// UserService owns the account records: registration, credential checks,
// profile updates and account deletion. Passwords are stored bcrypt-hashed
// only.
type UserService struct{}

// Register creates a new account. The username must not be taken; the unique
// index on username backs the pre-check, so two concurrent registrations
// cannot both succeed. No hash is computed when the name is already taken.
func (s *UserService) Register(username string, password string, confirmPassword string) (*model.User, error) {
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).
		Where("username = ?", username).
		Count(&count).
		Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
	}
	err = db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race against a concurrent registration.
		return nil, ErrDuplicateUsername
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies a username/password pair. It returns nil both for an
// unknown username and for a wrong password, so a caller cannot tell the
// two cases apart.
func (s *UserService) CheckUser(username string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil
	}

	return user
}

// GetUser resolves an account by id. Returns ErrUserNotFound when the record
// no longer exists, which callers treat as an anonymous session.
func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile replaces the username and, when a new password is supplied,
// the password hash. The second return value reports whether the password
// changed, which forces the caller to invalidate the current session.
//
// Unlike registration-time checks alone, the username is re-checked for
// uniqueness here as well; renaming onto a taken name fails with
// ErrDuplicateUsername.
func (s *UserService) UpdateProfile(id int, username string, password string, confirmPassword string) (*model.User, bool, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, false, ErrUserNotFound
	} else if err != nil {
		return nil, false, err
	}

	passwordChanged := false
	if password != "" {
		if confirmPassword == "" {
			return nil, false, ErrPasswordConfirm
		}
		if password != confirmPassword {
			return nil, false, ErrPasswordMismatch
		}
		hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
		if err != nil {
			return nil, false, err
		}
		user.PasswordHash = hashedPassword
		passwordChanged = true
	}

	if username != user.Username {
		var count int64
		err = db.Model(model.User{}).
			Where("username = ? AND id <> ?", username, id).
			Count(&count).
			Error
		if err != nil {
			return nil, false, err
		}
		if count > 0 {
			return nil, false, ErrDuplicateUsername
		}
	}
	user.Username = username

	err = db.Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, false, ErrDuplicateUsername
	}
	if err != nil {
		return nil, false, err
	}
	return user, passwordChanged, nil
}

// DeleteUser removes an account. Deleting an id that no longer exists is a
// no-op.
func (s *UserService) DeleteUser(id int) error {
	db := database.GetDB()
	return db.Delete(&model.User{}, id).Error
}
