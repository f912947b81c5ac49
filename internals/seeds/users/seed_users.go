package users

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/constants"
	authHelper "africrea_backend/internals/features/users/auth/helper"
	"africrea_backend/internals/features/users/user/model"
)

type UserSeed struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      string  `json:"role"`
	Pole      *string `json:"pole"`
	Bio       *string `json:"bio"`
}

func (s UserSeed) toModel() (model.UserModel, error) {
	email := authHelper.NormalizeEmail(s.Email)
	if email == "" {
		return model.UserModel{}, errors.New("email is required")
	}
	role := strings.ToUpper(strings.TrimSpace(s.Role))
	if !constants.IsValidRole(role) {
		return model.UserModel{}, errors.Errorf("%s: unknown role %q", email, s.Role)
	}
	var pole *string
	if s.Pole != nil {
		p := strings.ToUpper(strings.TrimSpace(*s.Pole))
		if !constants.IsValidPole(p) {
			return model.UserModel{}, errors.Errorf("%s: unknown pole %q", email, *s.Pole)
		}
		pole = &p
	}
	hash, err := authHelper.HashPassword(s.Password)
	if err != nil {
		return model.UserModel{}, errors.Wrapf(err, "%s: hash password", email)
	}
	return model.UserModel{
		Email:     email,
		Password:  hash,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Role:      role,
		Pole:      pole,
		Bio:       s.Bio,
		IsActive:  true,
	}, nil
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	log.WithField("file", filePath).Info("reading user seeds")

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrap(err, "read user seeds")
	}
	var inputs []UserSeed
	if err := json.Unmarshal(raw, &inputs); err != nil {
		return errors.Wrap(err, "decode user seeds")
	}

	created := 0
	for _, in := range inputs {
		user, err := in.toModel()
		if err != nil {
			return err
		}

		var n int64
		if err := db.Model(&model.UserModel{}).Where("email = ?", user.Email).Count(&n).Error; err != nil {
			return errors.Wrap(err, "lookup seeded user")
		}
		if n > 0 {
			log.WithField(constants.FldUser, user.Email).Debug("user exists, skipped")
			continue
		}
		if err := db.Create(&user).Error; err != nil {
			return errors.Wrapf(err, "create user %s", user.Email)
		}
		created++
	}
	log.WithField("created", created).Info("users seeded")
	return nil
}
