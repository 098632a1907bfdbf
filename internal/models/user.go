package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/access"
	"github.com/promissoria/backend/internal/auth"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type User struct {
	DefaultModel
	Email              string `gorm:"uniqueIndex"`
	Name               string
	PasswordHash       string `json:"-"`
	Role               access.Role
	Plan               access.Plan
	PlanExpirationDate *time.Time
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.Email == "" {
		return ErrEmailEmpty
	}

	if u.Role == "" {
		u.Role = access.RoleUser
	}

	if u.Plan == "" {
		u.Plan = access.Free
	}

	return nil
}

func (u *User) AfterFind(tx *gorm.DB) error {
	_ = u.DefaultModel.AfterFind(tx)

	if u.PlanExpirationDate != nil {
		t := u.PlanExpirationDate.In(time.UTC)
		u.PlanExpirationDate = &t
	}

	return nil
}

// SetPassword stores the hash of the password.
func (u *User) SetPassword(password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	return nil
}

// Subject returns the user as seen by the access policy.
func (u User) Subject() access.Subject {
	return access.Subject{ID: u.ID, Role: u.Role}
}

// PlanState returns the stored plan of the user.
func (u User) PlanState() access.State {
	return access.State{Plan: u.Plan, ExpiresAt: u.PlanExpirationDate}
}

// ClientCount returns the number of clients the user has.
func (u User) ClientCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Client{}).Where(&Client{UserID: u.ID}).Count(&count).Error
	return count, err
}

// CheckClientLimit returns ErrClientLimitReached if the user may not
// create another client under their effective plan.
func (u User) CheckClientLimit(db *gorm.DB, limits access.Limits, now time.Time) error {
	count, err := u.ClientCount(db)
	if err != nil {
		return err
	}

	if !access.IsWithinLimits(u.PlanState().Effective(now), int(count), limits) {
		return ErrClientLimitReached
	}

	return nil
}

// Authenticate returns the user with the e-mail address if the password matches.
func Authenticate(db *gorm.DB, email, password string) (User, error) {
	var user User
	err := db.Where(&User{Email: strings.ToLower(strings.TrimSpace(email))}).First(&user).Error
	if errors.Is(err, ErrResourceNotFound) {
		return User{}, auth.ErrInvalidCredentials
	} else if err != nil {
		return User{}, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return User{}, err
	}

	return user, nil
}

// ChangePlan assigns a plan to the target user on behalf of the actor.
func ChangePlan(db *gorm.DB, actor access.Subject, targetID uuid.UUID, plan access.Plan, expiresAt *time.Time, now time.Time) (User, error) {
	var target User
	err := db.First(&target, "id = ?", targetID).Error
	if err != nil {
		return User{}, err
	}

	state, err := access.SetPlan(actor, target.Subject(), plan, expiresAt, now)
	if err != nil {
		return User{}, err
	}

	err = savePlan(db, &target, state)
	if err != nil {
		return User{}, err
	}

	return target, nil
}

// ExpirePlans downgrades all users whose Pro plan has expired and returns
// how many were downgraded.
func ExpirePlans(db *gorm.DB, now time.Time) (int, error) {
	var users []User
	err := db.Where(&User{Plan: access.Pro}).Where("plan_expiration_date <= ?", now.UTC()).Find(&users).Error
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, user := range users {
		state, changed := user.PlanState().Expire(now)
		if !changed {
			continue
		}

		err = savePlan(db, &user, state)
		if err != nil {
			return expired, err
		}

		log.Info().Str("user", user.ID.String()).Msg("Pro plan expired")
		expired++
	}

	return expired, nil
}

func savePlan(db *gorm.DB, user *User, state access.State) error {
	err := db.Model(user).Select("Plan", "PlanExpirationDate").Updates(User{
		Plan:               state.Plan,
		PlanExpirationDate: state.ExpiresAt,
	}).Error
	if err != nil {
		return err
	}

	user.Plan = state.Plan
	user.PlanExpirationDate = state.ExpiresAt
	return nil
}

// EnsureAdmin creates an administrator with the given credentials unless a
// user with the e-mail address exists already.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	var count int64
	err := db.Model(&User{}).Where(&User{Email: strings.ToLower(strings.TrimSpace(email))}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	admin := User{
		Email: email,
		Name:  "Administrator",
		Role:  access.RoleAdmin,
	}

	err = admin.SetPassword(password)
	if err != nil {
		return err
	}

	err = db.Create(&admin).Error
	if err != nil {
		return err
	}

	log.Info().Str("email", admin.Email).Msg("Created administrator")
	return nil
}
