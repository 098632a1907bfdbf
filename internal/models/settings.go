package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/promissoria/backend/internal/access"
	"gorm.io/gorm"
)

// settingsID is the primary key of the only settings row.
const settingsID = 1

// Settings are the application settings administrators can change at runtime.
type Settings struct {
	ID              uint `json:"-" gorm:"primaryKey"`
	FreeClientLimit int
	ProClientLimit  int
	SupportPhone    string // Chat number users contact to upgrade their plan
	UpdatedAt       time.Time
}

func (s *Settings) BeforeSave(_ *gorm.DB) error {
	s.ID = settingsID
	s.SupportPhone = strings.TrimSpace(s.SupportPhone)

	return nil
}

// Limits returns the client limits per plan.
func (s Settings) Limits() access.Limits {
	return access.Limits{Free: s.FreeClientLimit, Pro: s.ProClientLimit}
}

// UpgradeLink returns a chat link to request a plan upgrade, or an empty string
// if no support phone is configured.
func (s Settings) UpgradeLink(email string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s.SupportPhone)

	if digits == "" {
		return ""
	}

	text := url.QueryEscape(fmt.Sprintf("Olá! Quero assinar o plano Pro. Minha conta: %s", email))
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, text)
}

// GetSettings returns the settings. On first use, they are created from the defaults.
func GetSettings(db *gorm.DB, defaults Settings) (Settings, error) {
	var settings Settings
	err := db.Where(Settings{ID: settingsID}).Attrs(defaults).FirstOrCreate(&settings).Error
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}
