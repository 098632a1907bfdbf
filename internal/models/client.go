package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/access"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Client is a debtor of a user. Notes are always issued to a client.
type Client struct {
	DefaultModel
	User     User      `json:"-"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:client_name_user"`
	Name     string    `gorm:"uniqueIndex:client_name_user"`
	Document string    // CPF or CNPJ
	Phone    string
	Email    string
	Address  string
	Note     string
}

func (c *Client) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Document = strings.TrimSpace(c.Document)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	c.Note = strings.TrimSpace(c.Note)

	if c.Name == "" {
		return ErrClientNameEmpty
	}

	return nil
}

// CreateClient creates the client if its user is within the client limit of
// their effective plan. Counting and inserting happen in one transaction.
func CreateClient(db *gorm.DB, client *Client, limits access.Limits, now time.Time) error {
	return transaction(db, func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			// Serializes client creation per user. SQLite has a single writer anyway.
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var user User
		err := q.First(&user, "id = ?", client.UserID).Error
		if err != nil {
			return err
		}

		err = user.CheckClientLimit(tx, limits, now)
		if err != nil {
			return err
		}

		return tx.Create(client).Error
	})
}

// Notes returns all notes issued to the client.
func (c Client) Notes(db *gorm.DB) ([]Note, error) {
	var notes []Note
	err := db.Where(&Note{ClientID: c.ID}).Order("start_date ASC, created_at ASC").Find(&notes).Error
	return notes, err
}

// DeleteClient deletes the client of the user together with all of its notes
// and their payments.
//
// Every step only deletes what exists, so deleting a client that does not
// exist or was partially deleted is not an error.
func DeleteClient(db *gorm.DB, userID, clientID uuid.UUID) error {
	return transaction(db, func(tx *gorm.DB) error {
		notes := tx.Model(&Note{}).Select("id").Where("user_id = ? AND client_id = ?", userID, clientID)

		err := tx.Where("note_id IN (?)", notes).Delete(&Payment{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("user_id = ? AND client_id = ?", userID, clientID).Delete(&Note{}).Error
		if err != nil {
			return err
		}

		return tx.Where("id = ? AND user_id = ?", clientID, userID).Delete(&Client{}).Error
	})
}
