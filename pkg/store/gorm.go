package store

import (
	"fmt"

	"WaDesk/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// messageRow is the relational shape of one stored message. Position keeps
// the arrival order within a conversation.
type messageRow struct {
	ID            uint   `gorm:"primaryKey"`
	MessageID     string `gorm:"size:128;index"`
	Sender        string `gorm:"size:32;index"`
	Position      int    `gorm:"not null"`
	Body          string `gorm:"type:text"`
	Timestamp     int64
	Status        string `gorm:"size:16"`
	Notes         string `gorm:"type:text"`
	PhoneNumberID string `gorm:"size:64"`
}

func (messageRow) TableName() string { return "messages" }

// GormMirror keeps the durable copy in a relational database instead of a
// flat file, for deployments where the mirror should survive host loss or be
// queried directly. Same contract as FileMirror: Save replaces the whole
// mapping.
type GormMirror struct {
	db *gorm.DB
}

func NewGormMirror(driver, dsn string) (*GormMirror, error) {
	var dial gorm.Dialector
	switch driver {
	case "sqlite":
		dial = sqlite.Open(dsn)
	case "mysql":
		dial = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&messageRow{}); err != nil {
		return nil, err
	}
	return &GormMirror{db: db}, nil
}

func (g *GormMirror) Load() (models.Snapshot, error) {
	var rows []messageRow
	if err := g.db.Order("sender, position").Find(&rows).Error; err != nil {
		return nil, err
	}
	snap := models.Snapshot{}
	for _, r := range rows {
		snap[r.Sender] = append(snap[r.Sender], models.Message{
			ID:                    r.MessageID,
			From:                  r.Sender,
			Text:                  models.Text{Body: r.Body},
			Timestamp:             r.Timestamp,
			Status:                models.Status(r.Status),
			Notes:                 r.Notes,
			BusinessPhoneNumberID: r.PhoneNumberID,
		})
	}
	return snap, nil
}

func (g *GormMirror) Save(snap models.Snapshot) error {
	var rows []messageRow
	for sender, msgs := range snap {
		for i, m := range msgs {
			rows = append(rows, messageRow{
				MessageID:     m.ID,
				Sender:        sender,
				Position:      i,
				Body:          m.Text.Body,
				Timestamp:     m.Timestamp,
				Status:        string(m.Status),
				Notes:         m.Notes,
				PhoneNumberID: m.BusinessPhoneNumberID,
			})
		}
	}
	return g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&messageRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
