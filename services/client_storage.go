package services

import (
	"encoding/json"

	"rental-admin/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClientStorage is the persistent key/value storage of one browser.
type ClientStorage struct {
	DB  *gorm.DB
	SID string
}

func NewClientStorage(db *gorm.DB, sid string) *ClientStorage {
	return &ClientStorage{DB: db, SID: sid}
}

// Get decodes the value stored under key into out. It reports false when
// the key is absent.
func (s *ClientStorage) Get(key string, out any) (bool, error) {
	var entry models.StorageEntry
	err := s.DB.Where("sid = ? AND storage_key = ?", s.SID, key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "read storage key %s", key)
	}
	if len(entry.Value) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(entry.Value, out); err != nil {
		return false, errors.Wrapf(err, "decode storage key %s", key)
	}
	return true, nil
}

// Set stores value under key, replacing any previous value.
func (s *ClientStorage) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode storage key %s", key)
	}
	entry := models.StorageEntry{SID: s.SID, Key: key, Value: raw}
	err = s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sid"}, {Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	return errors.Wrapf(err, "write storage key %s", key)
}

// Remove deletes the given keys.
func (s *ClientStorage) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.DB.Where("sid = ? AND storage_key IN ?", s.SID, keys).Delete(&models.StorageEntry{}).Error
	return errors.Wrap(err, "remove storage keys")
}
