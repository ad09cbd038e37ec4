package service

import (
	"time"

	"github.com/fleetpanel/fleetpanel/database"
	"github.com/fleetpanel/fleetpanel/database/model"
	"github.com/fleetpanel/fleetpanel/util/json_util"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// AuditLogService records authenticated mutating requests for later review.
type AuditLogService struct{}

// LogAction persists one audit record. Details are stored as JSON text.
func (s *AuditLogService) LogAction(userId int, username string, action string, resource string, clientIp string, userAgent string, details map[string]any) error {
	var raw json_util.RawMessage
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return err
		}
		raw = data
	}

	record := &model.AuditRecord{
		RequestId: uuid.NewString(),
		UserId:    userId,
		Username:  username,
		Action:    action,
		Resource:  resource,
		ClientIp:  clientIp,
		UserAgent: userAgent,
		Details:   raw,
		CreatedAt: time.Now(),
	}

	db := database.GetDB()
	return db.Create(record).Error
}

// GetRecent returns up to limit records, newest first.
func (s *AuditLogService) GetRecent(limit int) ([]model.AuditRecord, error) {
	db := database.GetDB()
	var records []model.AuditRecord
	err := db.Model(model.AuditRecord{}).
		Order("created_at desc").
		Limit(limit).
		Find(&records).
		Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteOlderThan removes audit records created before the cutoff and
// returns how many were removed.
func (s *AuditLogService) DeleteOlderThan(cutoff time.Time) (int64, error) {
	db := database.GetDB()
	result := db.Where("created_at < ?", cutoff).Delete(&model.AuditRecord{})
	return result.RowsAffected, result.Error
}
