// Package model defines the database entities of the fleetpanel application.
package model

import (
	"time"

	"github.com/fleetpanel/fleetpanel/util/json_util"
)

// User is a registered account. The password is only ever stored as a
// bcrypt hash; the Password field carries raw form input and is never
// persisted or serialized.
type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"uniqueIndex;not null;size:25"`
	Password     string `json:"-" gorm:"-"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
}

// Vehicle is a fleet entry. Vehicles are global and carry no owner;
// any authenticated user may manage any vehicle.
type Vehicle struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Brand string `json:"brand" form:"brand" gorm:"not null;size:50"`
	Model string `json:"model" form:"model" gorm:"not null;size:50"`
	Year  int    `json:"year" form:"year" gorm:"not null"`
}

// AuditRecord captures one authenticated mutating request.
type AuditRecord struct {
	Id        int                  `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestId string               `json:"requestId" gorm:"size:36;index"`
	UserId    int                  `json:"userId" gorm:"index"`
	Username  string               `json:"username"`
	Action    string               `json:"action"`
	Resource  string               `json:"resource"`
	ClientIp  string               `json:"clientIp"`
	UserAgent string               `json:"userAgent"`
	Details   json_util.RawMessage `json:"details" gorm:"type:text"`
	CreatedAt time.Time            `json:"createdAt" gorm:"index"`
}
