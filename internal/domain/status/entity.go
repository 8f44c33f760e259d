package status

import "time"

// StatusCheck is one liveness ping recorded by a client (the capture
// extension or the frontend).
type StatusCheck struct {
	ID         string    `gorm:"column:id;primaryKey" json:"id"`
	ClientName string    `gorm:"column:client_name" json:"client_name"`
	Timestamp  time.Time `gorm:"column:timestamp" json:"timestamp"`
}

func (StatusCheck) TableName() string { return "status_checks" }
