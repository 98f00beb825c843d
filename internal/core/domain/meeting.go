package domain

import "time"

const StatusCompleted = "Completed"

type MeetingRecord struct {
	ID             string    `json:"id"`
	SourceFileName string    `json:"sourceFileName"`
	CreatedAt      time.Time `json:"createdAt"`
	DisplayDate    string    `json:"displayDate"`
	DisplayTime    string    `json:"displayTime"`
	Status         string    `json:"status"`
}
