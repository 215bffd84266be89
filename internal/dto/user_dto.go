package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

type DashboardStats struct {
	TotalFiles    int64     `json:"totalFiles"`
	TotalAnalyses int64     `json:"totalAnalyses"`
	JoinedDate    time.Time `json:"joinedDate"`
}

type DashboardResponse struct {
	Stats       DashboardStats `json:"stats"`
	RecentFiles []FileResponse `json:"recentFiles"`
}
