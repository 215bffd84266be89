package dto

import (
	"github.com/google/uuid"
)

type FileOwner struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type AdminFileResponse struct {
	FileResponse
	Owner *FileOwner `json:"owner"` // nil when the account no longer exists
}

type AdminUserResponse struct {
	UserResponse
	FileCount int64 `json:"fileCount"`
}

type UserFilesResponse struct {
	User  UserResponse   `json:"user"`
	Files []FileResponse `json:"files"`
}

type AdminStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalFiles    int64 `json:"totalFiles"`
	TotalAdmins   int64 `json:"totalAdmins"`
	RegularUsers  int64 `json:"regularUsers"`
	TotalAnalyses int64 `json:"totalAnalyses"`
}

type AdminStatsResponse struct {
	Stats       AdminStats          `json:"stats"`
	RecentFiles []AdminFileResponse `json:"recentFiles"`
	RecentUsers []UserResponse      `json:"recentUsers"`
}

type LogQueryRequest struct {
	Level  string `query:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Module string `query:"module" validate:"omitempty,max=64"`
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
}

type LogEntryResponse struct {
	Id        string                 `json:"id"` // MD5 of the raw line, not a UUID
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Module    string                 `json:"module"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type LogPageResponse struct {
	Logs  []LogEntryResponse `json:"logs"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
