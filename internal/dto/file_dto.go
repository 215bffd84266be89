package dto

import (
	"encoding/json"
	"time"

	"excel-analytics-be/pkg/chart"
	"excel-analytics-be/pkg/spreadsheet"

	"github.com/google/uuid"
)

// Field names follow the camelCase contract the web client already speaks.

type FileResponse struct {
	Id            uuid.UUID `json:"id"`
	UserId        uuid.UUID `json:"userId"`
	OriginalName  string    `json:"originalName"`
	Filename      string    `json:"filename"`
	Size          int64     `json:"size"`
	MimeType      string    `json:"mimeType"`
	HistoryLength int       `json:"historyLength"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

type UploadFileResponse struct {
	FileId       uuid.UUID `json:"fileId"`
	OriginalName string    `json:"originalName"`
	Columns      []string  `json:"columns"`
	SampleData   [][]any   `json:"sampleData"`
	TotalRows    int       `json:"totalRows"`
}

type FileDataResponse struct {
	Data      []spreadsheet.Row `json:"data"`
	Columns   []string          `json:"columns"`
	TotalRows int               `json:"totalRows"`
}

type AnalyzeRequest struct {
	ChartType string `json:"chartType" validate:"required,max=32"`
	XAxis     string `json:"xAxis" validate:"required,max=255"`
	YAxis     string `json:"yAxis" validate:"required,max=255"`
}

type AnalyzeResponse struct {
	ChartData  chart.Dataset `json:"chartData"`
	AnalysisId uuid.UUID     `json:"analysisId"`
	Sequence   int           `json:"sequence"`
}

type AnalysisRecordResponse struct {
	Id          uuid.UUID       `json:"id"`
	Sequence    int             `json:"sequence"`
	ChartType   string          `json:"chartType"`
	XAxis       string          `json:"xAxis"`
	YAxis       string          `json:"yAxis"`
	GeneratedAt time.Time       `json:"generatedAt"`
	ChartData   json.RawMessage `json:"chartData"`
}

type AnalysisHistoryResponse struct {
	FileId        uuid.UUID                `json:"fileId"`
	HistoryLength int                      `json:"historyLength"`
	Analyses      []AnalysisRecordResponse `json:"analyses"`
}
