package service

import (
	"context"
	"testing"

	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ann := env.createUser(t, "ann", entity.UserRoleUser)
	bob := env.createUser(t, "bob", entity.UserRoleUser)

	req := &dto.AnalyzeRequest{ChartType: "bar", XAxis: "A", YAxis: "B"}
	for i := 0; i < 6; i++ {
		fileId := env.upload(t, ann, "f.xlsx", workbook(t, 1))
		if i < 2 {
			_, err := env.files.Analyze(ctx, ann, fileId, req)
			require.NoError(t, err)
		}
	}
	bobFile := env.upload(t, bob, "g.xlsx", workbook(t, 1))
	_, err := env.files.Analyze(ctx, bob, bobFile, req)
	require.NoError(t, err)

	res, err := env.users.Dashboard(ctx, ann)
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.Stats.TotalFiles)
	assert.Equal(t, int64(2), res.Stats.TotalAnalyses)
	assert.False(t, res.Stats.JoinedDate.IsZero())
	assert.Len(t, res.RecentFiles, 5)
}

func TestDashboardUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.users.Dashboard(context.Background(), entity.Identity{UserId: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
