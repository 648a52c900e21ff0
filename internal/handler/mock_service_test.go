package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/brandish-progression/internal/crafting"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/job"
	"github.com/osse101/brandish-progression/internal/ledger"
	"github.com/osse101/brandish-progression/internal/lootbox"
	"github.com/osse101/brandish-progression/internal/mining"
	"github.com/osse101/brandish-progression/internal/mission"
	"github.com/osse101/brandish-progression/internal/player"
)

// MockPlayerService is a testify mock of player.Service
type MockPlayerService struct {
	mock.Mock
}

var _ player.Service = (*MockPlayerService)(nil)

func result[T any](args mock.Arguments) (T, error) {
	var zero T
	if v := args.Get(0); v != nil {
		zero = v.(T)
	}
	return zero, args.Error(1)
}

func (m *MockPlayerService) GetProfile(ctx context.Context, key domain.ProfileKey) (*player.ProfileView, error) {
	return result[*player.ProfileView](m.Called(ctx, key))
}

func (m *MockPlayerService) Mine(ctx context.Context, key domain.ProfileKey) (*player.Outcome[*mining.Result], error) {
	return result[*player.Outcome[*mining.Result]](m.Called(ctx, key))
}

func (m *MockPlayerService) SetZone(ctx context.Context, key domain.ProfileKey, zoneID string) (*domain.Zone, error) {
	return result[*domain.Zone](m.Called(ctx, key, zoneID))
}

func (m *MockPlayerService) Craft(ctx context.Context, key domain.ProfileKey, blueprintID string) (*player.Outcome[*crafting.Result], error) {
	return result[*player.Outcome[*crafting.Result]](m.Called(ctx, key, blueprintID))
}

func (m *MockPlayerService) EquipTool(ctx context.Context, key domain.ProfileKey, toolID string) (*domain.Tool, error) {
	return result[*domain.Tool](m.Called(ctx, key, toolID))
}

func (m *MockPlayerService) RepairTool(ctx context.Context, key domain.ProfileKey, toolID string) (*ledger.RepairResult, error) {
	return result[*ledger.RepairResult](m.Called(ctx, key, toolID))
}

func (m *MockPlayerService) UpgradeTool(ctx context.Context, key domain.ProfileKey, toolID string) (*ledger.UpgradeResult, error) {
	return result[*ledger.UpgradeResult](m.Called(ctx, key, toolID))
}

func (m *MockPlayerService) JoinJob(ctx context.Context, key domain.ProfileKey, jobID string) (*domain.JobRecord, error) {
	return result[*domain.JobRecord](m.Called(ctx, key, jobID))
}

func (m *MockPlayerService) LeaveJob(ctx context.Context, key domain.ProfileKey, jobID string) error {
	return m.Called(ctx, key, jobID).Error(0)
}

func (m *MockPlayerService) ActivateJob(ctx context.Context, key domain.ProfileKey, jobID string) error {
	return m.Called(ctx, key, jobID).Error(0)
}

func (m *MockPlayerService) Work(ctx context.Context, key domain.ProfileKey) (*player.Outcome[*job.WorkResult], error) {
	return result[*player.Outcome[*job.WorkResult]](m.Called(ctx, key))
}

func (m *MockPlayerService) ClaimSalary(ctx context.Context, key domain.ProfileKey, period string) (*job.SalaryResult, error) {
	return result[*job.SalaryResult](m.Called(ctx, key, period))
}

func (m *MockPlayerService) Missions(ctx context.Context, key domain.ProfileKey) (*player.MissionBoard, error) {
	return result[*player.MissionBoard](m.Called(ctx, key))
}

func (m *MockPlayerService) ClaimMission(ctx context.Context, key domain.ProfileKey, missionID string) (*player.Outcome[*mission.ClaimResult], error) {
	return result[*player.Outcome[*mission.ClaimResult]](m.Called(ctx, key, missionID))
}

func (m *MockPlayerService) RecordProgress(ctx context.Context, key domain.ProfileKey, progressType string, amount int) ([]domain.Mission, error) {
	return result[[]domain.Mission](m.Called(ctx, key, progressType, amount))
}

func (m *MockPlayerService) OpenLootbox(ctx context.Context, key domain.ProfileKey, boxID, source string) (*player.Outcome[*lootbox.Result], error) {
	return result[*player.Outcome[*lootbox.Result]](m.Called(ctx, key, boxID, source))
}
