package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matteoalessi-space/booking-system/internal/dto"
	"github.com/matteoalessi-space/booking-system/internal/model"
	"github.com/matteoalessi-space/booking-system/internal/repository"
)

// ActivityService 活动读取业务接口（小组件目录）
type ActivityService interface {
	ListActive(ctx context.Context) ([]dto.ActivityResponse, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) ListActive(ctx context.Context) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.Activity.List(ctx, true)
	if err != nil {
		s.logger.Error("查询活动列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		result = append(result, *toActivityResponse(&activities[i]))
	}
	return result, nil
}

func toActivityResponse(a *model.Activity) *dto.ActivityResponse {
	resp := &dto.ActivityResponse{
		ID:              a.ActivityID,
		Name:            a.Name,
		Description:     a.Description,
		DurationMinutes: a.DurationMinutes,
		MaxCapacity:     a.MaxCapacity,
		Color:           a.Color,
	}
	for _, v := range a.Variants {
		resp.Variants = append(resp.Variants, dto.VariantResponse{
			ID:              v.VariantID,
			Name:            v.Name,
			DurationMinutes: v.DurationMinutes,
			MaxCapacity:     v.MaxCapacity,
			Price:           v.Price,
			OrderPosition:   v.OrderPosition,
		})
	}
	return resp
}
