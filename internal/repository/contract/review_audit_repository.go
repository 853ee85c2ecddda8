package contract

import (
	"context"

	"compliance-review-be/internal/entity"
	"compliance-review-be/internal/repository/specification"
)

type ReviewAuditRepository interface {
	Create(ctx context.Context, audit *entity.ReviewAudit) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReviewAudit, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
