package implementation

import (
	"context"

	"compliance-review-be/internal/entity"
	"compliance-review-be/internal/mapper"
	"compliance-review-be/internal/model"
	"compliance-review-be/internal/repository/contract"
	"compliance-review-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewAuditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReviewAuditMapper
}

func NewReviewAuditRepository(db *gorm.DB) contract.ReviewAuditRepository {
	return &ReviewAuditRepositoryImpl{
		db:     db,
		mapper: mapper.NewReviewAuditMapper(),
	}
}

func (r *ReviewAuditRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create is idempotent on Id so a redelivered event does not duplicate rows.
func (r *ReviewAuditRepositoryImpl) Create(ctx context.Context, audit *entity.ReviewAudit) error {
	if audit.Id == uuid.Nil {
		audit.Id = uuid.New()
	}
	m, err := r.mapper.ToModel(audit)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error; err != nil {
		return err
	}
	*audit = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReviewAuditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReviewAudit, error) {
	var models []*model.ReviewAudit
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ReviewAuditRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ReviewAudit{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
