package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/mapper"
	"github.com/redcow77/module-5-test/internal/model"
	"github.com/redcow77/module-5-test/internal/repository/contract"
	"github.com/redcow77/module-5-test/internal/repository/scope"
	"github.com/redcow77/module-5-test/internal/repository/specification"

	"gorm.io/gorm"
)

type BlockRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BlockMapper
}

func NewBlockRepository(db *gorm.DB) contract.BlockRepository {
	return &BlockRepositoryImpl{
		db:     db,
		mapper: mapper.NewBlockMapper(),
	}
}

func (r *BlockRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BlockRepositoryImpl) Create(ctx context.Context, block *entity.Block) error {
	m := r.mapper.ToModel(block)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*block = *r.mapper.ToEntity(m)
	return nil
}

func (r *BlockRepositoryImpl) CreateBatch(ctx context.Context, items []*entity.Block) error {
	if len(items) == 0 {
		return nil
	}
	models := r.mapper.ToModels(items)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*items[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *BlockRepositoryImpl) Update(ctx context.Context, block *entity.Block) error {
	m := r.mapper.ToModel(block)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*block = *r.mapper.ToEntity(m)
	return nil
}

func (r *BlockRepositoryImpl) UpdateOrders(ctx context.Context, orders map[int64]float64) error {
	now := time.Now()
	db := r.db.WithContext(ctx)
	for id, order := range orders {
		err := db.Model(&model.Block{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"position": order, "updated_at": now}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *BlockRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Block{}, id).Error
}

func (r *BlockRepositoryImpl) DeleteByPageIDs(ctx context.Context, pageIds []int64) error {
	if len(pageIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("page_id IN ?", pageIds).Delete(&model.Block{}).Error
}

func (r *BlockRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Block, error) {
	var m model.Block
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BlockRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Block, error) {
	var models []*model.Block
	query := r.applySpecifications(r.db.WithContext(ctx), specs...).Scopes(scope.StableOrder)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BlockRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Block{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
