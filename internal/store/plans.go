package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	bnccdoc "github.com/alnah/go-bnccdoc"
)

// PlanRepository is plan data access. Every read and write except
// ListWithOwners is scoped to the owning user.
type PlanRepository interface {
	Create(ctx context.Context, p *bnccdoc.Plan) error
	Get(ctx context.Context, id, ownerID int64) (*bnccdoc.Plan, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*bnccdoc.Plan, error)
	ListByYear(ctx context.Context, ownerID int64, year string) ([]*bnccdoc.Plan, error)
	ListWithOwners(ctx context.Context) ([]bnccdoc.BatchRecord, error)
	Save(ctx context.Context, p *bnccdoc.Plan) error
	Delete(ctx context.Context, ownerID int64, ids []int64) (int64, error)
	DeleteAll(ctx context.Context, ownerID int64) (int64, error)
}

type planRepo struct {
	db *gorm.DB
}

// NewPlanRepo creates a PlanRepository backed by GORM.
func NewPlanRepo(db *gorm.DB) PlanRepository {
	return &planRepo{db: db}
}

// Create inserts p and sets its ID and CreatedAt.
func (r *planRepo) Create(ctx context.Context, p *bnccdoc.Plan) error {
	m := planFromDomain(p)
	m.ID = 0
	if err := r.db.WithContext(ctx).Omit("Owner").Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	return nil
}

func (r *planRepo) Get(ctx context.Context, id, ownerID int64) (*bnccdoc.Plan, error) {
	var m planModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return m.toDomain(), nil
}

// ListByOwner returns the owner's plans, newest first.
func (r *planRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*bnccdoc.Plan, error) {
	var rows []planModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toPlans(rows), nil
}

// ListByYear returns the owner's plans for one school year, ordered by
// skill code.
func (r *planRepo) ListByYear(ctx context.Context, ownerID int64, year string) ([]*bnccdoc.Plan, error) {
	var rows []planModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ano_escolar = ?", ownerID, strings.TrimSpace(year)).
		Order("habilidade_codigo ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toPlans(rows), nil
}

// ListWithOwners returns every plan joined with its owner, newest first.
// Plans whose owner no longer exists are skipped.
func (r *planRepo) ListWithOwners(ctx context.Context) ([]bnccdoc.BatchRecord, error) {
	var rows []planModel
	err := r.db.WithContext(ctx).
		InnerJoins("Owner").
		Order("plans.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]bnccdoc.BatchRecord, len(rows))
	for i := range rows {
		records[i] = bnccdoc.BatchRecord{
			Plan:  rows[i].toDomain(),
			Owner: rows[i].Owner.toDomain(),
		}
	}
	return records, nil
}

// Save writes every mutable column of p. The skill code and owner never
// change after creation. Returns ErrNotFound when p does not exist for its
// owner.
func (r *planRepo) Save(ctx context.Context, p *bnccdoc.Plan) error {
	m := planFromDomain(p)
	res := r.db.WithContext(ctx).
		Model(&planModel{}).
		Where("id = ? AND user_id = ?", p.ID, p.OwnerID).
		Updates(map[string]any{
			"ano_escolar": m.SchoolYear,
			"eixo":        m.Axis,
			"fase_zero":   m.Theory,
			"plano_01":    m.Lesson1,
			"plano_02":    m.Lesson2,
			"plano_03":    m.Lesson3,
			"plano_04":    m.Lesson4,
			"plano_05":    m.Lesson5,
			"plano_atual": m.Progress,
			"concluido":   m.Completed,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the owner's plans among ids and reports how many went.
func (r *planRepo) Delete(ctx context.Context, ownerID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Delete(&planModel{})
	return res.RowsAffected, res.Error
}

// DeleteAll removes every plan of the owner.
func (r *planRepo) DeleteAll(ctx context.Context, ownerID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Delete(&planModel{})
	return res.RowsAffected, res.Error
}

func toPlans(rows []planModel) []*bnccdoc.Plan {
	plans := make([]*bnccdoc.Plan, len(rows))
	for i := range rows {
		plans[i] = rows[i].toDomain()
	}
	return plans
}
