// Package planning runs the staged authoring workflow of a plan: stage 0
// holds the theory and stages 1 to 5 the lessons, filled in order.
package planning

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/curriculum"
	"github.com/alnah/go-bnccdoc/internal/store"
)

// Sentinel errors for workflow operations.
var (
	ErrEmptySkill      = errors.New("skill code cannot be empty")
	ErrInvalidStage    = errors.New("stage must be between 0 and 5")
	ErrStageOrder      = errors.New("stages must be filled in order")
	ErrNothingToDelete = errors.New("no plan IDs to delete")
	ErrEmptyResource   = errors.New("resource kind cannot be empty")
	ErrNoContent       = errors.New("plan has no generated content")
	ErrNoGenerator     = errors.New("text generation is not configured")
)

// ContentGenerator produces stage and resource content. Implemented by
// *generation.Generator.
type ContentGenerator interface {
	Theory(ctx context.Context, skillCode string) (string, error)
	LessonPlan(ctx context.Context, skillCode string, stage int, previous string) (string, error)
	Resource(ctx context.Context, skillCode, kind, planContent string) (string, error)
}

// StartInput is the input of Start. Empty SchoolYear and Axis are filled
// from the curriculum table.
type StartInput struct {
	SkillCode  string
	SchoolYear string
	Axis       string
}

// Service applies workflow rules on top of a PlanRepository.
type Service struct {
	plans store.PlanRepository
	gen   ContentGenerator
	log   *zap.Logger
}

// NewService creates a Service. gen may be nil; generation calls then
// return ErrNoGenerator.
func NewService(plans store.PlanRepository, gen ContentGenerator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{plans: plans, gen: gen, log: log}
}

// Start creates an empty plan for ownerID.
func (s *Service) Start(ctx context.Context, ownerID int64, in StartInput) (*bnccdoc.Plan, error) {
	code := strings.ToUpper(strings.TrimSpace(in.SkillCode))
	if code == "" {
		return nil, ErrEmptySkill
	}

	p := &bnccdoc.Plan{
		OwnerID:    ownerID,
		SkillCode:  code,
		SchoolYear: strings.TrimSpace(in.SchoolYear),
		Axis:       strings.TrimSpace(in.Axis),
	}
	if skill, ok := curriculum.Lookup(code); ok {
		if p.SchoolYear == "" {
			p.SchoolYear = skill.Year
		}
		if p.Axis == "" {
			p.Axis = string(skill.Axis)
		}
	}

	if err := s.plans.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("plan started", zap.Int64("plan_id", p.ID), zap.String("skill", code), zap.Int64("owner_id", ownerID))
	return p, nil
}

// Get returns one of the owner's plans.
func (s *Service) Get(ctx context.Context, ownerID, planID int64) (*bnccdoc.Plan, error) {
	return s.plans.Get(ctx, planID, ownerID)
}

// List returns the owner's plans, newest first.
func (s *Service) List(ctx context.Context, ownerID int64) ([]*bnccdoc.Plan, error) {
	return s.plans.ListByOwner(ctx, ownerID)
}

// UpdateStage sets the content of one stage and recomputes Progress.
// A lesson may be filled only when every earlier lesson is, and cleared
// only when no later lesson is.
func (s *Service) UpdateStage(ctx context.Context, ownerID, planID int64, stage int, content string) (*bnccdoc.Plan, error) {
	p, err := s.plans.Get(ctx, planID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := setStage(p, stage, content); err != nil {
		return nil, err
	}
	if err := s.plans.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Complete marks the plan as finished or reopens it.
func (s *Service) Complete(ctx context.Context, ownerID, planID int64, done bool) (*bnccdoc.Plan, error) {
	p, err := s.plans.Get(ctx, planID, ownerID)
	if err != nil {
		return nil, err
	}
	p.Completed = done
	if err := s.plans.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the owner's plans listed in ids, or all of them when all
// is set.
func (s *Service) Delete(ctx context.Context, ownerID int64, ids []int64, all bool) (int64, error) {
	if all {
		return s.plans.DeleteAll(ctx, ownerID)
	}
	if len(ids) == 0 {
		return 0, ErrNothingToDelete
	}
	return s.plans.Delete(ctx, ownerID, ids)
}

// GenerateStage generates and stores one stage. Lessons receive the
// preceding stage as context.
func (s *Service) GenerateStage(ctx context.Context, ownerID, planID int64, stage int) (*bnccdoc.Plan, error) {
	if s.gen == nil {
		return nil, ErrNoGenerator
	}
	p, err := s.plans.Get(ctx, planID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := checkFill(p, stage); err != nil {
		return nil, err
	}

	var content string
	if stage == bnccdoc.TheoryStage {
		content, err = s.gen.Theory(ctx, p.SkillCode)
	} else {
		content, err = s.gen.LessonPlan(ctx, p.SkillCode, stage, p.Stage(stage-1))
	}
	if err != nil {
		s.log.Warn("stage generation failed",
			zap.Int64("plan_id", p.ID), zap.Int("stage", stage), zap.Error(err))
		return nil, err
	}

	if err := setStage(p, stage, content); err != nil {
		return nil, err
	}
	if err := s.plans.Save(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("stage generated", zap.Int64("plan_id", p.ID), zap.Int("stage", stage), zap.Int("bytes", len(content)))
	return p, nil
}

// GenerateResource produces an additional resource of the given kind from
// the plan's content. The result is returned, not stored.
func (s *Service) GenerateResource(ctx context.Context, ownerID, planID int64, kind string) (string, error) {
	if s.gen == nil {
		return "", ErrNoGenerator
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return "", ErrEmptyResource
	}
	p, err := s.plans.Get(ctx, planID, ownerID)
	if err != nil {
		return "", err
	}
	content := planContent(p)
	if content == "" {
		return "", ErrNoContent
	}
	return s.gen.Resource(ctx, p.SkillCode, kind, content)
}

// setStage writes content into stage and recomputes Progress. A stage is
// filled only after every earlier one, theory included, and cleared only
// while every later one is empty.
func setStage(p *bnccdoc.Plan, stage int, content string) error {
	if stage < bnccdoc.TheoryStage || stage > bnccdoc.LessonStages {
		return fmt.Errorf("%w: got %d", ErrInvalidStage, stage)
	}
	if strings.TrimSpace(content) == "" {
		for n := stage + 1; n <= bnccdoc.LessonStages; n++ {
			if strings.TrimSpace(p.Stage(n)) != "" {
				return fmt.Errorf("%w: cannot clear stage %d while stage %d is filled", ErrStageOrder, stage, n)
			}
		}
	} else if err := checkFill(p, stage); err != nil {
		return err
	}

	if stage == bnccdoc.TheoryStage {
		p.Theory = content
		return nil
	}
	p.Lessons[stage-1] = content
	p.Progress = p.PopulatedLessons()
	return nil
}

// checkFill reports whether stage may receive content.
func checkFill(p *bnccdoc.Plan, stage int) error {
	if stage < bnccdoc.TheoryStage || stage > bnccdoc.LessonStages {
		return fmt.Errorf("%w: got %d", ErrInvalidStage, stage)
	}
	for n := bnccdoc.TheoryStage; n < stage; n++ {
		if strings.TrimSpace(p.Stage(n)) == "" {
			return fmt.Errorf("%w: stage %d needs stage %d first", ErrStageOrder, stage, n)
		}
	}
	return nil
}

// planContent joins the populated stages in order.
func planContent(p *bnccdoc.Plan) string {
	parts := make([]string, 0, bnccdoc.LessonStages+1)
	for n := bnccdoc.TheoryStage; n <= bnccdoc.LessonStages; n++ {
		if c := strings.TrimSpace(p.Stage(n)); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "\n\n")
}
