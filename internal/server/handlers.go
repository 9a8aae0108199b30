package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/auth"
	"github.com/alnah/go-bnccdoc/internal/curriculum"
	"github.com/alnah/go-bnccdoc/internal/planning"
)

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

type registerRequest struct {
	Name     string       `json:"nome"`
	Email    string       `json:"email"`
	Password string       `json:"senha"`
	Role     bnccdoc.Role `json:"perfil"`
	School   string       `json:"escola"`
}

// POST /api/auth/register
func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := s.deps.Auth.Register(c.Request.Context(), auth.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		School:   req.School,
	})
	if err != nil {
		fail(c, err, msgRegisterFailed)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": u.ID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// POST /api/auth/login
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	token, u, err := s.deps.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err, msgLoginFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": newUserView(u)})
}

// ---------------------------------------------------------------------------
// Curriculum
// ---------------------------------------------------------------------------

// GET /api/skills?ano=&eixo=
func (s *Server) listSkills(c *gin.Context) {
	c.JSON(http.StatusOK, curriculum.Filter(c.Query("ano"), curriculum.Axis(c.Query("eixo"))))
}

// ---------------------------------------------------------------------------
// Plans
// ---------------------------------------------------------------------------

// GET /api/plans
func (s *Server) listPlans(c *gin.Context) {
	plans, err := s.deps.Planning.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, newPlanViews(plans))
}

type startRequest struct {
	SkillCode  string `json:"habilidade_codigo"`
	SchoolYear string `json:"ano_escolar"`
	Axis       string `json:"eixo"`
}

// POST /api/plans/start
func (s *Server) startPlan(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := s.deps.Planning.Start(c.Request.Context(), currentUserID(c), planning.StartInput{
		SkillCode:  req.SkillCode,
		SchoolYear: req.SchoolYear,
		Axis:       req.Axis,
	})
	if err != nil {
		fail(c, err, msgUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": p.ID})
}

type updateRequest struct {
	ID      int64           `json:"id"`
	Field   string          `json:"field"`
	Content json.RawMessage `json:"content"`
}

// stageFields maps updatable columns to stages.
var stageFields = map[string]int{
	"fase_zero": bnccdoc.TheoryStage,
	"plano_01":  1,
	"plano_02":  2,
	"plano_03":  3,
	"plano_04":  4,
	"plano_05":  5,
}

const completedField = "concluido"

// POST /api/plans/update
func (s *Server) updatePlan(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	ctx := c.Request.Context()
	owner := currentUserID(c)

	var (
		p   *bnccdoc.Plan
		err error
	)
	if req.Field == completedField {
		done, ok := parseFlag(req.Content)
		if !ok {
			abort(c, http.StatusBadRequest, msgInvalidBody)
			return
		}
		p, err = s.deps.Planning.Complete(ctx, owner, req.ID, done)
	} else {
		stage, known := stageFields[req.Field]
		if !known {
			abort(c, http.StatusBadRequest, msgInvalidField)
			return
		}
		var content string
		if len(req.Content) > 0 && string(req.Content) != "null" {
			if err := json.Unmarshal(req.Content, &content); err != nil {
				abort(c, http.StatusBadRequest, msgInvalidBody)
				return
			}
		}
		p, err = s.deps.Planning.UpdateStage(ctx, owner, req.ID, stage, content)
	}
	if err != nil {
		fail(c, err, msgUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plano_atual": p.Progress})
}

// parseFlag accepts true/false, 1/0 and their string forms.
func parseFlag(raw json.RawMessage) (bool, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t != 0, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	}
	return false, false
}

// GET /api/plans/:id
func (s *Server) getPlan(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	p, err := s.deps.Planning.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		fail(c, err, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, newPlanView(p))
}

type deleteRequest struct {
	IDs []int64 `json:"ids"`
	All bool    `json:"all"`
}

// POST /api/plans/delete
func (s *Server) deletePlans(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	n, err := s.deps.Planning.Delete(c.Request.Context(), currentUserID(c), req.IDs, req.All)
	if err != nil {
		fail(c, err, msgDeleteFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": n})
}

type generateRequest struct {
	Stage *int `json:"stage"`
}

// POST /api/plans/:id/generate
func (s *Server) generateStage(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Stage == nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := s.deps.Planning.GenerateStage(c.Request.Context(), currentUserID(c), id, *req.Stage)
	if err != nil {
		fail(c, err, msgGenerateFailed)
		return
	}
	c.JSON(http.StatusOK, newPlanView(p))
}

type resourceRequest struct {
	Kind string `json:"tipo"`
}

// POST /api/plans/:id/resources
func (s *Server) generateResource(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	content, err := s.deps.Planning.GenerateResource(c.Request.Context(), currentUserID(c), id, req.Kind)
	if err != nil {
		fail(c, err, msgGenerateFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conteudo": content})
}

// planID parses the :id path parameter, answering 400 when malformed.
func planID(c *gin.Context) (int64, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abort(c, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

// parseID parses a positive plan ID.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

// GET /api/settings
func (s *Server) getSettings(c *gin.Context) {
	settings, err := s.deps.Store.Settings.Get(c.Request.Context())
	if err != nil {
		fail(c, err, msgSettingsFailed)
		return
	}
	c.JSON(http.StatusOK, newSettingsView(settings))
}

// POST /api/settings (administrators only)
func (s *Server) putSettings(c *gin.Context) {
	var req settingsView
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if _, err := bnccdoc.ParseExportConfig(req.ExportConfig); err != nil {
		s.log.Warn("storing malformed export config; documents will use the default")
	}
	if err := s.deps.Store.Settings.Put(c.Request.Context(), req.toDomain()); err != nil {
		fail(c, err, msgSettingsFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
