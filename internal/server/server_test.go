package server

// Notes:
// - Handlers run against a real SQLite store in t.TempDir() and the real
//   composer; the browser-backed renderer and exporter are replaced by
//   recording fakes.
// - Tokens are issued by the same TokenManager the middleware verifies with.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/auth"
	"github.com/alnah/go-bnccdoc/internal/generation"
	"github.com/alnah/go-bnccdoc/internal/planning"
	"github.com/alnah/go-bnccdoc/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type renderCall struct {
	kind    string
	doc     string
	profile bnccdoc.PDFProfile
}

type fakeRenderer struct {
	mu    sync.Mutex
	err   error
	calls []renderCall
}

func (r *fakeRenderer) record(call renderCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
	return r.err
}

func (r *fakeRenderer) RenderPDF(ctx context.Context, doc string, profile bnccdoc.PDFProfile) ([]byte, error) {
	if err := r.record(renderCall{kind: "pdf", doc: doc, profile: profile}); err != nil {
		return nil, err
	}
	return []byte("%PDF-fake"), nil
}

func (r *fakeRenderer) RenderDOCX(ctx context.Context, doc string) ([]byte, error) {
	if err := r.record(renderCall{kind: "docx", doc: doc}); err != nil {
		return nil, err
	}
	return []byte("PK-fake"), nil
}

func (r *fakeRenderer) RenderHTML(ctx context.Context, doc string) ([]byte, error) {
	if err := r.record(renderCall{kind: "html", doc: doc}); err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func (r *fakeRenderer) last() renderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return renderCall{}
	}
	return r.calls[len(r.calls)-1]
}

type fakeExporter struct {
	mu         sync.Mutex
	err        error
	records    []bnccdoc.BatchRecord
	settings   *bnccdoc.Settings
	workers    int
	concurrent bool
	hadBudget  bool
}

func (e *fakeExporter) Export(ctx context.Context, settings *bnccdoc.Settings, records []bnccdoc.BatchRecord) ([]byte, error) {
	return e.ExportConcurrent(ctx, settings, records, 1)
}

func (e *fakeExporter) ExportConcurrent(ctx context.Context, settings *bnccdoc.Settings, records []bnccdoc.BatchRecord, workers int) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.records = records
	e.settings = settings
	e.workers = workers
	e.concurrent = workers > 1
	_, e.hadBudget = ctx.Deadline()
	if e.err != nil {
		return nil, e.err
	}
	if len(records) == 0 {
		return nil, bnccdoc.ErrEmptyPlanSet
	}
	return []byte("PK-zip"), nil
}

type fakeGenerator struct {
	err error
}

func (g *fakeGenerator) Theory(ctx context.Context, code string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return "# Fundamentação " + code, nil
}

func (g *fakeGenerator) LessonPlan(ctx context.Context, code string, stage int, previous string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return generation.LessonTitles[stage-1], nil
}

func (g *fakeGenerator) Resource(ctx context.Context, code, kind, content string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return kind, nil
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type testEnv struct {
	handler  http.Handler
	store    *store.Store
	auth     *auth.Service
	renderer *fakeRenderer
	exporter *fakeExporter
	gen      *fakeGenerator
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open(ctx, filepath.Join(t.TempDir(), "server.db"), nil)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close(db) })
	st := store.New(db)

	tokens, err := auth.NewTokenManager("server-test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	composer, err := bnccdoc.NewComposer(bnccdoc.WithClock(func() time.Time {
		return time.Date(2025, 3, 10, 14, 30, 5, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}

	env := &testEnv{
		store:    st,
		auth:     auth.NewService(st.Users, tokens),
		renderer: &fakeRenderer{},
		exporter: &fakeExporter{},
		gen:      &fakeGenerator{},
	}
	env.handler = New(Deps{
		Store:    st,
		Auth:     env.auth,
		Planning: planning.NewService(st.Plans, env.gen, nil),
		Composer: composer,
		Renderer: env.renderer,
		Exporter: env.exporter,
	}, opts).Handler()
	return env
}

// user registers a user directly in the store and returns a bearer token.
func (e *testEnv) user(t *testing.T, name string, role bnccdoc.Role) (*bnccdoc.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &bnccdoc.User{
		Name:   name,
		Email:  strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Role:   role,
		School: "EMEF Pariconha",
	}
	if err := e.store.Users.Create(context.Background(), u, string(hash)); err != nil {
		t.Fatal(err)
	}
	token, err := e.auth.Tokens().Issue(u)
	if err != nil {
		t.Fatal(err)
	}
	return u, token
}

// plan creates a plan with theory and stage 1 filled.
func (e *testEnv) plan(t *testing.T, owner *bnccdoc.User, code, year string) *bnccdoc.Plan {
	t.Helper()

	p := &bnccdoc.Plan{OwnerID: owner.ID, SkillCode: code, SchoolYear: year}
	ctx := context.Background()
	if err := e.store.Plans.Create(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Theory = "## Teoria\n\nConteúdo."
	p.Lessons[0] = "## Plano 01\n\n| Tempo | Ação |\n|---|---|\n| 10 min | Abertura |"
	p.Progress = 1
	if err := e.store.Plans.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	return p
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	assertStatus(t, w, status)
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", w.Body.String(), err)
	}
	if body.Error != msg {
		t.Errorf("error = %q, want %q", body.Error, msg)
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
	return v
}

// ---------------------------------------------------------------------------
// TestAuthRoutes
// ---------------------------------------------------------------------------

func TestHealth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	w := env.do(t, http.MethodGet, "/health", "", nil)
	assertStatus(t, w, http.StatusOK)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response has no X-Request-ID")
	}
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	reg := map[string]string{
		"nome": "Ana Souza", "email": "ana@example.com", "senha": "segredo", "perfil": "Professor",
	}

	w := env.do(t, http.MethodPost, "/api/auth/register", "", reg)
	assertStatus(t, w, http.StatusCreated)

	w = env.do(t, http.MethodPost, "/api/auth/register", "", reg)
	assertError(t, w, http.StatusBadRequest, "Email já cadastrado")

	w = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com", "senha": "errada"})
	assertError(t, w, http.StatusUnauthorized, "Credenciais inválidas")

	w = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com", "senha": "segredo"})
	assertStatus(t, w, http.StatusOK)
	login := decode[struct {
		Token string   `json:"token"`
		User  userView `json:"user"`
	}](t, w)
	if login.Token == "" || login.User.Name != "Ana Souza" || login.User.Role != bnccdoc.RoleProfessor {
		t.Errorf("login response = %+v", login)
	}

	w = env.do(t, http.MethodGet, "/api/plans", login.Token, nil)
	assertStatus(t, w, http.StatusOK)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})

	w := env.do(t, http.MethodGet, "/api/plans", "", nil)
	assertError(t, w, http.StatusUnauthorized, msgMissingToken)

	w = env.do(t, http.MethodGet, "/api/plans", "garbage", nil)
	assertError(t, w, http.StatusForbidden, msgInvalidToken)
}

func TestListSkills(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	w := env.do(t, http.MethodGet, "/api/skills?ano=5%C2%BA%20Ano", "", nil)
	assertStatus(t, w, http.StatusOK)

	skills := decode[[]struct {
		Code string `json:"codigo"`
		Year string `json:"ano"`
	}](t, w)
	if len(skills) != 11 {
		t.Fatalf("got %d skills, want 11", len(skills))
	}
	for _, s := range skills {
		if s.Year != "5º Ano" {
			t.Errorf("skill %s has year %q", s.Code, s.Year)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPlanRoutes
// ---------------------------------------------------------------------------

func TestPlanWorkflow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	_, token := env.user(t, "Ana Souza", bnccdoc.RoleProfessor)

	w := env.do(t, http.MethodPost, "/api/plans/start", token, map[string]string{"habilidade_codigo": "EF05CO01"})
	assertStatus(t, w, http.StatusOK)
	id := decode[struct {
		ID int64 `json:"id"`
	}](t, w).ID

	path := fmt.Sprintf("/api/plans/%d", id)
	w = env.do(t, http.MethodGet, path, token, nil)
	assertStatus(t, w, http.StatusOK)
	got := decode[planView](t, w)
	if got.SchoolYear != "5º Ano" || got.Axis != "Pensamento Computacional" {
		t.Errorf("started plan = %+v", got)
	}

	w = env.do(t, http.MethodPost, "/api/plans/update", token, map[string]any{"id": id, "field": "plano_01", "content": "aula"})
	assertError(t, w, http.StatusBadRequest, msgStageOrder)

	w = env.do(t, http.MethodPost, "/api/plans/update", token, map[string]any{"id": id, "field": "fase_zero", "content": "teoria"})
	assertStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodPost, "/api/plans/update", token, map[string]any{"id": id, "field": "plano_01", "content": "aula"})
	assertStatus(t, w, http.StatusOK)
	if p := decode[map[string]any](t, w)["plano_atual"]; p != float64(1) {
		t.Errorf("plano_atual = %v, want 1", p)
	}

	w = env.do(t, http.MethodPost, "/api/plans/update", token, map[string]any{"id": id, "field": "plano_03", "content": "x"})
	assertError(t, w, http.StatusBadRequest, msgStageOrder)

	w = env.do(t, http.MethodPost, "/api/plans/update", token, map[string]any{"id": id, "field": "senha", "content": "x"})
	assertError(t, w, http.StatusBadRequest, "Campo inválido")

	w = env.do(t, http.MethodPost, "/api/plans/update", token, map[string]any{"id": id, "field": "concluido", "content": true})
	assertStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodPost, path+"/generate", token, map[string]int{"stage": 2})
	assertStatus(t, w, http.StatusOK)
	if got := decode[planView](t, w); got.Lesson2 != "Plano 02 – Desenvolvimento" || got.Progress != 2 || !got.Completed {
		t.Errorf("after generate = %+v", got)
	}

	w = env.do(t, http.MethodPost, path+"/resources", token, map[string]string{"tipo": "Quiz"})
	assertStatus(t, w, http.StatusOK)
	if c := decode[map[string]string](t, w)["conteudo"]; c != "Quiz" {
		t.Errorf("conteudo = %q", c)
	}

	w = env.do(t, http.MethodGet, "/api/plans", token, nil)
	if list := decode[[]planView](t, w); len(list) != 1 || list[0].ID != id {
		t.Errorf("list = %+v", list)
	}

	w = env.do(t, http.MethodPost, "/api/plans/delete", token, map[string]any{})
	assertError(t, w, http.StatusBadRequest, "Nenhum ID fornecido para exclusão")

	w = env.do(t, http.MethodPost, "/api/plans/delete", token, map[string]any{"ids": []int64{id}})
	assertStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodGet, path, token, nil)
	assertError(t, w, http.StatusNotFound, "Plano não encontrado")
}

func TestGenerateStage_Quota(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	ana, token := env.user(t, "Ana", bnccdoc.RoleProfessor)
	p := env.plan(t, ana, "EF05CO01", "5º Ano")
	env.gen.err = errors.Join(generation.ErrQuotaExceeded, &generation.RateLimitedError{StatusCode: 429})

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/plans/%d/generate", p.ID), token, map[string]int{"stage": 2})
	assertError(t, w, http.StatusTooManyRequests, generation.QuotaMessage)
}

func TestPlans_OwnerIsolation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	ana, _ := env.user(t, "Ana", bnccdoc.RoleProfessor)
	_, biaToken := env.user(t, "Bia", bnccdoc.RoleProfessor)
	p := env.plan(t, ana, "EF05CO01", "5º Ano")

	for _, suffix := range []string{"", "/pdf", "/docx", "/html"} {
		w := env.do(t, http.MethodGet, fmt.Sprintf("/api/plans/%d%s", p.ID, suffix), biaToken, nil)
		assertError(t, w, http.StatusNotFound, "Plano não encontrado")
	}
	if n := len(env.renderer.calls); n != 0 {
		t.Errorf("renderer called %d times for a foreign plan", n)
	}

	w := env.do(t, http.MethodGet, "/api/plans/abc/pdf", biaToken, nil)
	assertError(t, w, http.StatusBadRequest, msgInvalidID)
}

// ---------------------------------------------------------------------------
// TestExportRoutes
// ---------------------------------------------------------------------------

func TestPlanPDF(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	ana, token := env.user(t, "Ana Souza", bnccdoc.RoleProfessor)
	p := env.plan(t, ana, "EF05CO01", "5º Ano")

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/plans/%d/pdf", p.ID), token, nil)
	assertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=Planejamento_EF05CO01.pdf" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	call := env.renderer.last()
	if call.kind != "pdf" || call.profile != bnccdoc.ProfilePlan {
		t.Errorf("render call = %+v", call)
	}
	code := bnccdoc.PlanValidationCode(p)
	if !strings.Contains(call.doc, code) || !strings.Contains(call.doc, "Ana Souza") {
		t.Error("composed document misses the validation code or the teacher name")
	}
}

func TestPlanPDF_RenderFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	ana, token := env.user(t, "Ana", bnccdoc.RoleProfessor)
	p := env.plan(t, ana, "EF05CO01", "5º Ano")
	env.renderer.err = errors.Join(bnccdoc.ErrRenderTimeout, bnccdoc.ErrPageLoad)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/plans/%d/pdf", p.ID), token, nil)
	assertError(t, w, http.StatusInternalServerError, "Erro ao gerar PDF")
}

func TestPlanDOCXAndHTML(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{DOCXFilename: "Relatorio.docx"})
	ana, token := env.user(t, "Ana", bnccdoc.RoleProfessor)
	p := env.plan(t, ana, "EF05CO01", "5º Ano")

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/plans/%d/docx", p.ID), token, nil)
	assertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != bnccdoc.DOCXMIMEType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=Relatorio.docx" {
		t.Errorf("Content-Disposition = %q", cd)
	}

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/plans/%d/html", p.ID), token, nil)
	assertStatus(t, w, http.StatusOK)
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
	if w.Body.String() != env.renderer.last().doc {
		t.Error("HTML response differs from the composed document")
	}

	env.renderer.err = bnccdoc.ErrDOCXGeneration
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/plans/%d/docx", p.ID), token, nil)
	assertError(t, w, http.StatusInternalServerError, "Erro ao gerar Word")
}

func TestYearlyPDF(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	ana, token := env.user(t, "Ana", bnccdoc.RoleProfessor)
	env.plan(t, ana, "EF05CO02", "5º Ano")
	env.plan(t, ana, "EF05CO01", "5º Ano")

	w := env.do(t, http.MethodGet, "/api/plans/batch-pdf", token, nil)
	assertError(t, w, http.StatusBadRequest, "Ano não especificado")

	w = env.do(t, http.MethodGet, "/api/plans/batch-pdf?year=9%C2%BA%20Ano", token, nil)
	assertError(t, w, http.StatusNotFound, "Nenhum plano encontrado para este ano")

	w = env.do(t, http.MethodGet, "/api/plans/batch-pdf?year=5%C2%BA%20Ano", token, nil)
	assertStatus(t, w, http.StatusOK)
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=Curriculo_Anual_5_Ano.pdf" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	call := env.renderer.last()
	if call.profile != bnccdoc.ProfileYearly {
		t.Errorf("profile = %v, want yearly", call.profile)
	}
	first := strings.Index(call.doc, "Habilidade EF05CO01")
	second := strings.Index(call.doc, "Habilidade EF05CO02")
	if first < 0 || second < 0 || first > second {
		t.Errorf("skills out of order in yearly document (%d, %d)", first, second)
	}

	env.renderer.err = errors.New("browser crashed")
	w = env.do(t, http.MethodGet, "/api/plans/batch-pdf?year=5%C2%BA%20Ano", token, nil)
	assertError(t, w, http.StatusInternalServerError, "Erro ao gerar PDF em lote")
}

// ---------------------------------------------------------------------------
// TestAdminRoutes
// ---------------------------------------------------------------------------

func TestSettings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	_, teacher := env.user(t, "Ana", bnccdoc.RoleProfessor)
	_, manager := env.user(t, "Gil", bnccdoc.RoleManager)

	w := env.do(t, http.MethodGet, "/api/settings", teacher, nil)
	assertStatus(t, w, http.StatusOK)
	if got := decode[settingsView](t, w); got.SecretariatName != bnccdoc.DefaultSecretariatName {
		t.Errorf("default settings = %+v", got)
	}

	update := settingsView{SecretariatName: "SEMED Pariconha", SignatoryName: "Maria Lima", ExportConfig: "{broken"}

	w = env.do(t, http.MethodPost, "/api/settings", teacher, update)
	assertError(t, w, http.StatusForbidden, "Apenas gestores podem alterar configurações")

	w = env.do(t, http.MethodPost, "/api/settings", manager, update)
	assertStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodGet, "/api/settings", teacher, nil)
	if got := decode[settingsView](t, w); got != update {
		t.Errorf("settings = %+v, want %+v", got, update)
	}
}

func TestBatchExport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		workers        int
		wantConcurrent bool
	}{
		{"sequential by default", 0, false},
		{"concurrent when configured", 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, Options{BatchWorkers: tt.workers})
			ana, teacher := env.user(t, "Ana", bnccdoc.RoleProfessor)
			bia, _ := env.user(t, "Bia", bnccdoc.RoleProfessor)
			_, manager := env.user(t, "Gil", bnccdoc.RoleManager)
			p1 := env.plan(t, ana, "EF05CO01", "5º Ano")
			p2 := env.plan(t, bia, "EF06CO01", "6º Ano")

			w := env.do(t, http.MethodGet, "/api/admin/batch-export", teacher, nil)
			assertError(t, w, http.StatusForbidden, "Acesso negado")

			w = env.do(t, http.MethodGet, "/api/admin/batch-export", manager, nil)
			assertStatus(t, w, http.StatusOK)
			if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
				t.Errorf("Content-Type = %q", ct)
			}
			if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename="+bnccdoc.ArchiveFilename {
				t.Errorf("Content-Disposition = %q", cd)
			}

			ex := env.exporter
			if ex.concurrent != tt.wantConcurrent {
				t.Errorf("concurrent = %v, want %v", ex.concurrent, tt.wantConcurrent)
			}
			if !ex.hadBudget {
				t.Error("export context has no deadline")
			}
			if len(ex.records) != 2 || ex.records[0].Plan.ID != p2.ID || ex.records[1].Plan.ID != p1.ID {
				t.Fatalf("records not in descending ID order: %+v", ex.records)
			}
			if ex.records[0].Owner.Name != "Bia" {
				t.Errorf("owner = %q, want Bia", ex.records[0].Owner.Name)
			}
			if ex.settings == nil || ex.settings.SecretariatName != bnccdoc.DefaultSecretariatName {
				t.Errorf("settings = %+v", ex.settings)
			}
		})
	}
}

func TestBatchExport_Failures(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, Options{})
	_, manager := env.user(t, "Gil", bnccdoc.RoleManager)

	w := env.do(t, http.MethodGet, "/api/admin/batch-export", manager, nil)
	assertError(t, w, http.StatusNotFound, msgNoPlans)

	env.plan(t, &bnccdoc.User{ID: 1}, "EF05CO01", "5º Ano")
	env.exporter.err = fmt.Errorf("%w: page crashed", bnccdoc.ErrPDFGeneration)
	w = env.do(t, http.MethodGet, "/api/admin/batch-export", manager, nil)
	assertError(t, w, http.StatusInternalServerError, "Erro na exportação em lote")
}

// ---------------------------------------------------------------------------
// TestStatusFor
// ---------------------------------------------------------------------------

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{fmt.Errorf("get: %w", store.ErrNotFound), http.StatusNotFound, msgPlanNotFound},
		{errors.Join(generation.ErrQuotaExceeded, errors.New("429")), http.StatusTooManyRequests, generation.QuotaMessage},
		{planning.ErrStageOrder, http.StatusBadRequest, msgStageOrder},
		{planning.ErrNoGenerator, http.StatusServiceUnavailable, msgNoGenerator},
		{bnccdoc.ErrEmptyPlanSet, http.StatusNotFound, msgNoPlans},
		{errInvalidID, http.StatusBadRequest, msgInvalidID},
		{bnccdoc.ErrPDFGeneration, http.StatusInternalServerError, "fallback"},
	}
	for _, tt := range tests {
		status, msg := statusFor(tt.err, "fallback")
		if status != tt.wantStatus || msg != tt.wantMsg {
			t.Errorf("statusFor(%v) = %d, %q; want %d, %q", tt.err, status, msg, tt.wantStatus, tt.wantMsg)
		}
	}
}
