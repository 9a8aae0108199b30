package main

// Notes:
// - runMain: we test dispatch, exit codes and output of the commands that do
//   not need Chrome. PDF export is covered by the library's browser tests.
// - export: a real SQLite file is seeded in t.TempDir() and rendered to HTML
//   and Word, both of which skip the browser.

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	bnccdoc "github.com/alnah/go-bnccdoc"
	"github.com/alnah/go-bnccdoc/internal/config"
	"github.com/alnah/go-bnccdoc/internal/curriculum"
	"github.com/alnah/go-bnccdoc/internal/store"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// seedDatabase creates a database holding one teacher with two 5th-year
// plans and returns its path, the teacher ID and the first plan ID.
func seedDatabase(t *testing.T) (string, int64, int64) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "bnccdoc.db")
	db, err := store.Open(ctx, path, nil)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	defer func() { _ = store.Close(db) }()
	s := store.New(db)

	teacher := &bnccdoc.User{Name: "Ana Souza", Email: "ana@example.com", Role: bnccdoc.RoleProfessor, School: "EMEF Pariconha"}
	if err := s.Users.Create(ctx, teacher, "$2a$04$unused"); err != nil {
		t.Fatal(err)
	}

	var first int64
	for _, code := range []string{"EF05CO01", "EF05CO02"} {
		p := &bnccdoc.Plan{OwnerID: teacher.ID, SkillCode: code, SchoolYear: "5º Ano", Axis: "Pensamento Computacional"}
		if err := s.Plans.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
		p.Theory = "## Fundamentação\n\nTexto de " + code + "."
		p.Lessons[0] = "## Plano 01\n\n| Tempo | Atividade |\n|---|---|\n| 10 min | Abertura |"
		p.Progress = 1
		if err := s.Plans.Save(ctx, p); err != nil {
			t.Fatal(err)
		}
		if first == 0 {
			first = p.ID
		}
	}
	return path, teacher.ID, first
}

// ---------------------------------------------------------------------------
// TestRunMain_Dispatch - Command routing and exit codes
// ---------------------------------------------------------------------------

func TestRunMain_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"bnccdoc"}, ExitUsage, "", "Usage: bnccdoc"},
		{"unknown command", []string{"bnccdoc", "convert"}, ExitUsage, "", `unknown command "convert"`},
		{"version", []string{"bnccdoc", "version"}, ExitSuccess, "bnccdoc dev", ""},
		{"help", []string{"bnccdoc", "help"}, ExitSuccess, "Commands:", ""},
		{"help export", []string{"bnccdoc", "help", "export"}, ExitSuccess, "--plan <id>", ""},
		{"help unknown", []string{"bnccdoc", "help", "nope"}, ExitUsage, "", "unknown command"},
		{"export flag help", []string{"bnccdoc", "export", "--help"}, ExitSuccess, "", "Usage: bnccdoc export"},
		{"export no target", []string{"bnccdoc", "export"}, ExitUsage, "", ErrExportTarget.Error()},
		{"export bad flag", []string{"bnccdoc", "export", "--nope"}, ExitUsage, "", "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExportFlagsValidate - Target and format combinations
// ---------------------------------------------------------------------------

func TestExportFlagsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   exportFlags
		wantErr error
	}{
		{"plan pdf", exportFlags{plan: 1, user: 1, format: "pdf"}, nil},
		{"plan docx upper", exportFlags{plan: 1, user: 1, format: " DOCX "}, nil},
		{"year html", exportFlags{year: "5º Ano", user: 1, format: "html"}, nil},
		{"all ignores format", exportFlags{all: true, format: "docx"}, nil},
		{"no target", exportFlags{format: "pdf"}, ErrExportTarget},
		{"two targets", exportFlags{plan: 1, all: true, user: 1, format: "pdf"}, ErrExportTarget},
		{"plan without user", exportFlags{plan: 1, format: "pdf"}, ErrMissingUser},
		{"year docx", exportFlags{year: "5º Ano", user: 1, format: "docx"}, ErrExportFormat},
		{"unknown format", exportFlags{plan: 1, user: 1, format: "odt"}, ErrExportFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := tt.flags
			err := f.validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("validate() error = %v", err)
			}
			if tt.wantErr != nil && (err == nil || !strings.Contains(err.Error(), tt.wantErr.Error())) {
				t.Fatalf("validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExport - Rendering from the database
// ---------------------------------------------------------------------------

func TestExport_PlanHTML(t *testing.T) {
	t.Parallel()

	dbPath, userID, planID := seedDatabase(t)
	out := filepath.Join(t.TempDir(), "docs", "plano.html")
	env, stdout, stderr := testEnv()

	code := runMain(context.Background(), []string{
		"bnccdoc", "export", "--db", dbPath,
		"--user", strconv.FormatInt(userID, 10),
		"--plan", strconv.FormatInt(planID, 10),
		"--format", "html", "-o", out,
	}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	for _, want := range []string{"EF05CO01", "Ana Souza", bnccdoc.PlanValidationCode(&bnccdoc.Plan{ID: planID, OwnerID: userID})} {
		if !strings.Contains(html, want) {
			t.Errorf("exported HTML missing %q", want)
		}
	}
	if !strings.Contains(stdout.String(), out) {
		t.Errorf("stdout = %q, want the output path", stdout)
	}
}

func TestExport_PlanDOCX(t *testing.T) {
	t.Parallel()

	dbPath, userID, planID := seedDatabase(t)
	out := filepath.Join(t.TempDir(), "plano.docx")
	env, _, stderr := testEnv()

	code := runMain(context.Background(), []string{
		"bnccdoc", "export", "--db", dbPath, "-u", strconv.FormatInt(userID, 10),
		"-p", strconv.FormatInt(planID, 10), "-f", "docx", "-o", out,
	}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("output is not a DOCX package: %v", err)
	}
	defer func() { _ = zr.Close() }()
	found := false
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			found = true
		}
	}
	if !found {
		t.Error("DOCX has no word/document.xml")
	}
}

func TestExport_YearHTML(t *testing.T) {
	t.Parallel()

	dbPath, userID, _ := seedDatabase(t)
	out := filepath.Join(t.TempDir(), "ano.html")
	env, _, stderr := testEnv()

	code := runMain(context.Background(), []string{
		"bnccdoc", "export", "--db", dbPath, "-u", strconv.FormatInt(userID, 10),
		"--year", "5º Ano", "-f", "html", "-o", out,
	}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	first, second := strings.Index(html, "EF05CO01"), strings.Index(html, "EF05CO02")
	if first < 0 || second < 0 || first > second {
		t.Errorf("skills missing or out of order (%d, %d)", first, second)
	}
}

func TestExport_NotFound(t *testing.T) {
	t.Parallel()

	dbPath, userID, _ := seedDatabase(t)
	uid := strconv.FormatInt(userID, 10)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown plan", []string{"--plan", "999", "-f", "html"}},
		{"foreign plan", []string{"--plan", "1", "-f", "html", "--user", "42"}},
		{"empty year", []string{"--year", "9º Ano", "-f", "html"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"bnccdoc", "export", "--db", dbPath, "-o", filepath.Join(t.TempDir(), "x"), "--user", uid}, tt.args...)
			env, _, stderr := testEnv()
			if code := runMain(context.Background(), args, env); code != ExitNotFound {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, ExitNotFound, stderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSkills - Curriculum listing
// ---------------------------------------------------------------------------

func TestSkills(t *testing.T) {
	t.Parallel()

	t.Run("json filtered by year", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv()
		if code := runMain(context.Background(), []string{"bnccdoc", "skills", "--year", "5º Ano", "--json"}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, stderr)
		}
		var got []curriculum.Skill
		if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
			t.Fatalf("decoding output: %v", err)
		}
		if want := curriculum.ByYear("5º Ano"); len(got) != len(want) || len(got) == 0 {
			t.Errorf("got %d skills, want %d", len(got), len(want))
		}
	})

	t.Run("text groups by year", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		runMain(context.Background(), []string{"bnccdoc", "skills"}, env)
		for _, year := range curriculum.Years() {
			if !strings.Contains(stdout.String(), year+"\n") {
				t.Errorf("output has no %q heading", year)
			}
		}
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv()
		runMain(context.Background(), []string{"bnccdoc", "skills", "--year", "12º Ano"}, env)
		if stdout.Len() != 0 || !strings.Contains(stderr.String(), "no skills") {
			t.Errorf("stdout = %q, stderr = %q", stdout, stderr)
		}
	})
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints on failure
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing secret", ErrMissingSecret, "BNCCDOC_JWT_SECRET"},
		{"render timeout", bnccdoc.ErrRenderTimeout, "render.loadTimeout"},
		{"output", ErrWriteOutput, "writable"},
		{"config", config.ErrConfigNotFound, "--config"},
		{"no hint", ErrExportTarget, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" && got != "" {
				t.Errorf("hintFor() = %q, want none", got)
			}
			if tt.want != "" && !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to mention %q", got, tt.want)
			}
		})
	}
}
