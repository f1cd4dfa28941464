package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"placementprime/internal/auth"
	"placementprime/internal/models"
	"placementprime/internal/repositories"
	"placementprime/internal/services"
)

// In-memory repositories standing in for the gorm-backed ones.

type memUserRepo struct {
	mu    sync.Mutex
	users []*models.User
}

func (r *memUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.users = append(r.users, user)
	return nil
}

func (r *memUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) FindByFirebaseUID(uid string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.FirebaseUID == uid {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type memResumeRepo struct {
	mu      sync.Mutex
	resumes []*models.Resume
	seq     int
}

func (r *memResumeRepo) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume.ID = uuid.New()
	r.seq++
	resume.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	r.resumes = append(r.resumes, resume)
	return nil
}

func (r *memResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resume := range r.resumes {
		if resume.ID == id {
			copied := *resume
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memResumeRepo) FindByUser(userID uuid.UUID) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Resume
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, *resume)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memResumeRepo) UpdateAnalysis(id uuid.UUID, atsScore int, analysis datatypes.JSON, latexContent string) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resume := range r.resumes {
		if resume.ID == id {
			resume.ATSScore = &atsScore
			resume.AnalysisJSON = analysis
			resume.LatexContent = &latexContent
			copied := *resume
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type memJobRepo struct {
	mu   sync.Mutex
	jobs []*models.Job
	seq  int
}

func (r *memJobRepo) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = uuid.New()
	r.seq++
	job.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *memJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		if job.ID == id {
			copied := *job
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memJobRepo) FindByUser(userID uuid.UUID) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, job := range r.jobs {
		if job.UserID == userID {
			out = append(out, *job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memJobRepo) FindRecent(limit int) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memJobRepo) Update(id uuid.UUID, fields map[string]interface{}) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		if job.ID != id {
			continue
		}
		for column, value := range fields {
			switch column {
			case "title":
				job.Title = value.(string)
			case "company":
				job.Company = value.(string)
			case "description":
				job.Description = value.(string)
			case "source":
				v := value.(string)
				job.Source = &v
			case "url":
				v := value.(string)
				job.URL = &v
			case "match_score":
				v := value.(int)
				job.MatchScore = &v
			case "status":
				job.Status = value.(string)
			}
		}
		copied := *job
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memJobRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.jobs)), nil
}

// Service stubs.

type stubVerifier struct {
	claims map[string]*auth.IdentityClaims
}

func (v *stubVerifier) Verify(ctx context.Context, token string) (*auth.IdentityClaims, error) {
	if claims, ok := v.claims[token]; ok {
		return claims, nil
	}
	return nil, auth.ErrInvalidToken
}

type stubGemini struct {
	response string
	err      error
	calls    int
}

func (g *stubGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type stubPDFParser struct {
	text string
	err  error
}

func (p *stubPDFParser) ExtractText(r io.ReaderAt, size int64) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

const (
	testToken    = "valid-token"
	testUID      = "firebase-uid-1"
	testMaxBytes = 5 * 1024 * 1024
)

type testEnv struct {
	app        *fiber.App
	userRepo   *memUserRepo
	resumeRepo *memResumeRepo
	jobRepo    *memJobRepo
	gemini     *stubGemini
	parser     *stubPDFParser
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		app:        fiber.New(),
		userRepo:   &memUserRepo{},
		resumeRepo: &memResumeRepo{},
		jobRepo:    &memJobRepo{},
		gemini:     &stubGemini{response: "{}"},
		parser:     &stubPDFParser{text: "extracted resume text"},
	}

	verifier := &stubVerifier{claims: map[string]*auth.IdentityClaims{
		testToken: {UID: testUID, Email: "user@example.com", Name: "Test User"},
	}}

	analyzer := services.NewAnalyzerService(env.resumeRepo, env.gemini, time.Minute)

	RegisterRoutes(
		env.app,
		verifier,
		env.userRepo,
		NewUserHandler(env.userRepo),
		NewResumeHandler(env.resumeRepo, analyzer),
		NewUploadHandler(env.parser, testMaxBytes),
		NewJobHandler(env.jobRepo),
	)

	return env
}

func (env *testEnv) request(t *testing.T, method, path string, body interface{}, authed bool) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, target))
}

// currentTestUser returns the account auto-provisioned for testToken,
// creating it via a throwaway authed request if needed.
func (env *testEnv) currentTestUser(t *testing.T) *models.User {
	t.Helper()

	user, err := env.userRepo.FindByFirebaseUID(testUID)
	if err == nil {
		return user
	}

	resp := env.request(t, http.MethodGet, "/api/resumes", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user, err = env.userRepo.FindByFirebaseUID(testUID)
	require.NoError(t, err)
	return user
}

func newRawRequest(t *testing.T, method, path, authHeader string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func multipartFile(t *testing.T, fieldName, filename, contentType string, content []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}
