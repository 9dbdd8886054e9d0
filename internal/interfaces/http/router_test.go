package http_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmwaura/malipo-api/internal/application/clients"
	"github.com/kmwaura/malipo-api/internal/application/documents"
	"github.com/kmwaura/malipo-api/internal/application/ports"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	apphttp "github.com/kmwaura/malipo-api/internal/interfaces/http"
	pkgjwt "github.com/kmwaura/malipo-api/pkg/jwt"
)

const otherClientID = "00000000-0000-0000-0000-000000000004"

type routerClientRepo struct {
	clients map[string]*entity.Client
}

func (r *routerClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *routerClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *routerClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if c.CompanyID == companyID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *routerClientRepo) ListByAgent(companyID, agentID string) ([]*entity.Client, error) {
	return nil, nil
}

func (r *routerClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *routerClientRepo) SetApprovalStatus(id, status string) error {
	if c, ok := r.clients[id]; ok {
		c.ApprovalStatus = &status
	}
	return nil
}

func (r *routerClientRepo) Deactivate(id string) error {
	if c, ok := r.clients[id]; ok {
		c.IsActive = false
	}
	return nil
}

type routerAgentRepo struct{}

func (routerAgentRepo) Create(a *entity.FieldAgent) error             { return nil }
func (routerAgentRepo) GetByID(id string) (*entity.FieldAgent, error) { return nil, nil }
func (routerAgentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.FieldAgent, error) {
	return nil, nil
}
func (routerAgentRepo) Update(a *entity.FieldAgent) error { return nil }

type routerDocRepo struct {
	docs map[string]*entity.ClientDocument
}

func (r *routerDocRepo) Create(ctx context.Context, d *entity.ClientDocument) error {
	cp := *d
	r.docs[d.ID] = &cp
	return nil
}

func (r *routerDocRepo) GetByID(ctx context.Context, id string) (*entity.ClientDocument, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *routerDocRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.ClientDocument, error) {
	var out []*entity.ClientDocument
	for _, d := range r.docs {
		if d.CompanyID == companyID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *routerDocRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.ClientDocument, error) {
	var out []*entity.ClientDocument
	for _, d := range r.docs {
		if d.ClientID == clientID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *routerDocRepo) UpdateReview(ctx context.Context, d *entity.ClientDocument) error {
	cp := *d
	r.docs[d.ID] = &cp
	return nil
}

type routerStorage struct{}

func (routerStorage) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	return "https://files.test/" + path, nil
}

type routerPublisher struct{}

func (routerPublisher) Publish(ctx context.Context, e ports.Event) {}

// newRouterApp wires the real Router over in-memory repos with two clients
// of the same company seeded.
func newRouterApp() *fiber.App {
	approved := entity.ClientApprovalApproved
	cr := &routerClientRepo{clients: map[string]*entity.Client{
		testClientID:  {ID: testClientID, CompanyID: testCompanyID, Name: "Own Ltd", IsActive: true, ApprovalStatus: &approved},
		otherClientID: {ID: otherClientID, CompanyID: testCompanyID, Name: "Other Ltd", IsActive: true, ApprovalStatus: &approved},
	}}
	dr := &routerDocRepo{docs: map[string]*entity.ClientDocument{}}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ClientUC:   clients.NewClientUseCase(cr, routerAgentRepo{}, routerPublisher{}),
		DocumentUC: documents.NewDocumentUseCase(dr, cr, routerStorage{}, nil, routerPublisher{}, zerolog.Nop()),
		JWTSecret:  testJWTSecret,
	})
	return app
}

// tokenForActor issues a JWT carrying a linked actor id.
func tokenForActor(t *testing.T, role, actorID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, actorID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func routerGet(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", authHeader)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRouter_ClientCannotListCompanyRoster(t *testing.T) {
	app := newRouterApp()
	tok := tokenForActor(t, "client", testClientID)

	resp := routerGet(t, app, "/api/clients/", tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"roster listing is staff-only")
}

func TestRouter_ClientCannotListCompanyDocuments(t *testing.T) {
	app := newRouterApp()
	tok := tokenForActor(t, "client", testClientID)

	resp := routerGet(t, app, "/api/documents/", tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"company-wide document listing is admin-only")
}

func TestRouter_ClientIsPinnedToOwnRecord(t *testing.T) {
	app := newRouterApp()
	tok := tokenForActor(t, "client", testClientID)

	own := routerGet(t, app, "/api/clients/"+testClientID, tok)
	defer own.Body.Close()
	assert.Equal(t, http.StatusOK, own.StatusCode)

	foreign := routerGet(t, app, "/api/clients/"+otherClientID, tok)
	defer foreign.Body.Close()
	assert.Equal(t, http.StatusForbidden, foreign.StatusCode,
		"a client token must not read another client's record")

	foreignDocs := routerGet(t, app, "/api/clients/"+otherClientID+"/documents", tok)
	defer foreignDocs.Body.Close()
	assert.Equal(t, http.StatusForbidden, foreignDocs.StatusCode,
		"a client token must not read another client's documents")

	ownDocs := routerGet(t, app, "/api/clients/"+testClientID+"/documents", tok)
	defer ownDocs.Body.Close()
	assert.Equal(t, http.StatusOK, ownDocs.StatusCode)

	foreignEngagement := routerGet(t, app, "/api/clients/"+otherClientID+"/engagement", tok)
	defer foreignEngagement.Body.Close()
	assert.Equal(t, http.StatusForbidden, foreignEngagement.StatusCode)
}

func TestRouter_ClientCannotSubmitDocumentsForOthers(t *testing.T) {
	app := newRouterApp()
	tok := tokenForActor(t, "client", testClientID)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "cert.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	body := buf.Bytes()

	foreign := httptest.NewRequest(http.MethodPost, "/api/clients/"+otherClientID+"/documents", bytes.NewReader(body))
	foreign.Header.Set("Authorization", tok)
	foreign.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(foreign, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"a client token must not upload on another client's behalf")

	own := httptest.NewRequest(http.MethodPost, "/api/clients/"+testClientID+"/documents", bytes.NewReader(body))
	own.Header.Set("Authorization", tok)
	own.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err = app.Test(own, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRouter_StaffKeepsCompanyWideAccess(t *testing.T) {
	app := newRouterApp()

	adminRoster := routerGet(t, app, "/api/clients/", tokenForActor(t, "admin", ""))
	defer adminRoster.Body.Close()
	assert.Equal(t, http.StatusOK, adminRoster.StatusCode)

	agentRoster := routerGet(t, app, "/api/clients/", tokenForActor(t, "agent", "agent-1"))
	defer agentRoster.Body.Close()
	assert.Equal(t, http.StatusOK, agentRoster.StatusCode)

	adminDocs := routerGet(t, app, "/api/documents/", tokenForActor(t, "admin", ""))
	defer adminDocs.Body.Close()
	assert.Equal(t, http.StatusOK, adminDocs.StatusCode)

	adminForeign := routerGet(t, app, "/api/clients/"+otherClientID, tokenForActor(t, "admin", ""))
	defer adminForeign.Body.Close()
	assert.Equal(t, http.StatusOK, adminForeign.StatusCode)
}
