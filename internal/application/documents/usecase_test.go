package documents_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmwaura/malipo-api/internal/application/documents"
	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/application/ports"
	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
)

type fakeDocRepo struct {
	docs map[string]*entity.ClientDocument
}

func (r *fakeDocRepo) Create(ctx context.Context, d *entity.ClientDocument) error {
	cp := *d
	r.docs[d.ID] = &cp
	return nil
}

func (r *fakeDocRepo) GetByID(ctx context.Context, id string) (*entity.ClientDocument, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.ClientDocument, error) {
	var out []*entity.ClientDocument
	for _, d := range r.docs {
		if d.CompanyID != companyID {
			continue
		}
		if status != "" && d.Status != status {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeDocRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.ClientDocument, error) {
	var out []*entity.ClientDocument
	for _, d := range r.docs {
		if d.ClientID == clientID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) UpdateReview(ctx context.Context, d *entity.ClientDocument) error {
	cp := *d
	r.docs[d.ID] = &cp
	return nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(c *entity.Client) error { return nil }

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	return nil, nil
}

func (r *fakeClientRepo) ListByAgent(companyID, agentID string) ([]*entity.Client, error) {
	return nil, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error        { return nil }
func (r *fakeClientRepo) SetApprovalStatus(id, s string) error { return nil }
func (r *fakeClientRepo) Deactivate(id string) error           { return nil }

type fakeStorage struct{ fail bool }

func (s *fakeStorage) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if s.fail {
		return "", errors.New("bucket unreachable")
	}
	return "https://files.test/" + path, nil
}

type fakeClassifier struct {
	fail   bool
	result dto.DocumentClassificationDTO
}

func (c *fakeClassifier) ClassifyDocument(ctx context.Context, fileName, mimeType string, content []byte) (*dto.DocumentClassificationDTO, error) {
	if c.fail {
		return nil, errors.New("model overloaded")
	}
	cp := c.result
	return &cp, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, e ports.Event) {}

const (
	companyID = "co-1"
	clientID  = "client-1"
)

type fixture struct {
	docs       *fakeDocRepo
	storage    *fakeStorage
	classifier *fakeClassifier
	uc         *documents.DocumentUseCase
}

func newFixture() *fixture {
	f := &fixture{
		docs:       &fakeDocRepo{docs: map[string]*entity.ClientDocument{}},
		storage:    &fakeStorage{},
		classifier: &fakeClassifier{result: dto.DocumentClassificationDTO{Category: "tax_certificate", Confidence: 92, Reasoning: "KRA header present"}},
	}
	cr := &fakeClientRepo{clients: map[string]*entity.Client{
		clientID: {ID: clientID, CompanyID: companyID, Name: "Tumaini Traders", IsActive: true},
	}}
	f.uc = documents.NewDocumentUseCase(f.docs, cr, f.storage, f.classifier, nopPublisher{}, zerolog.Nop())
	return f
}

func upload() documents.Upload {
	return documents.Upload{FileName: "cert.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}
}

func TestSubmit_StoresFileAndSuggestion(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Submit(context.Background(), companyID, "user-1", clientID, upload())
	require.NoError(t, err)

	assert.Equal(t, entity.DocumentPendingReview, doc.Status)
	assert.Contains(t, doc.DocumentURL, "https://files.test/")
	assert.Equal(t, "tax_certificate", doc.SuggestedCategory)
	assert.Equal(t, 92, doc.Confidence)
}

func TestSubmit_ClassifierFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	f.classifier.fail = true

	doc, err := f.uc.Submit(context.Background(), companyID, "user-1", clientID, upload())
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentPendingReview, doc.Status)
	assert.Empty(t, doc.SuggestedCategory)
}

func TestSubmit_StorageFailureAborts(t *testing.T) {
	f := newFixture()
	f.storage.fail = true

	_, err := f.uc.Submit(context.Background(), companyID, "user-1", clientID, upload())
	assert.ErrorIs(t, err, domain.ErrDependency)
	assert.Empty(t, f.docs.docs)
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Submit(context.Background(), companyID, "user-1", clientID, documents.Upload{FileName: "x.pdf"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "empty payload")

	_, err = f.uc.Submit(context.Background(), companyID, "user-1", "nope", upload())
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown client")

	_, err = f.uc.Submit(context.Background(), "other-co", "user-1", clientID, upload())
	assert.ErrorIs(t, err, domain.ErrForbidden, "foreign client")
}

func TestReview_ApproveConfirmsOrOverridesCategory(t *testing.T) {
	f := newFixture()
	doc, err := f.uc.Submit(context.Background(), companyID, "user-1", clientID, upload())
	require.NoError(t, err)

	// No category in the request: the suggestion is confirmed.
	reviewed, err := f.uc.Review(context.Background(), companyID, "admin-1", doc.ID, dto.DocumentReviewRequest{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentApproved, reviewed.Status)
	assert.Equal(t, "tax_certificate", reviewed.ConfirmedCategory)

	second, err := f.uc.Submit(context.Background(), companyID, "user-1", clientID, upload())
	require.NoError(t, err)
	reviewed, err = f.uc.Review(context.Background(), companyID, "admin-1", second.ID, dto.DocumentReviewRequest{Approve: true, Category: "business_permit"})
	require.NoError(t, err)
	assert.Equal(t, "business_permit", reviewed.ConfirmedCategory)
}

func TestReview_RejectNeedsNotesAndIsTerminal(t *testing.T) {
	f := newFixture()
	doc, err := f.uc.Submit(context.Background(), companyID, "user-1", clientID, upload())
	require.NoError(t, err)

	_, err = f.uc.Review(context.Background(), companyID, "admin-1", doc.ID, dto.DocumentReviewRequest{Approve: false})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rejected, err := f.uc.Review(context.Background(), companyID, "admin-1", doc.ID, dto.DocumentReviewRequest{Approve: false, Notes: "document expired in 2024"})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentRejected, rejected.Status)

	_, err = f.uc.Review(context.Background(), companyID, "admin-1", doc.ID, dto.DocumentReviewRequest{Approve: true})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListByCompany_StatusFilter(t *testing.T) {
	f := newFixture()
	first, err := f.uc.Submit(context.Background(), companyID, "user-1", clientID, upload())
	require.NoError(t, err)
	_, err = f.uc.Submit(context.Background(), companyID, "user-1", clientID, upload())
	require.NoError(t, err)
	_, err = f.uc.Review(context.Background(), companyID, "admin-1", first.ID, dto.DocumentReviewRequest{Approve: true})
	require.NoError(t, err)

	pending, err := f.uc.ListByCompany(context.Background(), companyID, entity.DocumentPendingReview, 0, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := f.uc.ListByCompany(context.Background(), companyID, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
