package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/household-ledger/internal/api_gateway/middleware"
	"github.com/household-ledger/internal/api_gateway/service"
	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/domain/session"
	"github.com/household-ledger/internal/domain/shared"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Create(ctx context.Context, name string, startBalance int64) (*account.Account, error) {
	args := m.Called(ctx, name, startBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) Get(ctx context.Context, id int64) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) List(ctx context.Context) ([]*account.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) Get(ctx context.Context, id int64) (*entry.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entry.Entry), args.Error(1)
}

func (m *MockEntryService) Create(ctx context.Context, in *entry.Entry) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryService) Update(ctx context.Context, in *entry.Entry) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockEntryService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntryService) List(ctx context.Context, accountID int64, page *int, filter string) ([]*entry.Entry, error) {
	args := m.Called(ctx, accountID, page, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entry.Entry), args.Error(1)
}

func (m *MockEntryService) Count(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Tree(ctx context.Context, sess *session.Session) (*category.Node, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Node), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context, sess *session.Session) ([]category.Leveled, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.Leveled), args.Error(1)
}

func (m *MockCategoryService) Save(ctx context.Context, sess *session.Session, root *category.Node) error {
	args := m.Called(ctx, sess, root)
	return args.Error(0)
}

func (m *MockCategoryService) Create(ctx context.Context, sess *session.Session, node *category.Node) (int64, error) {
	args := m.Called(ctx, sess, node)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, sess *session.Session, id int64) error {
	args := m.Called(ctx, sess, id)
	return args.Error(0)
}

func (m *MockCategoryService) Root(ctx context.Context, sess *session.Session) (*category.Category, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Split(ctx context.Context, sess *session.Session) (*category.Category, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Current(ctx context.Context) (*session.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) Init(ctx context.Context) (*session.Session, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*session.Session), args.Bool(1), args.Error(2)
}

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Submit(ctx context.Context, request *shared.EntryImportRequest) (uuid.UUID, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

var (
	_ service.AccountService  = (*MockAccountService)(nil)
	_ service.EntryService    = (*MockEntryService)(nil)
	_ service.CategoryService = (*MockCategoryService)(nil)
	_ service.SessionService  = (*MockSessionService)(nil)
	_ service.ImportService   = (*MockImportService)(nil)
)

var testSession = &session.Session{ID: 1, RootCategoryID: 1, SplitCategoryID: 2}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// setupTestRouter returns a router whose requests carry testSession
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CorrelationID())
	r.Use(func(c *gin.Context) {
		c.Set(middleware.SessionKey, testSession)
		c.Next()
	})
	return r
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// decodeResponse unmarshals the envelope and its data field into data
func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, data interface{}) Response {
	t.Helper()
	var envelope struct {
		Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	if data != nil {
		require.NotEmpty(t, envelope.Data, "'data' field should not be empty")
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return envelope.Response
}
