package services

import (
	"context"
	"sync"
	"time"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) MarkPhoneVerified(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id int64) (*model.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageRepository) UpdateFields(ctx context.Context, id int64, u model.MessageUpdate) error {
	return m.Called(ctx, id, u).Error(0)
}

func (m *MockMessageRepository) ListForRecipient(ctx context.Context, userID int64, f model.InboxFilter) ([]*model.Message, int64, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Message), args.Get(1).(int64), args.Error(2)
}

// MockTransactor runs fn directly unless an error is configured.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockKeyResolver struct {
	mock.Mock
}

func (m *MockKeyResolver) Resolve(ctx context.Context, presented string) (*model.Company, error) {
	args := m.Called(ctx, presented)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, templateID, companyID int64, vars model.Variables) (string, error) {
	args := m.Called(ctx, templateID, companyID, vars)
	return args.String(0), args.Error(1)
}

type MockRecipientProvider struct {
	mock.Mock
}

// ResolveOrInvite returns (id, outcome, err) or (id, outcome, release, err)
// depending on how the expectation was set up.
func (m *MockRecipientProvider) ResolveOrInvite(ctx context.Context, phone, companyName string) (int64, Outcome, func(), error) {
	args := m.Called(ctx, phone, companyName)
	if len(args) == 4 {
		return args.Get(0).(int64), args.Get(1).(Outcome), args.Get(2).(func()), args.Error(3)
	}
	return args.Get(0).(int64), args.Get(1).(Outcome), noRelease, args.Error(2)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishDispatched(ctx context.Context, msg *model.Message, invited bool) error {
	return m.Called(ctx, msg, invited).Error(0)
}

// fakeGateway stands in for the SMS gateway client.
type fakeGateway struct {
	mu      sync.Mutex
	ok      bool
	code    string
	invites []string
	codes   []string
	block   chan struct{}
}

func (g *fakeGateway) SendInvite(_ context.Context, phone, _ string) bool {
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.invites = append(g.invites, phone)
	return g.ok
}

func (g *fakeGateway) SendVerificationCode(_ context.Context, phone string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.codes = append(g.codes, phone)
	if !g.ok {
		return "", false
	}
	return g.code, true
}

func (g *fakeGateway) inviteCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.invites)
}

type MockApiKeyRepository struct {
	mock.Mock
}

func (m *MockApiKeyRepository) FindActiveByKey(ctx context.Context, key string) (*model.ApiKey, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) FindByID(ctx context.Context, id int64) (*model.ApiKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) Create(ctx context.Context, key *model.ApiKey) (*model.ApiKey, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) List(ctx context.Context, companyID int64) ([]*model.ApiKey, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockApiKeyRepository) Restore(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id int64) (*model.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByOwner(ctx context.Context, owner int64) (*model.Company, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *model.Company) (*model.Company, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindPlan(ctx context.Context, id int64) (*model.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plan), args.Error(1)
}
