package service

import (
	"context"

	"github.com/membergate/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"
)

type usersRepoMock struct {
	mock.Mock
}

func (m *usersRepoMock) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *usersRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *usersRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *usersRepoMock) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	args := m.Called(ctx, mobile)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *usersRepoMock) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *usersRepoMock) GetByOTP(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *usersRepoMock) ListPending(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *usersRepoMock) SetPaid(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *usersRepoMock) SetAccepted(ctx context.Context, id uuid.UUID, username string, passwordHash string) error {
	return m.Called(ctx, id, username, passwordHash).Error(0)
}

func (m *usersRepoMock) SetDeclined(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *usersRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *usersRepoMock) StoreOTP(ctx context.Context, id uuid.UUID, code string) error {
	return m.Called(ctx, id, code).Error(0)
}

func (m *usersRepoMock) ClearOTP(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type adminsRepoMock struct {
	mock.Mock
}

func (m *adminsRepoMock) Create(ctx context.Context, admin *domain.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *adminsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	admin, _ := args.Get(0).(*domain.Admin)
	return admin, args.Error(1)
}

func (m *adminsRepoMock) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	admin, _ := args.Get(0).(*domain.Admin)
	return admin, args.Error(1)
}

func (m *adminsRepoMock) GetByAdminID(ctx context.Context, adminID string) (*domain.Admin, error) {
	args := m.Called(ctx, adminID)
	admin, _ := args.Get(0).(*domain.Admin)
	return admin, args.Error(1)
}

func (m *adminsRepoMock) GetByOTP(ctx context.Context, code string) (*domain.Admin, error) {
	args := m.Called(ctx, code)
	admin, _ := args.Get(0).(*domain.Admin)
	return admin, args.Error(1)
}

func (m *adminsRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *adminsRepoMock) StoreOTP(ctx context.Context, id uuid.UUID, code string) error {
	return m.Called(ctx, id, code).Error(0)
}

func (m *adminsRepoMock) ClearOTP(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type sessionStoreMock struct {
	mock.Mock
}

func (m *sessionStoreMock) Create(ctx context.Context, token string, identity uuid.UUID) error {
	return m.Called(ctx, token, identity).Error(0)
}

func (m *sessionStoreMock) Get(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	record, _ := args.Get(0).(*domain.Session)
	return record, args.Error(1)
}

func (m *sessionStoreMock) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// enqueuerMock records every task handed to the queue so tests can
// inspect payloads and dispatch counts.
type enqueuerMock struct {
	mock.Mock
	tasks []*asynq.Task
}

func (m *enqueuerMock) Enqueue(ctx context.Context, task *asynq.Task) error {
	m.tasks = append(m.tasks, task)
	return m.Called(ctx, task).Error(0)
}

func (m *enqueuerMock) tasksOfType(name string) []*asynq.Task {
	var out []*asynq.Task
	for _, t := range m.tasks {
		if t.Type() == name {
			out = append(out, t)
		}
	}
	return out
}
