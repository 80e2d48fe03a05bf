package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/category"
	"library-backend/internal/domains/category/service"
)

type repoMock struct {
	createFn func(ctx context.Context, c *category.Category) error
	listFn   func(ctx context.Context) ([]category.Category, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *repoMock) Create(ctx context.Context, c *category.Category) error {
	return m.createFn(ctx, c)
}
func (m *repoMock) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return nil, category.ErrCategoryNotFound
}
func (m *repoMock) List(ctx context.Context) ([]category.Category, error) { return m.listFn(ctx) }
func (m *repoMock) Delete(ctx context.Context, id uuid.UUID) error        { return m.deleteFn(ctx, id) }

func TestCreate_EmptyNameRejected(t *testing.T) {
	svc := service.NewCategoryService(&repoMock{})

	_, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: ""})
	assert.Error(t, err)
}

func TestCreate_DuplicatePropagates(t *testing.T) {
	repo := &repoMock{
		createFn: func(ctx context.Context, c *category.Category) error {
			return category.ErrCategoryAlreadyExists
		},
	}
	svc := service.NewCategoryService(repo)

	_, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Văn học"})
	assert.ErrorIs(t, err, category.ErrCategoryAlreadyExists)
}

func TestCreate_Success(t *testing.T) {
	var created *category.Category
	repo := &repoMock{
		createFn: func(ctx context.Context, c *category.Category) error {
			created = c
			return nil
		},
	}
	svc := service.NewCategoryService(repo)

	result, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Văn học"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Văn học", result.Name)
	assert.NotEqual(t, uuid.Nil, result.ID)
}

func TestDelete_Passthrough(t *testing.T) {
	id := uuid.New()
	repo := &repoMock{
		deleteFn: func(ctx context.Context, gotID uuid.UUID) error {
			assert.Equal(t, id, gotID)
			return nil
		},
	}
	svc := service.NewCategoryService(repo)

	assert.NoError(t, svc.Delete(context.Background(), id))
}
