package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCategoriesAndBrands(t *testing.T) {
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo)

	productRepo.On("ListCategories", mock.Anything).Return([]string{"Electronics", "Tools"}, nil)
	productRepo.On("ListBrands", mock.Anything).Return([]string{"Acme", "Globex"}, nil)

	categories, err := svc.Categories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Tools"}, categories)

	brands, err := svc.Brands(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Globex"}, brands)
}
