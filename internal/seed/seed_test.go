package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shopfront/internal/admin"
	"shopfront/internal/category"
	"shopfront/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sample = `
categories:
  - name: Electronics
    icon: "📱"
  - name: Home & Living
    icon: "🏠"
products:
  - title: Wireless Earbuds
    price: "29.99"
    original_price: "59.99"
    discount: 50
    image: https://img/earbuds.jpg
    rating: 4.6
    sold: 1200
    category: Electronics
    flash_deal: true
  - title: Desk Lamp
    price: 12.5
    image: https://img/lamp.jpg
    rating: 4.1
    sold: 80
    category: Home & Living
    free_shipping: false
admins:
  - email: ops@shop.test
    name: Ops
    password: change-me-please
    role: super_admin
`

type MockCategories struct{ mock.Mock }

func (m *MockCategories) Create(ctx context.Context, name, icon string) (category.Category, error) {
	args := m.Called(ctx, name, icon)
	return args.Get(0).(category.Category), args.Error(1)
}

type MockProducts struct{ mock.Mock }

func (m *MockProducts) Create(ctx context.Context, input product.NewProductInput) (product.Product, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(product.Product), args.Error(1)
}

type MockAdmins struct{ mock.Mock }

func (m *MockAdmins) CreateAdmin(ctx context.Context, email, name, password string, role admin.Role) (admin.User, error) {
	args := m.Called(ctx, email, name, password, role)
	return args.Get(0).(admin.User), args.Error(1)
}

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, f.Categories, 2)
	require.Len(t, f.Products, 2)
	require.Len(t, f.Admins, 1)

	earbuds, err := f.Products[0].ToInput()
	require.NoError(t, err)
	assert.Equal(t, "29.99", earbuds.Price.String())
	require.NotNil(t, earbuds.OriginalPrice)
	assert.Equal(t, "59.99", earbuds.OriginalPrice.String())
	assert.Equal(t, "electronics", *earbuds.CategoryID)
	assert.True(t, earbuds.IsFlashDeal)
	assert.True(t, earbuds.FreeShipping)

	lamp, err := f.Products[1].ToInput()
	require.NoError(t, err)
	assert.Equal(t, "12.5", lamp.Price.String())
	assert.Nil(t, lamp.OriginalPrice)
	assert.Equal(t, "home-living", *lamp.CategoryID)
	assert.False(t, lamp.FreeShipping)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader("products:\n  - title: X\n    colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")

	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Products)

	_, err = Product{Title: "Bad", Price: "free"}.ToInput()
	assert.Error(t, err)
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	t.Run("Success skips existing", func(t *testing.T) {
		cats, prods, admins := new(MockCategories), new(MockProducts), new(MockAdmins)
		cats.On("Create", ctx, "Electronics", "📱").Return(category.Category{ID: "electronics"}, nil)
		cats.On("Create", ctx, "Home & Living", "🏠").Return(category.Category{}, category.ErrCategoryExists)
		prods.On("Create", ctx, mock.Anything).Return(product.Product{ID: 1}, nil)
		admins.On("CreateAdmin", ctx, "ops@shop.test", "Ops", "change-me-please", admin.RoleSuperAdmin).
			Return(admin.User{ID: 1}, nil)

		res, err := Loader{Categories: cats, Products: prods, Admins: admins}.Load(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, Result{Categories: 1, Products: 2, Admins: 1, Skipped: 1}, res)
		prods.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("Product failure stops", func(t *testing.T) {
		cats, prods := new(MockCategories), new(MockProducts)
		cats.On("Create", ctx, mock.Anything, mock.Anything).Return(category.Category{}, nil)
		prods.On("Create", ctx, mock.Anything).Return(product.Product{}, errors.New("db down"))

		res, err := Loader{Categories: cats, Products: prods}.Load(ctx, f)
		assert.Error(t, err)
		assert.Equal(t, 0, res.Products)
	})
}
