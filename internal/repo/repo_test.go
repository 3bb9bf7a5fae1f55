package repo

import (
	"context"
	"testing"

	"github.com/Skotchmaster/storefront/internal/models"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := pkgdb.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	return db
}

type fixture struct {
	brand    models.Brand
	category models.Category
	phone    models.Product
	case_    models.Product
	user     models.User
}

func seed(t *testing.T, db *gorm.DB, balance float64) *fixture {
	t.Helper()

	f := &fixture{
		brand:    models.Brand{Name: "Acme"},
		category: models.Category{Name: "Phones"},
	}
	require.NoError(t, db.Create(&f.brand).Error)
	require.NoError(t, db.Create(&f.category).Error)

	f.phone = models.Product{Name: "Phone", Price: 30, InStock: 5, BrandID: f.brand.ID, Categories: []models.Category{f.category}}
	f.case_ = models.Product{Name: "Case", Price: 5, InStock: 1, BrandID: f.brand.ID}
	require.NoError(t, db.Create(&f.phone).Error)
	require.NoError(t, db.Create(&f.case_).Error)

	pw, err := hash.HashPassword("secret")
	require.NoError(t, err)
	f.user = models.User{Name: "Ann", Email: "ann@example.com", Password: pw, Balance: balance}
	require.NoError(t, db.Create(&f.user).Error)

	return f
}

func stockOf(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()

	var p models.Product
	require.NoError(t, db.First(&p, productID).Error)
	return p.InStock
}

func TestCatalog(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}
	f := seed(t, db, 100)
	ctx := context.Background()

	products, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Phone", products[0].Name)
	require.NotNil(t, products[0].Brand)
	require.Equal(t, "Acme", products[0].Brand.Name)
	require.Len(t, products[0].Categories, 1)

	p, err := r.GetProduct(ctx, f.case_.ID)
	require.NoError(t, err)
	require.Equal(t, "Case", p.Name)

	_, err = r.GetProduct(ctx, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	byBrand, err := r.ProductsByBrand(ctx, f.brand.ID)
	require.NoError(t, err)
	require.Len(t, byBrand, 2)

	_, err = r.ProductsByBrand(ctx, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	byCategory, err := r.ProductsByCategory(ctx, f.category.ID)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.Equal(t, f.phone.ID, byCategory[0].ID)
	require.NotNil(t, byCategory[0].Brand)

	_, err = r.ProductsByCategory(ctx, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	brands, err := r.ListBrands(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	require.Len(t, brands[0].Products, 2)

	categories, err := r.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Len(t, categories[0].Products, 1)

	_, err = r.GetCategory(ctx, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = r.GetBrand(ctx, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUsers(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}
	seed(t, db, 100)
	ctx := context.Background()

	dup := models.User{Name: "Other", Email: "ann@example.com", Password: "x"}
	require.ErrorIs(t, r.CreateUserIfNotExists(ctx, &dup), ErrUserAlreadyExist)

	bob := models.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, r.CreateUserIfNotExists(ctx, &bob))
	require.NotZero(t, bob.ID)

	u, err := r.UserByCredentials(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "Ann", u.Name)

	_, err = r.UserByCredentials(ctx, "ann@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = r.UserByCredentials(ctx, "nobody@example.com", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	users, err := r.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestAddToCart_DecrementsStock(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}
	f := seed(t, db, 100)
	ctx := context.Background()

	item, err := r.AddToCart(ctx, f.user.ID, f.phone.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, item.Quantity)
	require.NotNil(t, item.Product)
	require.NotNil(t, item.Product.Brand)
	require.Equal(t, 3, stockOf(t, db, f.phone.ID))

	second, err := r.AddToCart(ctx, f.user.ID, f.phone.ID, 3)
	require.NoError(t, err)
	require.NotEqual(t, item.ID, second.ID)
	require.Equal(t, 0, stockOf(t, db, f.phone.ID))

	cart, err := r.GetCart(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, cart, 2)
}

func TestAddToCart_RejectsWithoutMutation(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}
	f := seed(t, db, 100)
	ctx := context.Background()

	_, err := r.AddToCart(ctx, f.user.ID, f.case_.ID, 2)
	require.ErrorIs(t, err, ErrOutOfStock)
	require.Equal(t, 1, stockOf(t, db, f.case_.ID))

	_, err = r.AddToCart(ctx, f.user.ID, 999, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	cart, err := r.GetCart(ctx, f.user.ID)
	require.NoError(t, err)
	require.Empty(t, cart)
}

func TestRemoveFromCart_RestoresStock(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}
	f := seed(t, db, 100)
	ctx := context.Background()

	item, err := r.AddToCart(ctx, f.user.ID, f.phone.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 1, stockOf(t, db, f.phone.ID))

	other := models.User{Name: "Eve", Email: "eve@example.com", Password: "x"}
	require.NoError(t, db.Create(&other).Error)
	_, err = r.RemoveFromCart(ctx, other.ID, item.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.Equal(t, 1, stockOf(t, db, f.phone.ID))

	removed, err := r.RemoveFromCart(ctx, f.user.ID, item.ID)
	require.NoError(t, err)
	require.Equal(t, 4, removed.Quantity)
	require.Equal(t, 5, stockOf(t, db, f.phone.ID))

	_, err = r.RemoveFromCart(ctx, f.user.ID, item.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCheckout_Success(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}
	f := seed(t, db, 100)
	ctx := context.Background()

	_, err := r.AddToCart(ctx, f.user.ID, f.phone.ID, 2)
	require.NoError(t, err)

	receipt, err := r.Checkout(ctx, f.user.ID)
	require.NoError(t, err)
	require.InDelta(t, 60, receipt.Total, 1e-9)
	require.InDelta(t, 40, receipt.Balance, 1e-9)
	require.Len(t, receipt.Purchases, 1)
	require.Equal(t, 2, receipt.Purchases[0].Quantity)
	require.InDelta(t, 30, receipt.Purchases[0].UnitPrice, 1e-9)
	require.NotNil(t, receipt.Purchases[0].Product)

	cart, err := r.GetCart(ctx, f.user.ID)
	require.NoError(t, err)
	require.Empty(t, cart)

	u, err := r.UserWithRelations(ctx, f.user.ID)
	require.NoError(t, err)
	require.InDelta(t, 40, u.Balance, 1e-9)
	require.Len(t, u.BoughtProducts, 1)
	require.NotNil(t, u.BoughtProducts[0].Product.Brand)
}

func TestCheckout_InsufficientBalance(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}
	f := seed(t, db, 60)
	ctx := context.Background()

	_, err := r.AddToCart(ctx, f.user.ID, f.phone.ID, 2)
	require.NoError(t, err)

	receipt, err := r.Checkout(ctx, f.user.ID)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.InDelta(t, 60, receipt.Total, 1e-9)

	u, err := r.UserWithRelations(ctx, f.user.ID)
	require.NoError(t, err)
	require.InDelta(t, 60, u.Balance, 1e-9)
	require.Len(t, u.Cart, 1)
	require.Empty(t, u.BoughtProducts)
	require.Equal(t, 3, stockOf(t, db, f.phone.ID))
}

func TestCheckout_UnknownUser(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}

	_, err := r.Checkout(context.Background(), 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCheckout_SeveralLines(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}
	f := seed(t, db, 1000)
	ctx := context.Background()

	lines := []struct {
		productID uint
		quantity  int
	}{
		{f.phone.ID, 2},
		{f.case_.ID, 1},
		{f.phone.ID, 1},
	}
	for _, ln := range lines {
		_, err := r.AddToCart(ctx, f.user.ID, ln.productID, ln.quantity)
		require.NoError(t, err)
	}

	receipt, err := r.Checkout(ctx, f.user.ID)
	require.NoError(t, err)
	require.InDelta(t, 95, receipt.Total, 1e-9)
	require.InDelta(t, 905, receipt.Balance, 1e-9)
	require.Len(t, receipt.Purchases, len(lines))
	for i, ln := range lines {
		require.Equal(t, ln.productID, receipt.Purchases[i].ProductID)
		require.Equal(t, ln.quantity, receipt.Purchases[i].Quantity)
	}
	require.InDelta(t, 5, receipt.Purchases[1].UnitPrice, 1e-9)

	cart, err := r.GetCart(ctx, f.user.ID)
	require.NoError(t, err)
	require.Empty(t, cart)
	require.Equal(t, 2, stockOf(t, db, f.phone.ID))
	require.Equal(t, 0, stockOf(t, db, f.case_.ID))

	again, err := r.Checkout(ctx, f.user.ID)
	require.NoError(t, err)
	require.InDelta(t, 0, again.Total, 1e-9)
	require.InDelta(t, 905, again.Balance, 1e-9)
	require.Empty(t, again.Purchases)

	u, err := r.UserWithRelations(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, u.BoughtProducts, len(lines))
}

func TestCheckout_EmptyCart(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}
	f := seed(t, db, 50)

	receipt, err := r.Checkout(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.InDelta(t, 0, receipt.Total, 1e-9)
	require.InDelta(t, 50, receipt.Balance, 1e-9)
	require.NotNil(t, receipt.Purchases)
	require.Empty(t, receipt.Purchases)
}

func TestCheckout_LineRemovedMidway(t *testing.T) {
	db := InitTestDB(t)
	r := &GormRepo{DB: db}
	f := seed(t, db, 1000)
	ctx := context.Background()

	first, err := r.AddToCart(ctx, f.user.ID, f.phone.ID, 2)
	require.NoError(t, err)
	_, err = r.AddToCart(ctx, f.user.ID, f.case_.ID, 1)
	require.NoError(t, err)

	// Drops one line after the purchases are written, inside the same transaction.
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:drop_cart_line", func(tx *gorm.DB) {
		if tx.Error != nil || tx.Statement.Table != "bought_products" {
			return
		}
		if err := tx.Session(&gorm.Session{NewDB: true}).Exec("DELETE FROM cart_items WHERE id = ?", first.ID).Error; err != nil {
			_ = tx.AddError(err)
		}
	}))

	_, err = r.Checkout(ctx, f.user.ID)
	require.ErrorIs(t, err, ErrCartChanged)

	u, err := r.UserWithRelations(ctx, f.user.ID)
	require.NoError(t, err)
	require.InDelta(t, 1000, u.Balance, 1e-9)
	require.Empty(t, u.BoughtProducts)
	require.Len(t, u.Cart, 2)
}
