package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"food-catalog/catalog-svc/internal/domain"
	"food-catalog/catalog-svc/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgres(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

var restaurantRowColumns = []string{
	"id", "code", "name", "shipping_fee", "is_active", "is_open", "created_at", "updated_at",
	"k_id", "k_name",
	"zip", "street", "number", "complement", "district",
	"c_id", "c_name", "s_id", "s_name",
}

func restaurantRows() *sqlmock.Rows {
	return sqlmock.NewRows(restaurantRowColumns)
}

func addRestaurantRow(rows *sqlmock.Rows, id int64, code string, active, open bool) *sqlmock.Rows {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(id, code, "Bella Napoli", "5.00", active, open, now, now,
		1, "Italian",
		"38400-000", "Av. Brasil", "100", "", "Centro",
		2, "Uberlandia", 3, "Minas Gerais")
}

func TestPostgres_EnsureSchema(t *testing.T) {
	repo, mock := setupPostgres(t)
	for range schemaStatements {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestPostgres_EnsureSchemaReportsFailingStatement(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kitchens").WillReturnError(errors.New("permission denied"))

	err := repo.EnsureSchema(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CREATE TABLE IF NOT EXISTS kitchens (")
}

func TestPostgres_FindRestaurantByCode(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.code = $1")).
		WithArgs("bella").
		WillReturnRows(addRestaurantRow(restaurantRows(), 7, "bella", true, true))

	r, err := repo.FindRestaurantByCode(context.Background(), "bella")

	require.NoError(t, err)
	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, "Italian", r.Kitchen.Name)
	assert.Equal(t, "Minas Gerais", r.Address.City.State.Name)
	assert.Equal(t, "5", r.ShippingFee.String())
	assert.True(t, r.IsOpen)
}

func TestPostgres_FindRestaurantByCodeMissing(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectQuery("WHERE r.code").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindRestaurantByCode(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "no restaurant with code nope")
}

func TestPostgres_WithinTxLocksAndCommits(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.code = $1 FOR UPDATE OF r")).
		WithArgs("bella").
		WillReturnRows(addRestaurantRow(restaurantRows(), 7, "bella", false, false))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE restaurants")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	err := repo.WithinTx(context.Background(), func(tx service.Store) error {
		r, err := tx.FindRestaurantByCode(context.Background(), "bella")
		if err != nil {
			return err
		}
		r.Activate()
		return tx.SaveRestaurant(context.Background(), r)
	})

	require.NoError(t, err)
}

func TestPostgres_WithinTxRollsBackOnError(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM restaurants").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	boom := errors.New("abort")
	err := repo.WithinTx(context.Background(), func(tx service.Store) error {
		if _, err := tx.DeleteRestaurantByCode(context.Background(), "bella"); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestPostgres_WithinTxBeginFailure(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	err := repo.WithinTx(context.Background(), func(service.Store) error {
		t.Fatal("callback must not run")
		return nil
	})

	assert.ErrorContains(t, err, "begin transaction")
}

func TestPostgres_FindRestaurantsByCodesUsesArray(t *testing.T) {
	repo, mock := setupPostgres(t)
	rows := addRestaurantRow(restaurantRows(), 1, "a", false, false)
	addRestaurantRow(rows, 2, "b", false, false)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.code = ANY($1) ORDER BY r.id")).
		WithArgs(pq.Array([]string{"a", "b"})).
		WillReturnRows(rows)

	found, err := repo.FindRestaurantsByCodes(context.Background(), []string{"a", "b"})

	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "b", found[1].Code)
}

func TestPostgres_SearchRestaurantsPaginates(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM restaurants r WHERE r.name ILIKE $1")).
		WithArgs(`%50\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.name ILIKE $1 ORDER BY r.name DESC LIMIT $2 OFFSET $3")).
		WithArgs(`%50\%%`, 5, 10).
		WillReturnRows(addRestaurantRow(restaurantRows(), 11, "k", true, false))

	page, err := repo.SearchRestaurants(context.Background(), "50%", domain.PageRequest{Page: 2, Size: 5, Sort: "name,desc"})

	require.NoError(t, err)
	assert.Equal(t, int64(11), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Content, 1)
}

func TestPostgres_FreeDeliveryHasNoArgs(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM restaurants r WHERE r.shipping_fee = 0")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY r.id ASC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(restaurantRows())

	page, err := repo.ListRestaurantsWithFreeDelivery(context.Background(), domain.PageRequest{Size: 10, Sort: "bogus"})

	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.NotNil(t, page.Content)
}

func TestPostgres_InsertRestaurant(t *testing.T) {
	repo, mock := setupPostgres(t)
	now := time.Now()
	mock.ExpectQuery("INSERT INTO restaurants").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	r := &domain.Restaurant{Code: "new", Name: "New", Kitchen: domain.Kitchen{ID: 1}}
	require.NoError(t, repo.SaveRestaurant(context.Background(), r))

	assert.Equal(t, int64(42), r.ID)
}

func TestPostgres_InsertRestaurantDuplicateCode(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectQuery("INSERT INTO restaurants").WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := repo.SaveRestaurant(context.Background(), &domain.Restaurant{Code: "dup"})

	assert.ErrorContains(t, err, "restaurant code dup already taken")
}

func TestPostgres_UpdateMissingRestaurant(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectQuery("UPDATE restaurants").WillReturnError(sql.ErrNoRows)

	err := repo.SaveRestaurant(context.Background(), &domain.Restaurant{ID: 9, Code: "gone"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_DeleteRestaurantWithProducts(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectExec("DELETE FROM restaurants").
		WithArgs("busy").
		WillReturnError(&pq.Error{Code: pqForeignKeyViolation})

	_, err := repo.DeleteRestaurantByCode(context.Background(), "busy")

	assert.ErrorIs(t, err, domain.ErrEntityInUse)
}

func TestPostgres_Kitchens(t *testing.T) {
	repo, mock := setupPostgres(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM kitchens WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Thai"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM kitchens WHERE id = $1")).
		WithArgs(2).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO kitchens (name) VALUES ($1) RETURNING id")).
		WithArgs("Indian").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE kitchens SET name = $1 WHERE id = $2")).
		WithArgs("Indiana", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM kitchens").
		WithArgs(1).
		WillReturnError(&pq.Error{Code: pqForeignKeyViolation})

	k, err := repo.GetKitchen(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Thai", k.Name)

	_, err = repo.GetKitchen(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created := &domain.Kitchen{Name: "Indian"}
	require.NoError(t, repo.SaveKitchen(ctx, created))
	assert.Equal(t, int64(3), created.ID)

	err = repo.SaveKitchen(ctx, &domain.Kitchen{ID: 99, Name: "Indiana"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.DeleteKitchen(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrEntityInUse)
}

func TestPostgres_ListKitchens(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM kitchens")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY name ASC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Indian").AddRow(1, "Thai"))

	page, err := repo.ListKitchens(context.Background(), domain.PageRequest{Size: 10, Sort: "name"})

	require.NoError(t, err)
	assert.Equal(t, []domain.Kitchen{{ID: 2, Name: "Indian"}, {ID: 1, Name: "Thai"}}, page.Content)
}

func TestPostgres_GetCity(t *testing.T) {
	repo, mock := setupPostgres(t)
	mock.ExpectQuery("FROM cities c").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "s_id", "s_name"}).AddRow(2, "Uberlandia", 3, "Minas Gerais"))

	c, err := repo.GetCity(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, domain.City{ID: 2, Name: "Uberlandia", State: domain.State{ID: 3, Name: "Minas Gerais"}}, *c)
}

func TestPostgres_Products(t *testing.T) {
	repo, mock := setupPostgres(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE restaurant_id = $1 AND active ORDER BY id")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "name", "description", "price", "active"}).
			AddRow(1, 7, "Margherita", "classic", "39.90", true))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND restaurant_id = $2")).
		WithArgs(5, 7).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (product_id) DO UPDATE")).
		WithArgs(1, "a.png", "", "image/png", 10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	products, err := repo.ListProducts(ctx, 7, false)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "39.9", products[0].Price.String())

	_, err = repo.FindProduct(ctx, 7, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.SavePhoto(ctx, &domain.ProductPhoto{ProductID: 1, FileName: "a.png", ContentType: "image/png", Size: 10})
	require.NoError(t, err)
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{"", "r.id ASC"},
		{"name", "r.name ASC"},
		{"shipping_fee,desc", "r.shipping_fee DESC"},
		{"created_at, DESC", "r.created_at DESC"},
		{"name; DROP TABLE restaurants", "r.id ASC"},
	}
	for _, testCase := range tests {
		assert.Equal(t, testCase.want, orderBy(testCase.sort, restaurantSortColumns), testCase.sort)
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%bella%", likePattern("bella"))
	assert.Equal(t, `%a\_b\%c\\%`, likePattern(`a_b%c\`))
}
