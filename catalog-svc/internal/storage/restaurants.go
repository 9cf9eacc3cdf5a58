package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"food-catalog/catalog-svc/internal/domain"

	"github.com/lib/pq"
)

const restaurantColumns = `
	SELECT r.id, r.code, r.name, r.shipping_fee, r.is_active, r.is_open, r.created_at, r.updated_at,
	       k.id, k.name,
	       r.address_zip_code, r.address_street, r.address_number, COALESCE(r.address_complement, ''), r.address_district,
	       c.id, c.name, s.id, s.name
	FROM restaurants r
	JOIN kitchens k ON k.id = r.kitchen_id
	JOIN cities c ON c.id = r.address_city_id
	JOIN states s ON s.id = c.state_id`

var restaurantSortColumns = map[string]string{
	"id":           "r.id",
	"name":         "r.name",
	"shipping_fee": "r.shipping_fee",
	"created_at":   "r.created_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row rowScanner) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	addr := &rest.Address
	if err := row.Scan(
		&rest.ID, &rest.Code, &rest.Name, &rest.ShippingFee, &rest.IsActive, &rest.IsOpen, &rest.CreatedAt, &rest.UpdatedAt,
		&rest.Kitchen.ID, &rest.Kitchen.Name,
		&addr.ZipCode, &addr.Street, &addr.Number, &addr.Complement, &addr.District,
		&addr.City.ID, &addr.City.Name, &addr.City.State.ID, &addr.City.State.Name,
	); err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) queryRestaurants(ctx context.Context, query string, args ...any) ([]domain.Restaurant, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) FindRestaurantByCode(ctx context.Context, code string) (*domain.Restaurant, error) {
	row := r.q.QueryRowContext(ctx, restaurantColumns+" WHERE r.code = $1"+r.lockClause(), code)
	rest, err := scanRestaurant(row)
	if err == sql.ErrNoRows {
		return nil, domain.RestaurantNotFound(code)
	}
	if err != nil {
		return nil, err
	}
	return rest, nil
}

func (r *PostgresRepository) FindRestaurantsByCodes(ctx context.Context, codes []string) ([]domain.Restaurant, error) {
	return r.queryRestaurants(ctx,
		restaurantColumns+" WHERE r.code = ANY($1) ORDER BY r.id"+r.lockClause(),
		pq.Array(codes))
}

func (r *PostgresRepository) FindRestaurantsByKitchen(ctx context.Context, kitchenID int64) ([]domain.Restaurant, error) {
	return r.queryRestaurants(ctx, restaurantColumns+" WHERE r.kitchen_id = $1 ORDER BY r.id", kitchenID)
}

func (r *PostgresRepository) SearchRestaurants(ctx context.Context, nameFragment string, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	where, args := "", []any{}
	if nameFragment != "" {
		where = " WHERE r.name ILIKE $1"
		args = append(args, likePattern(nameFragment))
	}
	return r.pageRestaurants(ctx, where, args, req)
}

func (r *PostgresRepository) ListRestaurantsWithFreeDelivery(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	return r.pageRestaurants(ctx, " WHERE r.shipping_fee = 0", nil, req)
}

func (r *PostgresRepository) pageRestaurants(ctx context.Context, where string, args []any, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	var total int64
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM restaurants r"+where, args...).Scan(&total); err != nil {
		return domain.Page[domain.Restaurant]{}, err
	}

	n := len(args)
	query := fmt.Sprintf("%s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		restaurantColumns, where, orderBy(req.Sort, restaurantSortColumns), n+1, n+2)
	restaurants, err := r.queryRestaurants(ctx, query, append(args, req.Size, req.Offset())...)
	if err != nil {
		return domain.Page[domain.Restaurant]{}, err
	}
	return domain.NewPage(restaurants, req, total), nil
}

func (r *PostgresRepository) SaveRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	addr := rest.Address
	if rest.ID == 0 {
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO restaurants (code, name, shipping_fee, is_active, is_open, kitchen_id,
				address_zip_code, address_street, address_number, address_complement, address_district, address_city_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id, created_at, updated_at`,
			rest.Code, rest.Name, rest.ShippingFee, rest.IsActive, rest.IsOpen, rest.Kitchen.ID,
			addr.ZipCode, addr.Street, addr.Number, addr.Complement, addr.District, addr.City.ID).
			Scan(&rest.ID, &rest.CreatedAt, &rest.UpdatedAt)
		if isPQError(err, pqUniqueViolation) {
			return fmt.Errorf("restaurant code %s already taken: %w", rest.Code, err)
		}
		return err
	}

	err := r.q.QueryRowContext(ctx, `
		UPDATE restaurants
		SET name = $1, shipping_fee = $2, is_active = $3, is_open = $4, kitchen_id = $5,
		    address_zip_code = $6, address_street = $7, address_number = $8, address_complement = $9,
		    address_district = $10, address_city_id = $11, updated_at = now()
		WHERE id = $12
		RETURNING updated_at`,
		rest.Name, rest.ShippingFee, rest.IsActive, rest.IsOpen, rest.Kitchen.ID,
		addr.ZipCode, addr.Street, addr.Number, addr.Complement, addr.District, addr.City.ID,
		rest.ID).
		Scan(&rest.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.RestaurantNotFound(rest.Code)
	}
	return err
}

func (r *PostgresRepository) DeleteRestaurantByCode(ctx context.Context, code string) (int64, error) {
	result, err := r.q.ExecContext(ctx, "DELETE FROM restaurants WHERE code = $1", code)
	if isPQError(err, pqForeignKeyViolation) {
		return 0, fmt.Errorf("%w: restaurant %s still has products", domain.ErrEntityInUse, code)
	}
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// orderBy turns "field" or "field,desc" into an ORDER BY expression using
// only whitelisted columns.
func orderBy(sort string, columns map[string]string) string {
	field, direction, _ := strings.Cut(sort, ",")
	column, ok := columns[strings.TrimSpace(field)]
	if !ok {
		column = columns["id"]
	}
	if strings.EqualFold(strings.TrimSpace(direction), "desc") {
		return column + " DESC"
	}
	return column + " ASC"
}
