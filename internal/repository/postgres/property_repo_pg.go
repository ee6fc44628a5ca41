package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nycbookings/api/internal/domain"
)

const propertyColumns = `id, title, location, neighborhood, price, rating, reviewcount, images,
       host, hostimage, hostjoineddate, amenities, description,
       bedrooms, bathrooms, beds, guests, checkin, checkout, houserules,
       cancellationpolicy, coordinates, neighborhoodinfo, reviews,
       listing_id, hostexwidgetid, scriptsrc, isactive, createdat, updatedat`

type PropertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepo(db *sqlx.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) ListActive(ctx context.Context, filter domain.PropertyFilter, limit, offset int) ([]domain.Property, int64, error) {
	where := []string{"isactive = TRUE"}
	args := []any{}
	idx := 1

	if strings.TrimSpace(filter.Location) != "" {
		where = append(where, fmt.Sprintf("(location ILIKE $%d OR neighborhood ILIKE $%d)", idx, idx))
		args = append(args, "%"+strings.TrimSpace(filter.Location)+"%")
		idx++
	}
	if filter.MinPrice != nil {
		where = append(where, fmt.Sprintf("price >= $%d", idx))
		args = append(args, *filter.MinPrice)
		idx++
	}
	if filter.MaxPrice != nil {
		where = append(where, fmt.Sprintf("price <= $%d", idx))
		args = append(args, *filter.MaxPrice)
		idx++
	}
	if filter.MinBedrooms != nil {
		where = append(where, fmt.Sprintf("bedrooms >= $%d", idx))
		args = append(args, *filter.MinBedrooms)
		idx++
	}
	if filter.MinGuests != nil {
		where = append(where, fmt.Sprintf("guests >= $%d", idx))
		args = append(args, *filter.MinGuests)
		idx++
	}

	return r.list(ctx, where, args, idx, limit, offset)
}

func (r *PropertyRepository) ListAll(ctx context.Context, search string, limit, offset int) ([]domain.Property, int64, error) {
	where := []string{"TRUE"}
	args := []any{}
	idx := 1

	if strings.TrimSpace(search) != "" {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR location ILIKE $%d)", idx, idx))
		args = append(args, "%"+strings.TrimSpace(search)+"%")
		idx++
	}

	return r.list(ctx, where, args, idx, limit, offset)
}

func (r *PropertyRepository) list(ctx context.Context, where []string, args []any, idx, limit, offset int) ([]domain.Property, int64, error) {
	whereClause := strings.Join(where, " AND ")

	countQuery := `SELECT COUNT(*) FROM properties WHERE ` + whereClause
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`
        SELECT `+propertyColumns+`
        FROM properties
        WHERE %s
        ORDER BY createdat DESC
        LIMIT $%d OFFSET $%d
    `, whereClause, idx, idx+1)
	args = append(args, limit, offset)

	properties := []domain.Property{}
	if err := r.db.SelectContext(ctx, &properties, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *PropertyRepository) FindActiveByID(ctx context.Context, id string) (*domain.Property, error) {
	const query = `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 AND isactive = TRUE`
	var property domain.Property
	if err := r.db.GetContext(ctx, &property, query, id); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	const query = `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	var property domain.Property
	if err := r.db.GetContext(ctx, &property, query, id); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	const query = `
        INSERT INTO properties (
            id, title, location, neighborhood, price, rating, reviewcount, images,
            host, hostimage, hostjoineddate, amenities, description,
            bedrooms, bathrooms, beds, guests, checkin, checkout, houserules,
            cancellationpolicy, coordinates, neighborhoodinfo, reviews,
            listing_id, hostexwidgetid, scriptsrc, isactive
        ) VALUES (
            :id, :title, :location, :neighborhood, :price, :rating, :reviewcount, :images,
            :host, :hostimage, :hostjoineddate, :amenities, :description,
            :bedrooms, :bathrooms, :beds, :guests, :checkin, :checkout, :houserules,
            :cancellationpolicy, :coordinates, :neighborhoodinfo, :reviews,
            :listing_id, :hostexwidgetid, :scriptsrc, :isactive
        )
        RETURNING ` + propertyColumns

	rows, err := r.db.NamedQueryContext(ctx, query, property)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var created domain.Property
		if err = rows.StructScan(&created); err != nil {
			return nil, err
		}
		return &created, nil
	}
	return nil, sql.ErrNoRows
}

func (r *PropertyRepository) Update(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	const query = `
        UPDATE properties
        SET title = :title,
            location = :location,
            neighborhood = :neighborhood,
            price = :price,
            rating = :rating,
            reviewcount = :reviewcount,
            images = :images,
            host = :host,
            hostimage = :hostimage,
            hostjoineddate = :hostjoineddate,
            amenities = :amenities,
            description = :description,
            bedrooms = :bedrooms,
            bathrooms = :bathrooms,
            beds = :beds,
            guests = :guests,
            checkin = :checkin,
            checkout = :checkout,
            houserules = :houserules,
            cancellationpolicy = :cancellationpolicy,
            coordinates = :coordinates,
            neighborhoodinfo = :neighborhoodinfo,
            reviews = :reviews,
            listing_id = :listing_id,
            hostexwidgetid = :hostexwidgetid,
            scriptsrc = :scriptsrc,
            isactive = :isactive,
            updatedat = NOW()
        WHERE id = :id
        RETURNING ` + propertyColumns

	rows, err := r.db.NamedQueryContext(ctx, query, property)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var updated domain.Property
		if err = rows.StructScan(&updated); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, sql.ErrNoRows
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM properties WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PropertyRepository) ReplaceReviews(ctx context.Context, id string, reviews domain.Reviews, rating float64, reviewCount int) (*domain.Property, error) {
	const query = `
        UPDATE properties
        SET reviews = $2,
            rating = $3,
            reviewcount = $4,
            updatedat = NOW()
        WHERE id = $1
        RETURNING ` + propertyColumns

	row := r.db.QueryRowxContext(ctx, query, id, reviews, rating, reviewCount)
	var property domain.Property
	if err := row.StructScan(&property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM properties WHERE isactive = TRUE`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, err
	}
	return ids, nil
}
