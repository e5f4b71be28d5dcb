package db

import (
	"context"
	"net/netip"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfreund/ipam-console/internal/domain"
)

type SubnetRepository struct {
	pool *pgxpool.Pool
}

func NewSubnetRepository(pool *pgxpool.Pool) *SubnetRepository {
	return &SubnetRepository{pool: pool}
}

const subnetColumns = `id, name, cidr, description, parent_id, created_at, updated_at`

func (r *SubnetRepository) List(ctx context.Context) ([]domain.Subnet, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+subnetColumns+` FROM subnets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Subnet
	for rows.Next() {
		subnet, err := scanSubnet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, subnet)
	}
	return out, rows.Err()
}

func (r *SubnetRepository) FindByID(ctx context.Context, id int64) (domain.Subnet, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+subnetColumns+` FROM subnets WHERE id = $1`, id)
	subnet, err := scanSubnet(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Subnet{}, domain.ErrNotFound
		}
		return domain.Subnet{}, err
	}
	return subnet, nil
}

func (r *SubnetRepository) Create(ctx context.Context, input domain.CreateSubnetInput) (domain.Subnet, error) {
	prefix, err := netip.ParsePrefix(input.CIDR)
	if err != nil {
		return domain.Subnet{}, domain.ErrInvalidInput
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO subnets (name, cidr, description, parent_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+subnetColumns,
		input.Name, prefix, input.Description, input.ParentID)

	subnet, err := scanSubnet(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Subnet{}, domain.ErrConflict
		}
		return domain.Subnet{}, err
	}
	return subnet, nil
}

func (r *SubnetRepository) Update(ctx context.Context, id int64, input domain.UpdateSubnetInput) (domain.Subnet, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE subnets
		 SET name        = COALESCE($2, name),
		     description = COALESCE($3, description),
		     updated_at  = now()
		 WHERE id = $1
		 RETURNING `+subnetColumns,
		id, input.Name, input.Description)

	subnet, err := scanSubnet(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Subnet{}, domain.ErrNotFound
		}
		return domain.Subnet{}, err
	}
	return subnet, nil
}

func (r *SubnetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subnets WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubnet(row rowScanner) (domain.Subnet, error) {
	var (
		s         domain.Subnet
		prefix    netip.Prefix
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&s.ID, &s.Name, &prefix, &s.Description, &s.ParentID, &createdAt, &updatedAt); err != nil {
		return domain.Subnet{}, err
	}
	s.CIDR = prefix.String()
	s.CreatedAt = createdAt
	s.UpdatedAt = updatedAt
	return s, nil
}
