package db

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfreund/ipam-console/internal/domain"
)

type IPRepository struct {
	pool *pgxpool.Pool
}

func NewIPRepository(pool *pgxpool.Pool) *IPRepository {
	return &IPRepository{pool: pool}
}

const ipColumns = `i.id, i.ip_address, i.dns_name, i.architecture, i.function, i.subnet_id,
	s.name, s.cidr::text, i.created_at, i.updated_at`

const ipSelect = `SELECT ` + ipColumns + `
	FROM ip_records i
	JOIN subnets s ON s.id = i.subnet_id`

func (r *IPRepository) ListBySubnetIDs(ctx context.Context, subnetIDs []int64) ([]domain.IPRecord, error) {
	rows, err := r.pool.Query(ctx, ipSelect+` WHERE i.subnet_id = ANY($1) ORDER BY i.ip_address`, subnetIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIPs(rows)
}

func (r *IPRepository) ListAll(ctx context.Context) ([]domain.IPRecord, error) {
	rows, err := r.pool.Query(ctx, ipSelect+` ORDER BY i.ip_address`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIPs(rows)
}

func (r *IPRepository) FindBySubnetAndAddress(ctx context.Context, subnetID int64, ip string) (domain.IPRecord, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return domain.IPRecord{}, domain.ErrInvalidInput
	}

	row := r.pool.QueryRow(ctx, ipSelect+` WHERE i.subnet_id = $1 AND i.ip_address = $2`, subnetID, addr)
	rec, err := scanIP(row)
	if err != nil {
		if isNoRows(err) {
			return domain.IPRecord{}, domain.ErrNotFound
		}
		return domain.IPRecord{}, err
	}
	return rec, nil
}

func (r *IPRepository) Create(ctx context.Context, input domain.CreateIPInput, subnetID int64) (domain.IPRecord, error) {
	addr, err := netip.ParseAddr(input.IPAddress)
	if err != nil {
		return domain.IPRecord{}, domain.ErrInvalidInput
	}

	var id pgtype.UUID
	err = r.pool.QueryRow(ctx,
		`INSERT INTO ip_records (ip_address, dns_name, architecture, function, subnet_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		addr, input.DNSName, input.Architecture, input.Function, subnetID).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.IPRecord{}, domain.ErrConflict
		}
		return domain.IPRecord{}, err
	}

	return r.getByID(ctx, id)
}

func (r *IPRepository) Update(ctx context.Context, id domain.IPRecordID, input domain.UpdateIPInput) (domain.IPRecord, error) {
	parsedID, err := parseRecordID(id)
	if err != nil {
		return domain.IPRecord{}, fmt.Errorf("%w: invalid ip id", domain.ErrInvalidInput)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE ip_records
		 SET dns_name     = COALESCE($2, dns_name),
		     architecture = COALESCE($3, architecture),
		     function     = COALESCE($4, function),
		     updated_at   = now()
		 WHERE id = $1`,
		parsedID, input.DNSName, input.Architecture, input.Function)
	if err != nil {
		return domain.IPRecord{}, err
	}
	if tag.RowsAffected() == 0 {
		return domain.IPRecord{}, domain.ErrNotFound
	}

	return r.getByID(ctx, parsedID)
}

func (r *IPRepository) Reassign(ctx context.Context, id domain.IPRecordID, subnetID int64) error {
	parsedID, err := parseRecordID(id)
	if err != nil {
		return fmt.Errorf("%w: invalid ip id", domain.ErrInvalidInput)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE ip_records SET subnet_id = $2, updated_at = now() WHERE id = $1`,
		parsedID, subnetID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *IPRepository) Delete(ctx context.Context, id domain.IPRecordID) (bool, error) {
	parsedID, err := parseRecordID(id)
	if err != nil {
		return false, fmt.Errorf("%w: invalid ip id", domain.ErrInvalidInput)
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM ip_records WHERE id = $1`, parsedID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IPRepository) getByID(ctx context.Context, id pgtype.UUID) (domain.IPRecord, error) {
	row := r.pool.QueryRow(ctx, ipSelect+` WHERE i.id = $1`, id)
	rec, err := scanIP(row)
	if err != nil {
		if isNoRows(err) {
			return domain.IPRecord{}, domain.ErrNotFound
		}
		return domain.IPRecord{}, err
	}
	return rec, nil
}

func collectIPs(rows pgx.Rows) ([]domain.IPRecord, error) {
	out := make([]domain.IPRecord, 0)
	for rows.Next() {
		rec, err := scanIP(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanIP(row rowScanner) (domain.IPRecord, error) {
	var (
		rec       domain.IPRecord
		id        pgtype.UUID
		addr      netip.Addr
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(&id, &addr, &rec.DNSName, &rec.Architecture, &rec.Function,
		&rec.SubnetID, &rec.SubnetName, &rec.SubnetCIDR, &createdAt, &updatedAt)
	if err != nil {
		return domain.IPRecord{}, err
	}
	rec.ID = domain.IPRecordID(uuid.UUID(id.Bytes).String())
	rec.IPAddress = addr.String()
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	return rec, nil
}

func parseRecordID(id domain.IPRecordID) (pgtype.UUID, error) {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return pgtype.UUID{}, err
	}

	var parsed pgtype.UUID
	copy(parsed.Bytes[:], u[:])
	parsed.Valid = true
	return parsed, nil
}
