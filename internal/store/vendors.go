package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Vendor is the shop's own profile. A deployment holds exactly one row.
type Vendor struct {
	ID           string
	BusinessName string
	OwnerName    string
	Address      string
	Phone        string
	GSTIN        string
	UPIID        string
	Language     string
	UpdatedAt    time.Time
}

// VendorInput captures profile fields for upserts.
type VendorInput struct {
	BusinessName string
	OwnerName    string
	Address      string
	Phone        string
	GSTIN        string
	UPIID        string
	Language     string
}

const vendorColumns = `id, business_name, owner_name, address, phone, gstin, upi_id, language, updated_at`

func scanVendor(row pgx.Row) (Vendor, error) {
	var (
		v         Vendor
		id        pgtype.UUID
		ownerName pgtype.Text
		address   pgtype.Text
		phone     pgtype.Text
		gstin     pgtype.Text
		upiID     pgtype.Text
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &v.BusinessName, &ownerName, &address, &phone, &gstin, &upiID, &v.Language, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Vendor{}, ErrNotFound
		}
		return Vendor{}, err
	}
	v.ID = uuidString(id)
	v.OwnerName = textToString(ownerName)
	v.Address = textToString(address)
	v.Phone = textToString(phone)
	v.GSTIN = textToString(gstin)
	v.UPIID = textToString(upiID)
	v.UpdatedAt = timeFromPG(updatedAt)
	return v, nil
}

// GetVendor fetches the shop profile.
func (s *Store) GetVendor(ctx context.Context) (Vendor, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors ORDER BY updated_at DESC LIMIT 1`)
	return scanVendor(row)
}

// UpsertVendor creates or replaces the shop profile.
func (s *Store) UpsertVendor(ctx context.Context, in VendorInput) (Vendor, error) {
	existing, err := s.GetVendor(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Vendor{}, err
		}
		row := s.Pool.QueryRow(ctx, `
			INSERT INTO vendors (business_name, owner_name, address, phone, gstin, upi_id, language)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+vendorColumns,
			in.BusinessName, toText(in.OwnerName), toText(in.Address),
			toText(in.Phone), toText(in.GSTIN), toText(in.UPIID), in.Language)
		return scanVendor(row)
	}

	uid, err := toUUID(existing.ID)
	if err != nil {
		return Vendor{}, err
	}
	row := s.Pool.QueryRow(ctx, `
		UPDATE vendors
		SET business_name = $2, owner_name = $3, address = $4, phone = $5,
		    gstin = $6, upi_id = $7, language = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING `+vendorColumns,
		uid, in.BusinessName, toText(in.OwnerName), toText(in.Address),
		toText(in.Phone), toText(in.GSTIN), toText(in.UPIID), in.Language)
	return scanVendor(row)
}
