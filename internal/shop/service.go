// Package shop manages the shop's own profile: the identity printed on
// invoices and used for UPI collection.
package shop

import (
	"context"
	"errors"
	"strings"

	"github.com/smartdukaan/backend-dukaan/internal/common"
	"github.com/smartdukaan/backend-dukaan/internal/store"
	"github.com/smartdukaan/backend-dukaan/internal/validate"
)

// Service orchestrates the shop profile.
type Service struct {
	Store *store.Store
}

// Profile is the API representation of the shop's identity.
type Profile struct {
	BusinessName string `json:"business_name"`
	OwnerName    string `json:"owner_name,omitempty"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	GSTIN        string `json:"gstin,omitempty"`
	UPIID        string `json:"upi_id,omitempty"`
	Language     string `json:"language"`
}

// Input captures profile fields for updates.
type Input struct {
	BusinessName string `json:"business_name" validate:"required"`
	OwnerName    string `json:"owner_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone" validate:"omitempty,inphone"`
	GSTIN        string `json:"gstin" validate:"gstin"`
	UPIID        string `json:"upi_id"`
	Language     string `json:"language" validate:"omitempty,oneof=en hi"`
}

func convertProfile(v store.Vendor) Profile {
	return Profile{
		BusinessName: v.BusinessName,
		OwnerName:    v.OwnerName,
		Address:      v.Address,
		Phone:        v.Phone,
		GSTIN:        v.GSTIN,
		UPIID:        v.UPIID,
		Language:     v.Language,
	}
}

// Get returns the shop profile, or defaults when none is saved yet.
func (s *Service) Get(ctx context.Context) (Profile, error) {
	v, err := s.Store.GetVendor(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{BusinessName: "My Shop", Language: "en"}, nil
		}
		return Profile{}, err
	}
	return convertProfile(v), nil
}

// Update validates and saves the shop profile.
func (s *Service) Update(ctx context.Context, in Input) (Profile, error) {
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.GSTIN = strings.ToUpper(strings.TrimSpace(in.GSTIN))
	in.Language = strings.ToLower(strings.TrimSpace(in.Language))
	if err := validate.Struct(in); err != nil {
		return Profile{}, common.BadRequest(err.Error())
	}
	if in.Language == "" {
		in.Language = "en"
	}
	v, err := s.Store.UpsertVendor(ctx, store.VendorInput{
		BusinessName: in.BusinessName,
		OwnerName:    strings.TrimSpace(in.OwnerName),
		Address:      strings.TrimSpace(in.Address),
		Phone:        in.Phone,
		GSTIN:        in.GSTIN,
		UPIID:        strings.TrimSpace(in.UPIID),
		Language:     in.Language,
	})
	if err != nil {
		return Profile{}, err
	}
	return convertProfile(v), nil
}
