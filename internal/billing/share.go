package billing

import (
	"context"
	"errors"

	"github.com/smartdukaan/backend-dukaan/internal/common"
	"github.com/smartdukaan/backend-dukaan/internal/share"
	"github.com/smartdukaan/backend-dukaan/internal/store"
)

// ShareLinks bundles the outbound payloads for one invoice.
type ShareLinks struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
	UPIPayload  string `json:"upi_payload,omitempty"`
}

// Share composes the WhatsApp receipt and UPI payment payload for an
// invoice, addressed to the customer's phone when one is on file.
func (s *Service) Share(ctx context.Context, id string) (ShareLinks, error) {
	inv, err := s.Store.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ShareLinks{}, common.NotFound("invoice not found")
		}
		return ShareLinks{}, err
	}
	if inv.Status == store.StatusVoid {
		return ShareLinks{}, common.BadRequest("void invoices cannot be shared")
	}

	vendor := share.Vendor{BusinessName: "My Shop"}
	upiID := ""
	if v, err := s.Store.GetVendor(ctx); err == nil {
		vendor = share.Vendor{
			BusinessName: v.BusinessName,
			Address:      v.Address,
			Phone:        v.Phone,
			GSTIN:        v.GSTIN,
		}
		upiID = v.UPIID
	} else if !errors.Is(err, store.ErrNotFound) {
		return ShareLinks{}, err
	}

	summary := share.InvoiceSummary{
		Number:      inv.Number,
		CreatedAt:   inv.CreatedAt,
		Subtotal:    inv.Subtotal,
		GSTTotal:    inv.GSTTotal,
		GrandTotal:  inv.GrandTotal,
		Paid:        inv.Status == store.StatusPaid,
		PaymentMode: inv.PaymentMode,
	}
	for _, item := range inv.Items {
		summary.Items = append(summary.Items, share.InvoiceLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	phone := ""
	if inv.CustomerID != "" {
		if customer, err := s.Store.GetCustomer(ctx, inv.CustomerID); err == nil {
			phone = customer.Phone
		}
	}

	message := share.InvoiceMessage(summary, vendor)
	links := ShareLinks{
		Message:     message,
		WhatsAppURL: share.WhatsAppLink(message, phone),
	}
	if inv.Status == store.StatusUnpaid {
		links.UPIPayload = share.UPIPayload(upiID, inv.GrandTotal, vendor.BusinessName)
	}
	return links, nil
}
