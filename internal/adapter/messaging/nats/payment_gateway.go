package nats

import (
	"context"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
)

// ChargeRequest is what the payment processor receives on payments.requested.
type ChargeRequest struct {
	PaymentID   string `json:"payment_id"`
	UserID      string `json:"user_id"`
	UserEmail   string `json:"user_email"`
	Purpose     string `json:"purpose"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// PaymentResultMessage is what the processor sends back on
// payments.succeeded or payments.failed.
type PaymentResultMessage struct {
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason,omitempty"`
}

type eventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// PaymentGateway hands charges to the external processor over the bus.
type PaymentGateway struct {
	publisher eventPublisher
}

func NewPaymentGateway(publisher eventPublisher) *PaymentGateway {
	return &PaymentGateway{publisher: publisher}
}

func (g *PaymentGateway) RequestCharge(ctx context.Context, p *domain.Payment) error {
	return g.publisher.Publish(ctx, domain.SubjectPaymentRequested, ChargeRequest{
		PaymentID:   p.ID,
		UserID:      p.UserID,
		UserEmail:   p.UserEmail,
		Purpose:     string(p.Purpose),
		AmountMinor: p.Charge.MinorUnits(),
		Currency:    p.Charge.Currency,
		Quantity:    p.Charge.Quantity,
		Description: chargeDescription(p),
	})
}

func chargeDescription(p *domain.Payment) string {
	switch p.Purpose {
	case domain.PurposeRenewal:
		return "Surfdims listing renewal"
	case domain.PurposeDonation:
		return "Surfdims giveaway donation"
	}
	return "Surfdims new board listing"
}
