package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const (
	paymentQueueGroup = "surfdims-payments"
	resolveTimeout    = 15 * time.Second
)

// PaymentResolver applies a processor outcome.
type PaymentResolver interface {
	Resolve(ctx context.Context, result domain.PaymentResult) error
}

// PaymentSubscriber feeds payment outcomes from the bus into a resolver.
type PaymentSubscriber struct {
	conn     *nats.Conn
	resolver PaymentResolver
	logger   *logger.Logger
	subs     []*nats.Subscription
}

func NewPaymentSubscriber(conn *nats.Conn, resolver PaymentResolver, log *logger.Logger) *PaymentSubscriber {
	return &PaymentSubscriber{conn: conn, resolver: resolver, logger: log.Named("PaymentSubscriber")}
}

// Start subscribes in a queue group so each outcome is handled by one replica.
func (s *PaymentSubscriber) Start() error {
	for _, subject := range []string{domain.SubjectPaymentSucceeded, domain.SubjectPaymentFailed} {
		sub, err := s.conn.QueueSubscribe(subject, paymentQueueGroup, s.handle)
		if err != nil {
			s.Stop()
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
	}
	s.logger.Info("payment result subscriber started")
	return nil
}

func (s *PaymentSubscriber) Stop() {
	for _, sub := range s.subs {
		if err := sub.Drain(); err != nil {
			s.logger.Warn("failed to drain subscription", zap.String("subject", sub.Subject), zap.Error(err))
		}
	}
	s.subs = nil
}

func (s *PaymentSubscriber) handle(msg *nats.Msg) {
	ctx := context.Background()
	if msg.Header != nil {
		ctx = otel.GetTextMapPropagator().Extract(ctx, HeaderCarrier(msg.Header))
	}
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()
	ctx, span := tracer.Start(ctx, "NATS.Consume."+msg.Subject)
	defer span.End()

	result, err := decodeResult(msg)
	if err != nil {
		s.logger.Error("dropping malformed payment result", zap.String("subject", msg.Subject), zap.Error(err))
		return
	}
	if err := s.resolver.Resolve(ctx, result); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to resolve payment",
			zap.String("payment_id", result.PaymentID),
			zap.Bool("succeeded", result.Succeeded),
			zap.Error(err))
	}
}

func decodeResult(msg *nats.Msg) (domain.PaymentResult, error) {
	var m PaymentResultMessage
	if err := json.Unmarshal(msg.Data, &m); err != nil {
		return domain.PaymentResult{}, err
	}
	if m.PaymentID == "" {
		return domain.PaymentResult{}, fmt.Errorf("missing payment_id")
	}
	return domain.PaymentResult{
		PaymentID: m.PaymentID,
		Succeeded: msg.Subject == domain.SubjectPaymentSucceeded,
		Reason:    m.Reason,
	}, nil
}
