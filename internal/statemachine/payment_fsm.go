package statemachine

import (
	"context"
	"fmt"

	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/looplab/fsm"
)

// PaymentFSM wraps a payment with its state machine
type PaymentFSM struct {
	payment *models.Payment
	fsm     *fsm.FSM
}

// NewPaymentFSM creates a new payment state machine
func NewPaymentFSM(payment *models.Payment) *PaymentFSM {
	pfsm := &PaymentFSM{
		payment: payment,
	}

	pfsm.fsm = fsm.NewFSM(
		payment.Status,
		fsm.Events{
			// pending → success (gateway confirmed funds)
			{Name: "succeed", Src: []string{models.PaymentStatusPending}, Dst: models.PaymentStatusSuccess},

			// pending → failed (gateway declined or charge failed)
			{Name: "fail", Src: []string{models.PaymentStatusPending}, Dst: models.PaymentStatusFailed},

			// pending → expired (abandoned attempt swept by the expiry job)
			{Name: "expire", Src: []string{models.PaymentStatusPending}, Dst: models.PaymentStatusExpired},
		},
		fsm.Callbacks{},
	)

	return pfsm
}

// Succeed transitions payment to success state
func (p *PaymentFSM) Succeed(ctx context.Context) error {
	if !p.payment.MaySucceed() {
		return fmt.Errorf("payment cannot succeed in current state: %s", p.payment.Status)
	}

	if err := p.fsm.Event(ctx, "succeed"); err != nil {
		return fmt.Errorf("failed to mark payment successful: %w", err)
	}

	p.payment.Status = p.fsm.Current()
	return nil
}

// Fail transitions payment to failed state
func (p *PaymentFSM) Fail(ctx context.Context) error {
	if !p.payment.MayFail() {
		return fmt.Errorf("payment cannot fail in current state: %s", p.payment.Status)
	}

	if err := p.fsm.Event(ctx, "fail"); err != nil {
		return fmt.Errorf("failed to mark payment failed: %w", err)
	}

	p.payment.Status = p.fsm.Current()
	return nil
}

// Expire transitions payment to expired state
func (p *PaymentFSM) Expire(ctx context.Context) error {
	if !p.payment.MayExpire() {
		return fmt.Errorf("payment cannot expire in current state: %s", p.payment.Status)
	}

	if err := p.fsm.Event(ctx, "expire"); err != nil {
		return fmt.Errorf("failed to expire payment: %w", err)
	}

	p.payment.Status = p.fsm.Current()
	return nil
}

// Current returns the current state
func (p *PaymentFSM) Current() string {
	return p.fsm.Current()
}

// Can checks if a transition is possible
func (p *PaymentFSM) Can(event string) bool {
	return p.fsm.Can(event)
}
