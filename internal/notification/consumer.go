package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"leave-portal/internal/employee"
	"leave-portal/internal/events"
	"leave-portal/internal/leave"
	"leave-portal/internal/mailer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Consumer turns leave lifecycle events into emails: approvers get one-click
// approve/reject links when a request lands, requesters hear back when a
// decision is made.
type Consumer struct {
	reader    *kafkago.Reader
	employees employee.Repository
	tokens    *leave.ActionTokenSigner
	mail      mailer.Mailer
	baseURL   string
	logger    *zap.Logger
}

func NewConsumer(
	reader *kafkago.Reader,
	employees employee.Repository,
	tokens *leave.ActionTokenSigner,
	mail mailer.Mailer,
	baseURL string,
	logger ...*zap.Logger,
) *Consumer {
	l := zap.L().Named("notification.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.consumer")
	}
	return &Consumer{
		reader:    reader,
		employees: employees,
		tokens:    tokens,
		mail:      mail,
		baseURL:   baseURL,
		logger:    l,
	}
}

// Run consumes until the context is cancelled. A message that cannot be
// handled is logged and committed anyway; notification mail is best effort
// and must never wedge the partition.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("notification consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.logger.Info("notification consumer stopped")
				return nil
			}
			return err
		}

		if err := c.handle(ctx, msg); err != nil {
			c.logger.Error("handle lifecycle event failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafkago.Message) error {
	var event events.LeaveLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return err
	}

	switch event.EventType {
	case events.LeaveRequestedType:
		if event.Status != leave.StatusPending {
			return nil
		}
		return c.notifyApprovers(ctx, event)
	case events.LeaveStatusChangedType:
		return c.notifyRequester(ctx, event)
	default:
		return nil
	}
}

func (c *Consumer) notifyApprovers(ctx context.Context, event events.LeaveLifecycleEvent) error {
	emp, err := c.employees.FindByID(ctx, event.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	recipients, err := c.approverEmails(ctx, emp)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		c.logger.Warn("no approvers to notify", zap.String("leave_id", event.LeaveID))
		return nil
	}

	approveToken, err := c.tokens.Generate(event.LeaveID, "approve", "")
	if err != nil {
		return err
	}
	rejectToken, err := c.tokens.Generate(event.LeaveID, "reject", "")
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Leave request from %s (%s, %d day(s))",
		emp.FullName, event.LeaveType, event.TotalDays)
	body := fmt.Sprintf(`
<p>%s requested <b>%s</b> leave from %s to %s (%d day(s)).</p>
<p>
  <a href="%s/api/v1/leaves/actions?t=%s">Approve</a> &nbsp;|&nbsp;
  <a href="%s/api/v1/leaves/actions?t=%s">Reject</a>
</p>`,
		emp.FullName, event.LeaveType, event.StartDate, event.EndDate, event.TotalDays,
		c.baseURL, approveToken,
		c.baseURL, rejectToken,
	)

	return c.mail.Send(recipients, subject, body)
}

func (c *Consumer) notifyRequester(ctx context.Context, event events.LeaveLifecycleEvent) error {
	emp, err := c.employees.FindByID(ctx, event.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	subject := fmt.Sprintf("Your %s leave request was %s", event.LeaveType, event.Status)
	body := fmt.Sprintf(
		"<p>Your %s leave from %s to %s (%d day(s)) is now <b>%s</b>.</p>",
		event.LeaveType, event.StartDate, event.EndDate, event.TotalDays, event.Status,
	)
	return c.mail.Send([]string{emp.Email}, subject, body)
}

// approverEmails is the employee's team leads plus every org-wide approver,
// minus the requester themselves.
func (c *Consumer) approverEmails(ctx context.Context, emp *employee.Employee) ([]string, error) {
	seen := map[string]bool{emp.Email: true}
	var out []string

	if emp.TeamID != nil {
		leads, err := c.employees.TeamLeadEmails(ctx, *emp.TeamID)
		if err != nil {
			return nil, err
		}
		for _, e := range leads {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}

	managers, err := c.employees.OrgManagerEmails(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range managers {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out, nil
}
