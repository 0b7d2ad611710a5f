/*
notify.go - Outbound notification boundary

PURPOSE:
  After a successful state transition the lifecycle manager hands a
  structured payload to a sink, fire-and-forget. Delivery failures are
  logged and swallowed; they never roll back or block the transition.
  Actual delivery (email, chat) lives outside the engine.
*/
package schedule

import (
	"context"

	"github.com/sirupsen/logrus"
)

type NotificationType string

const (
	NotifyCreated         NotificationType = "created"
	NotifyUpdated         NotificationType = "updated"
	NotifyApproved        NotificationType = "approved"
	NotifyPartnerApproved NotificationType = "partner_approved"
	NotifyCancelled       NotificationType = "cancelled"
)

// Notification is the structured payload handed to the sink.
type Notification struct {
	Type          NotificationType
	Record        string // "assignment" or "leave"
	RecordID      string
	ActionBy      string // actor display name
	EmployeeNames []string

	Date      string // assignment date or leave start date
	EndDate   string // leave end date
	StartTime string
	EndTime   string

	ClientName   string
	ActivityName string
	JobType      string
	LeaveType    string
	Reason       string
	Status       string
}

// NotificationSink receives payloads after successful transitions.
type NotificationSink interface {
	Notify(ctx context.Context, n Notification) error
}

// LogSink logs every notification instead of delivering it. Used as the
// default sink and in tests.
type LogSink struct {
	Logger *logrus.Logger
}

func (s *LogSink) Notify(_ context.Context, n Notification) error {
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithFields(logrus.Fields{
		"type":      n.Type,
		"record":    n.Record,
		"record_id": n.RecordID,
		"action_by": n.ActionBy,
		"employees": n.EmployeeNames,
		"date":      n.Date,
		"status":    n.Status,
	}).Info("notification")
	return nil
}

// NopSink discards notifications.
type NopSink struct{}

func (NopSink) Notify(context.Context, Notification) error { return nil }
