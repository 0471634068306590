package services

import (
	"github.com/sirupsen/logrus"
)

// Audit event routing keys.
const (
	EventUserRegistered = "user.registered"
	EventUserUpdated    = "user.updated"
	EventUserDeleted    = "user.deleted"
	EventPostCreated    = "post.created"
	EventPostUpdated    = "post.updated"
	EventPostDeleted    = "post.deleted"
)

// EventPublisher sends audit events to an external broker.
type EventPublisher interface {
	Publish(routingKey string, payload interface{}) error
}

// publish is fire-and-forget: a nil publisher or a broker failure never fails
// the request that produced the event.
func publish(p EventPublisher, routingKey string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		logrus.WithError(err).WithField("event", routingKey).Warn("failed to publish audit event")
	}
}
