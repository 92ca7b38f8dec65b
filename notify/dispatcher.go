package notify

import (
	"context"
	"sync"
	"time"

	"petfinder-backend/models"

	"github.com/apex/log"
)

const defaultChannelTimeout = 10 * time.Second

// Dispatcher fans one alert out to every channel the owner is reachable on.
// Channels are attempted concurrently and independently: a failing or
// stalled channel neither blocks nor cancels its siblings.
type Dispatcher struct {
	handlers map[string]ChannelHandler
	timeout  time.Duration
}

// NewDispatcher builds a dispatcher over the given channel handlers
// ("email", "push"). timeout bounds each individual channel attempt.
func NewDispatcher(handlers map[string]ChannelHandler, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultChannelTimeout
	}
	return &Dispatcher{handlers: handlers, timeout: timeout}
}

// NotifyOwner scatter-gathers one delivery attempt per reachable channel and
// returns all outcomes once every attempt has finished. Failures are
// collected, logged and returned; they are never fatal to the dispatch.
func (d *Dispatcher) NotifyOwner(ctx context.Context, owner *models.User, msg Message) []Outcome {
	notifs := d.reachable(owner, msg)

	outcomes := make([]Outcome, 0, len(notifs))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, notif := range notifs {
		handler, ok := d.handlers[notif.Channel]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(n Notification, h ChannelHandler) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			err := h.Send(sendCtx, n)
			if err != nil {
				log.WithError(err).WithFields(log.Fields{
					"channel": n.Channel,
					"pet_id":  n.Message.PetID,
				}).Error("notification dispatch failed")
			} else {
				log.WithFields(log.Fields{
					"channel": n.Channel,
					"pet_id":  n.Message.PetID,
				}).Info("notification dispatched")
			}

			mu.Lock()
			outcomes = append(outcomes, Outcome{Channel: n.Channel, Recipient: n.Recipient, Err: err})
			mu.Unlock()
		}(notif, handler)
	}

	wg.Wait()
	return outcomes
}

// reachable maps the owner's contact surface to channel-bound notifications.
func (d *Dispatcher) reachable(owner *models.User, msg Message) []Notification {
	var notifs []Notification
	if owner.Email != "" {
		notifs = append(notifs, Notification{Channel: "email", Recipient: owner.Email, Message: msg})
	}
	if owner.PushToken != "" {
		notifs = append(notifs, Notification{Channel: "push", Recipient: owner.PushToken, Message: msg})
	}
	return notifs
}
