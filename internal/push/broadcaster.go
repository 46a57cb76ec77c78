// Package push refreshes every screen's countdown on a fixed cadence. The
// prayer package is evaluated from scratch on every tick.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

const DefaultInterval = 60 * time.Second

// StatusSource is the part of the timetable service the broadcaster needs.
type StatusSource interface {
	Locations() []string
	Status(ctx context.Context, location string, now time.Time) (prayer.Status, error)
}

// Message is the payload screens receive on <prefix>/<location>/countdown.
type Message struct {
	Type   string        `json:"type"`
	SentAt time.Time     `json:"sent_at"`
	Status prayer.Status `json:"status"`
}

type Broadcaster struct {
	source    StatusSource
	publisher Publisher
	clock     prayer.Clock
	prefix    string
	interval  time.Duration
}

func NewBroadcaster(source StatusSource, publisher Publisher, clock prayer.Clock, prefix string, interval time.Duration) *Broadcaster {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if prefix == "" {
		prefix = "athan"
	}
	return &Broadcaster{
		source:    source,
		publisher: publisher,
		clock:     clock,
		prefix:    strings.TrimSuffix(prefix, "/"),
		interval:  interval,
	}
}

// Topic returns the countdown topic for location.
func (b *Broadcaster) Topic(location string) string {
	return fmt.Sprintf("%s/%s/countdown", b.prefix, topicSegment(location))
}

// topicSegment keeps MQTT wildcards and separators out of a label.
func topicSegment(s string) string {
	r := strings.NewReplacer("/", "_", "+", "_", "#", "_", " ", "-")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

// Run publishes once immediately, then on every interval until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("countdown broadcaster stopped")
			return
		case <-ticker.C:
			b.Tick(ctx)
		}
	}
}

// Tick publishes the current status of every location and returns how many
// were delivered.
func (b *Broadcaster) Tick(ctx context.Context) int {
	now := b.clock.Now()
	sent := 0
	for _, location := range b.source.Locations() {
		if ctx.Err() != nil {
			break
		}
		st, err := b.source.Status(ctx, location, now)
		if err != nil {
			log.Error().Err(err).Str("location", location).Msg("failed to compute prayer status")
			continue
		}
		payload, err := json.Marshal(Message{Type: "countdown", SentAt: now, Status: st})
		if err != nil {
			log.Error().Err(err).Str("location", location).Msg("failed to encode countdown")
			continue
		}
		if err := b.publisher.Publish(b.Topic(location), payload); err != nil {
			log.Error().Err(err).Str("location", location).Msg("failed to publish countdown")
			continue
		}
		sent++
	}
	log.Debug().Int("sent", sent).Msg("countdown tick")
	return sent
}
