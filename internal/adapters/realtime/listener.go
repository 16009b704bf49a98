package realtime

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/lib/pq"
	"github.com/sony/gobreaker"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/config"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

const (
	// PostgreSQL NOTIFY/LISTEN configuration
	listenerMinReconnectInterval = 10 * time.Second
	listenerMaxReconnectInterval = time.Minute
	sosChannelName               = "sos_alerts_channel"

	alertFetchTimeout     = 30 * time.Second
	catchUpTimeout        = 60 * time.Second
	periodicCatchUpPeriod = 90 * time.Second

	healthCheckStaleThreshold = 5 * time.Minute
)

// Listener tails the sos_alerts table via PostgreSQL NOTIFY and hands each
// new alert to the configured sinks (in-process hub, queue publisher). A
// periodic catch-up scan re-reads anything inserted while the connection was
// down, giving subscribers at-least-once delivery.
type Listener struct {
	alerts   ports.SOSRepository
	sinks    []ports.SOSAlertPublisher
	listener *pq.Listener
	dbURL    string
	dbCB     *gobreaker.CircuitBreaker

	// lastSeen is only touched from the Start goroutine. The health fields
	// are also read by the health endpoints, so they are atomics;
	// lastProcessed holds unix nanoseconds.
	lastSeen      time.Time
	lastProcessed atomic.Int64
	healthy       atomic.Bool
}

func NewListener(dbURL string, alerts ports.SOSRepository, sinks ...ports.SOSAlertPublisher) *Listener {
	l := &Listener{
		alerts:   alerts,
		sinks:    sinks,
		dbURL:    dbURL,
		dbCB:     config.NewCircuitBreaker("SOS-PostgreSQL"),
		lastSeen: time.Now(),
	}
	l.lastProcessed.Store(time.Now().UnixNano())
	l.healthy.Store(true)
	return l
}

// IsHealthy reports whether the listener process is alive (liveness probe).
func (l *Listener) IsHealthy() bool {
	return l.healthy.Load()
}

// IsReady reports whether the listener can deliver alerts (readiness probe).
func (l *Listener) IsReady() bool {
	if l.dbCB.State() == gobreaker.StateOpen {
		return false
	}
	lastProcessed := time.Unix(0, l.lastProcessed.Load())
	if time.Since(lastProcessed) > healthCheckStaleThreshold {
		return false
	}
	return l.healthy.Load()
}

// Start listens for sos_alerts insert notifications and dispatches them.
// Blocking; runs until the context is cancelled.
func (l *Listener) Start(ctx context.Context) error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("sos listener: %v", err)
		}
	}

	l.listener = pq.NewListener(l.dbURL, listenerMinReconnectInterval, listenerMaxReconnectInterval, reportProblem)
	defer l.listener.Close()

	if err := l.listener.Listen(sosChannelName); err != nil {
		return err
	}

	log.Printf("sos listener: listening on '%s' for alerts...", sosChannelName)

	if err := l.catchUp(ctx); err != nil {
		log.Printf("sos listener: startup catch-up failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("sos listener: shutting down...")
			return ctx.Err()

		case notification := <-l.listener.Notify:
			if notification == nil {
				log.Println("sos listener: received nil notification (reconnecting...)")
				l.healthy.Store(false)
				continue
			}

			if err := l.dispatchByID(ctx, notification.Extra); err != nil {
				log.Printf("sos listener: error dispatching alert %s: %v", notification.Extra, err)
			} else {
				l.lastProcessed.Store(time.Now().UnixNano())
				l.healthy.Store(true)
			}

		case <-time.After(periodicCatchUpPeriod):
			// Keep the connection alive and sweep up anything missed.
			go l.listener.Ping()

			if err := l.catchUp(ctx); err != nil {
				log.Printf("sos listener: periodic catch-up failed: %v", err)
			} else {
				l.lastProcessed.Store(time.Now().UnixNano())
			}
		}
	}
}

// dispatchByID fetches the notified row and fans it out. The notification
// payload is the alert id set by the notify_sos_alert trigger.
func (l *Listener) dispatchByID(ctx context.Context, alertID string) error {
	ctx, cancel := context.WithTimeout(ctx, alertFetchTimeout)
	defer cancel()

	result, err := l.dbCB.Execute(func() (interface{}, error) {
		return l.alerts.FindByID(ctx, alertID)
	})
	if err != nil {
		return err
	}

	alert, _ := result.(*domain.SOSAlert)
	if alert == nil {
		// Row vanished between notify and read; the catch-up sweep owns it.
		return nil
	}

	l.dispatch(ctx, *alert)
	return nil
}

// catchUp replays alerts inserted since the newest one we dispatched. It is
// the at-least-once safety net for notifications lost across reconnects.
func (l *Listener) catchUp(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, catchUpTimeout)
	defer cancel()

	result, err := l.dbCB.Execute(func() (interface{}, error) {
		return l.alerts.ListSince(ctx, l.lastSeen)
	})
	if err != nil {
		return err
	}

	alerts, _ := result.([]domain.SOSAlert)
	for _, alert := range alerts {
		l.dispatch(ctx, alert)
	}
	return nil
}

func (l *Listener) dispatch(ctx context.Context, alert domain.SOSAlert) {
	if alert.CreatedAt.After(l.lastSeen) {
		l.lastSeen = alert.CreatedAt
	}
	for _, sink := range l.sinks {
		if err := sink.PublishSOSAlert(ctx, alert); err != nil {
			log.Printf("sos listener: sink failed for alert %s: %v", alert.ID, err)
		}
	}
}
