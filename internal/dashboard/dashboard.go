package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultCity is committed at mount when no other city is configured.
const DefaultCity = "London"

// subscriberBuffer is how many views a slow subscriber may lag behind.
const subscriberBuffer = 8

// ErrAlreadyMounted is returned by a second call to Mount.
var ErrAlreadyMounted = errors.New("dashboard already mounted")

// Fetcher resolves the current weather for a committed city.
type Fetcher interface {
	Lookup(ctx context.Context, city string) (weather.WeatherSnapshot, error)
}

// Observer is told about fetch results that arrived after a newer commit.
type Observer interface {
	ObserveDiscarded()
}

// View is a consistent copy of everything a rendering surface needs.
type View struct {
	City  string       `json:"city"`
	Draft string       `json:"draft"`
	State RequestState `json:"state"`
}

// Dashboard is the weather widget: a query state holder plus the loop that
// reconciles fetch results into a RequestState.
//
// All state lives behind mu. Each commit bumps seq and only the attempt
// carrying the latest seq may write its result; older ones are dropped.
type Dashboard struct {
	fetcher  Fetcher
	observer Observer
	logger   *slog.Logger

	mu        sync.Mutex
	query     *QueryState
	state     RequestState
	seq       uint64
	ctx       context.Context
	mounted   bool
	unmounted bool
	nextSubID int
	subs      map[int]chan View

	inflight sync.WaitGroup
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithInitialCity overrides DefaultCity. Blank values are ignored.
func WithInitialCity(city string) Option {
	return func(d *Dashboard) {
		if c := strings.TrimSpace(city); c != "" {
			d.query = NewQueryState(c)
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dashboard) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithObserver reports discarded results to o.
func WithObserver(o Observer) Option {
	return func(d *Dashboard) { d.observer = o }
}

// New creates an unmounted Dashboard in the Loading state.
func New(fetcher Fetcher, opts ...Option) *Dashboard {
	d := &Dashboard{
		fetcher: fetcher,
		logger:  slog.Default(),
		query:   NewQueryState(DefaultCity),
		state:   Loading(),
		subs:    make(map[int]chan View),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mount starts the first fetch for the committed city. Every fetch issued by
// this Dashboard runs under ctx.
func (d *Dashboard) Mount(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.mounted {
		return ErrAlreadyMounted
	}
	d.mounted = true
	d.ctx = ctx
	d.startFetchLocked()
	return nil
}

// Unmount stops applying results and closes every subscription.
// In-flight requests are not cancelled; their results are dropped.
func (d *Dashboard) Unmount() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.unmounted {
		return
	}
	d.unmounted = true
	for id, ch := range d.subs {
		close(ch)
		delete(d.subs, id)
	}
}

// UpdateDraft replaces the in-progress text. It never triggers a fetch.
func (d *Dashboard) UpdateDraft(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.query.UpdateDraft(text)
	d.publishLocked()
}

// Submit commits the trimmed draft. It reports whether the draft was accepted;
// a blank draft is a silent no-op. A fetch starts only when the committed city
// actually changes and the dashboard is mounted.
func (d *Dashboard) Submit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	submitted, changed := d.query.Submit()
	if !submitted {
		return false
	}
	if changed && d.mounted && !d.unmounted {
		d.startFetchLocked()
		return true
	}
	d.publishLocked()
	return true
}

// View returns a snapshot of the current render state.
func (d *Dashboard) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewLocked()
}

// Subscribe returns a channel receiving a View after every change, starting
// with the current one. A slow reader loses the oldest queued views, never the
// newest. The channel is closed by the returned cancel func or by Unmount.
func (d *Dashboard) Subscribe() (<-chan View, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ch := make(chan View, subscriberBuffer)
	if d.unmounted {
		close(ch)
		return ch, func() {}
	}

	id := d.nextSubID
	d.nextSubID++
	d.subs[id] = ch
	ch <- d.viewLocked()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			if c, ok := d.subs[id]; ok {
				close(c)
				delete(d.subs, id)
			}
		})
	}
	return ch, cancel
}

// Wait blocks until every fetch issued so far has finished.
func (d *Dashboard) Wait() {
	d.inflight.Wait()
}

// startFetchLocked moves to Loading and launches one attempt for the
// committed city. Loading is published before the request goroutine starts.
func (d *Dashboard) startFetchLocked() {
	d.seq++
	seq := d.seq
	city := d.query.Committed()
	ctx := d.ctx
	attempt := uuid.NewString()

	d.state = Loading()
	d.publishLocked()

	d.logger.Debug("weather fetch started", "attempt", attempt, "seq", seq, "city", city)

	d.inflight.Add(1)
	go d.fetch(ctx, seq, attempt, city)
}

func (d *Dashboard) fetch(ctx context.Context, seq uint64, attempt, city string) {
	defer d.inflight.Done()

	applied := false
	defer func() {
		// A panicking fetcher must not leave the latest attempt in Loading.
		if r := recover(); r != nil {
			d.logger.Error("weather fetch panicked", "attempt", attempt, "city", city, "panic", fmt.Sprint(r))
			if !applied {
				d.apply(seq, attempt, city, Failed(weather.MessageFetchFailed))
			}
		}
	}()

	snapshot, err := d.fetcher.Lookup(ctx, city)

	next := Ready(snapshot)
	if err != nil {
		next = Failed(weather.Classify(err).Message())
	}
	applied = true
	d.apply(seq, attempt, city, next)
}

func (d *Dashboard) apply(seq uint64, attempt, city string, next RequestState) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.unmounted || seq != d.seq {
		d.logger.Debug("discarding superseded weather result",
			"attempt", attempt, "seq", seq, "latest", d.seq, "city", city)
		if d.observer != nil {
			d.observer.ObserveDiscarded()
		}
		return
	}

	d.state = next
	d.logger.Debug("weather fetch finished", "attempt", attempt, "city", city, "status", next.Status.String())
	d.publishLocked()
}

func (d *Dashboard) viewLocked() View {
	return View{
		City:  d.query.Committed(),
		Draft: d.query.Draft(),
		State: copyState(d.state),
	}
}

func (d *Dashboard) publishLocked() {
	if len(d.subs) == 0 {
		return
	}
	v := d.viewLocked()
	for _, ch := range d.subs {
		v := copyView(v)
		select {
		case ch <- v:
		default:
			// Full: drop the oldest queued view. Senders hold mu, so the
			// second send always finds room.
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

func copyView(v View) View {
	v.State = copyState(v.State)
	return v
}
