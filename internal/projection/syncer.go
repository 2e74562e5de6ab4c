package projection

import (
	"sync"
	"time"

	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/schedule"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// DefaultDelay is the quiet period before a projection runs.
const DefaultDelay = 500 * time.Millisecond

// Sources reads the current upstream snapshots.
type Sources struct {
	Color      func() ColorSnapshot
	Typography func() TypographySnapshot
	Spacing    func() SpacingSnapshot
}

// Observer is told about every applied projection.
type Observer func(c Category, count int)

// Options configures a Syncer. Zero values select the wall clock,
// DefaultDelay and no locking.
type Options struct {
	Scheduler schedule.Scheduler
	Delay     time.Duration
	// Locker is held while a timer-fired projection runs.
	Locker   sync.Locker
	Observer Observer
	Log      *logging.Logger
}

// Syncer keeps the Token Store categories consistent with the domain
// stores. Each category has its own debouncer, so a color change never
// delays or drops a pending typography projection.
type Syncer struct {
	store    *tokens.Store
	src      Sources
	locker   sync.Locker
	observer Observer
	log      *logging.Logger

	channels map[Category]*schedule.Debouncer
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

// NewSyncer creates a Syncer writing into store.
func NewSyncer(store *tokens.Store, src Sources, opts Options) *Syncer {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Locker == nil {
		opts.Locker = noLock{}
	}

	s := &Syncer{
		store:    store,
		src:      src,
		locker:   opts.Locker,
		observer: opts.Observer,
		log:      opts.Log,
		channels: make(map[Category]*schedule.Debouncer, 3),
	}
	for _, c := range Categories() {
		s.channels[c] = schedule.NewDebouncer(opts.Scheduler, opts.Delay, func() {
			s.locker.Lock()
			defer s.locker.Unlock()
			s.Run(c)
		})
	}
	return s
}

// Notify restarts the quiet period of category c.
func (s *Syncer) Notify(c Category) {
	if d, ok := s.channels[c]; ok {
		d.Trigger()
	}
}

// Pending reports whether a projection of c is scheduled.
func (s *Syncer) Pending(c Category) bool {
	d, ok := s.channels[c]
	return ok && d.Pending()
}

// Flush runs every pending projection now, on the caller's goroutine and
// without taking the Locker. Callers hold the application lock.
func (s *Syncer) Flush() {
	for _, c := range Categories() {
		if s.channels[c].Cancel() {
			s.Run(c)
		}
	}
}

// RunAll drops pending projections and projects every category now. Like
// Flush it does not take the Locker.
func (s *Syncer) RunAll() {
	for _, c := range Categories() {
		s.channels[c].Cancel()
		s.Run(c)
	}
}

// Stop cancels pending projections and ignores later notifications.
func (s *Syncer) Stop() {
	for _, d := range s.channels {
		d.Stop()
	}
}

// Run projects category c immediately. An empty projection leaves the
// category untouched.
func (s *Syncer) Run(c Category) {
	projected := s.project(c)
	log := s.log.With("category", string(c))
	if len(projected) == 0 {
		log.Debug("empty projection, keeping current tokens")
		return
	}

	if err := s.store.ReplaceCategory(c.TokenType(), projected); err != nil {
		log.Error(err, "replacing token category")
		return
	}
	log.WithFields(map[string]any{"count": len(projected)}).Debug("projected tokens")
	if s.observer != nil {
		s.observer(c, len(projected))
	}
}

func (s *Syncer) project(c Category) []tokens.Token {
	switch c {
	case CategoryColor:
		if s.src.Color != nil {
			return ProjectColor(s.src.Color())
		}
	case CategoryTypography:
		if s.src.Typography != nil {
			return ProjectTypography(s.src.Typography())
		}
	case CategorySpacing:
		if s.src.Spacing != nil {
			return ProjectSpacing(s.src.Spacing())
		}
	}
	return nil
}
