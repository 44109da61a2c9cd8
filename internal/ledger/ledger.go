// Package ledger holds today's water intake: the goal, the running total and
// the entries that make it up. State is written through to a Store on every
// change and cleared the first time it is touched on a new calendar day.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"hydration-tracker/internal/logger"
	"hydration-tracker/internal/model"

	"github.com/google/uuid"
)

// Persistence keys.
const (
	KeyGoal      = "waterGoal"
	KeyTotal     = "currentIntake"
	KeyHistory   = "intakeHistory"
	KeyLastReset = "lastReset"
)

const (
	DefaultGoal = 2000
	MinGoal     = 500
	MaxGoal     = 5000
	MaxCustom   = 2000
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrUnknownPreset = errors.New("unknown preset")
	ErrPersistence   = errors.New("persistence unavailable")
)

// Store is the durable record store behind a Ledger.
type Store interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}

type Option func(*Ledger)

// WithClock replaces time.Now, e.g. to pin "today" in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithIDs(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

type Ledger struct {
	mu     sync.Mutex
	store  Store
	now    func() time.Time
	newID  func() string
	state  model.DailyLedger
	loaded bool
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
		state: model.DailyLedger{Goal: DefaultGoal, Entries: []model.IntakeEntry{}},
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Initialize loads persisted state, resetting it if it belongs to another day.
// Other methods call it on first use.
func (l *Ledger) Initialize() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.initialize()
}

func (l *Ledger) initialize() error {
	today := Day(l.now())

	goal, err := l.loadGoal()
	if err != nil {
		return err
	}
	last, _, err := l.store.Load(KeyLastReset)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if ShouldReset(last, today) {
		next := ApplyReset(model.DailyLedger{Goal: goal}, today)
		if err := l.save(next, KeyTotal, KeyHistory, KeyLastReset); err != nil {
			return err
		}
		logger.Info("ledger.reset", "reason", "new_day", "previous", last, "today", today)
		l.state, l.loaded = next, true
		return nil
	}

	total, err := l.loadInt(KeyTotal, 0)
	if err != nil {
		return err
	}
	entries, err := l.loadEntries()
	if err != nil {
		return err
	}
	if sum := sumEntries(entries); sum != total {
		logger.Warn("ledger.total_mismatch", "stored", total, "entries", sum)
		total = sum
	}

	l.state = model.DailyLedger{Goal: goal, Total: total, Entries: entries, LastReset: last}
	l.loaded = true
	return nil
}

// sync loads on first use and clears the ledger once the day has turned.
func (l *Ledger) sync() error {
	if !l.loaded {
		return l.initialize()
	}
	today := Day(l.now())
	if !ShouldReset(l.state.LastReset, today) {
		return nil
	}
	next := ApplyReset(l.state, today)
	if err := l.save(next, KeyTotal, KeyHistory, KeyLastReset); err != nil {
		return err
	}
	logger.Info("ledger.reset", "reason", "new_day", "previous", l.state.LastReset, "today", today)
	l.state = next
	return nil
}

// AddIntake logs amount ml now and returns the notice for the new total.
func (l *Ledger) AddIntake(amount int) (Notice, error) {
	if amount <= 0 {
		return Notice{}, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.sync(); err != nil {
		return Notice{}, err
	}

	entry := model.IntakeEntry{
		ID:     l.newID(),
		Amount: amount,
		Time:   l.now().Format(TimeLayout),
	}
	next := l.state
	next.Entries = append([]model.IntakeEntry{entry}, l.state.Entries...)
	next.Total = l.state.Total + amount

	if err := l.save(next, KeyGoal, KeyTotal, KeyHistory); err != nil {
		return Notice{}, err
	}
	l.state = next

	n := Classify(next.Total, next.Goal, amount)
	logger.Info("ledger.add", "amount", amount, "total", next.Total, "goal", next.Goal, "notice", n.Kind)
	return n, nil
}

// AddCustom logs a typed-in amount, which must be between 1 and MaxCustom.
func (l *Ledger) AddCustom(amount int) (Notice, error) {
	if amount <= 0 || amount > MaxCustom {
		return Notice{}, fmt.Errorf("%w: %d is outside 1-%dml", ErrInvalidAmount, amount, MaxCustom)
	}
	return l.AddIntake(amount)
}

func (l *Ledger) AddPreset(name string) (Notice, error) {
	p, ok := LookupPreset(name)
	if !ok {
		return Notice{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return l.AddIntake(p.Amount)
}

// UpdateGoal sets the daily goal if it is within MinGoal..MaxGoal and reports
// whether it changed anything.
func (l *Ledger) UpdateGoal(goal int) (bool, error) {
	if goal < MinGoal || goal > MaxGoal {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.sync(); err != nil {
		return false, err
	}

	next := l.state
	next.Goal = goal
	if err := l.save(next, KeyGoal); err != nil {
		return false, err
	}
	l.state = next
	logger.Info("ledger.goal", "goal", goal)
	return true, nil
}

// ResetDay clears today's total and entries. The goal stays.
func (l *Ledger) ResetDay() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.sync(); err != nil {
		return err
	}

	next := ApplyReset(l.state, l.state.LastReset)
	if err := l.save(next, KeyTotal, KeyHistory); err != nil {
		return err
	}
	l.state = next
	logger.Info("ledger.reset", "reason", "manual")
	return nil
}

// Snapshot returns a copy of today's state.
func (l *Ledger) Snapshot() (model.DailyLedger, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.sync(); err != nil {
		return model.DailyLedger{}, err
	}

	s := l.state
	s.Entries = make([]model.IntakeEntry, len(l.state.Entries))
	copy(s.Entries, l.state.Entries)
	return s, nil
}

// save writes each key of next independently; there is no batching.
func (l *Ledger) save(next model.DailyLedger, keys ...string) error {
	for _, key := range keys {
		value, err := encode(next, key)
		if err != nil {
			return fmt.Errorf("%w: encode %s: %w", ErrPersistence, key, err)
		}
		if err := l.store.Save(key, value); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	return nil
}

func encode(s model.DailyLedger, key string) (string, error) {
	switch key {
	case KeyGoal:
		return strconv.Itoa(s.Goal), nil
	case KeyTotal:
		return strconv.Itoa(s.Total), nil
	case KeyHistory:
		entries := s.Entries
		if entries == nil {
			entries = []model.IntakeEntry{}
		}
		data, err := json.Marshal(entries)
		return string(data), err
	case KeyLastReset:
		return s.LastReset, nil
	}
	return "", fmt.Errorf("unknown key %q", key)
}

func (l *Ledger) loadGoal() (int, error) {
	goal, err := l.loadInt(KeyGoal, DefaultGoal)
	if err != nil {
		return 0, err
	}
	if goal < MinGoal || goal > MaxGoal {
		logger.Warn("ledger.goal_out_of_range", "stored", goal, "using", DefaultGoal)
		return DefaultGoal, nil
	}
	return goal, nil
}

func (l *Ledger) loadInt(key string, def int) (int, error) {
	v, ok, err := l.store.Load(key)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s: %w", ErrPersistence, key, err)
	}
	return n, nil
}

func (l *Ledger) loadEntries() ([]model.IntakeEntry, error) {
	v, ok, err := l.store.Load(KeyHistory)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	entries := []model.IntakeEntry{}
	if !ok || v == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(v), &entries); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrPersistence, KeyHistory, err)
	}
	if entries == nil {
		entries = []model.IntakeEntry{}
	}
	return entries, nil
}

func sumEntries(entries []model.IntakeEntry) int {
	sum := 0
	for _, e := range entries {
		sum += e.Amount
	}
	return sum
}
