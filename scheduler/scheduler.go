// Package scheduler implements the Scrape Scheduler (C5): periodic,
// cursor-driven polling of every configured minter's event log, plus the
// unverified-transfer reaper. Its shape follows
// datasync/chaindatafetcher.ChainDataFetcher: a bounded concurrent fetch
// loop guarded against re-entrancy, a monotonic checkpoint that only
// advances once a fetched range has been fully and successfully applied,
// and rcrowley/go-metrics gauges tracking progress. robfig/cron/v3 drives
// the tick itself in place of the fetcher's own timer goroutine.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/rcrowley/go-metrics"
	"github.com/robfig/cron/v3"

	"github.com/Appic-Solutions/trsansaction-logger/apply"
	"github.com/Appic-Solutions/trsansaction-logger/canonical"
	"github.com/Appic-Solutions/trsansaction-logger/guard"
	"github.com/Appic-Solutions/trsansaction-logger/minterapi"
	"github.com/Appic-Solutions/trsansaction-logger/persist"
	"github.com/Appic-Solutions/trsansaction-logger/reduce"
	"github.com/Appic-Solutions/trsansaction-logger/store"
)

var logger = log.New("module", "scheduler")

const (
	// scrapePageSize bounds how many events a single get_events call
	// requests, the same role NATIVE_ERC20_ADDRESS-adjacent scrape
	// constants play in the Rust source's scrape_events module.
	scrapePageSize = 100

	// unverifiedTxTTL is how long a transfer may sit unverified
	// (pre-registered by a client but never confirmed Accepted) before the
	// reaper drops it.
	unverifiedTxTTL = 24 * time.Hour
)

var (
	metricEventsApplied  = metrics.NewRegisteredCounter("txlogger/scheduler/events_applied", nil)
	metricScrapeErrors   = metrics.NewRegisteredCounter("txlogger/scheduler/scrape_errors", nil)
	metricLastScrapedGauge = metrics.NewRegisteredGauge("txlogger/scheduler/last_scraped_event", nil)
	metricReapedGauge    = metrics.NewRegisteredCounter("txlogger/scheduler/unverified_reaped", nil)
)

// MinterClient is the per-minter RPC surface the scheduler scrapes
// through: either an AppicClient or a DfinityClient, whose events ScrapeOnce
// reduces to canonical form with reduce.Appic or reduce.Dfinity.
type MinterClient struct {
	Key     store.MinterKey
	Label   string
	Appic   minterapi.AppicClient
	Dfinity minterapi.DfinityClient
}

// Scheduler runs the periodic scrape and reaper tasks against a
// persistence cell.
type Scheduler struct {
	cell    *persist.Cell
	clients []MinterClient
	guards  *guard.Set
	cron    *cron.Cron
}

// New builds a scheduler over cell, polling each of clients.
func New(cell *persist.Cell, clients []MinterClient) *Scheduler {
	return &Scheduler{
		cell:    cell,
		clients: clients,
		guards:  guard.NewSet(),
		cron:    cron.New(),
	}
}

// Start registers the scrape and reaper jobs on the given cron schedules
// (standard 5-field cron expressions or descriptors such as "@every 30s")
// and starts the cron runner.
func (s *Scheduler) Start(scrapeSchedule, reapSchedule string) error {
	for _, c := range s.clients {
		client := c
		if _, err := s.cron.AddFunc(scrapeSchedule, func() {
			s.runScrape(context.Background(), client)
		}); err != nil {
			return fmt.Errorf("scheduler: scheduling scrape for %s: %w", client.Label, err)
		}
	}
	if _, err := s.cron.AddFunc(reapSchedule, func() {
		s.runReap(context.Background())
	}); err != nil {
		return fmt.Errorf("scheduler: scheduling reaper: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron runner and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Clients returns the minter clients this scheduler polls.
func (s *Scheduler) Clients() []MinterClient {
	return s.clients
}

// Guards exposes the scheduler's task lock set, for tests exercising
// re-entrancy directly rather than racing real goroutines against the cron
// runner.
func (s *Scheduler) Guards() *guard.Set {
	return s.guards
}

// RunScrape runs one guarded scrape tick for c, the same path a cron firing
// takes via Start. Exported so tests can drive lock contention
// deterministically.
func (s *Scheduler) RunScrape(ctx context.Context, c MinterClient) {
	s.runScrape(ctx, c)
}

func (s *Scheduler) runScrape(ctx context.Context, c MinterClient) {
	key := guard.Key{Task: guard.TaskScrapeEvents, Minter: c.Label}
	if !s.guards.TryAcquire(key) {
		logger.Debug("scrape already in flight, skipping tick", "minter", c.Label)
		return
	}
	defer s.guards.Release(key)

	if err := s.ScrapeOnce(ctx, c); err != nil {
		metricScrapeErrors.Inc(1)
		logger.Error("scrape failed", "minter", c.Label, "err", err)
	}
}

// ScrapeOnce fetches exactly one page past the minter's current cursor,
// reduces it to canonical events, applies them, and commits — the cursor
// only advances if the whole page both reduced and applied without error,
// so a failed application never leaves the cursor ahead of what was
// actually persisted.
func (s *Scheduler) ScrapeOnce(ctx context.Context, c MinterClient) error {
	current, err := s.cell.Read()
	if err != nil {
		return fmt.Errorf("reading state: %w", err)
	}

	minterEntry, found := findMinter(current, c.Key)
	if !found {
		return fmt.Errorf("minter %s not registered in state", c.Label)
	}
	start := minterEntry.LastScrapedEvent

	var canon canonicalBatch
	switch {
	case c.Appic != nil:
		result, err := c.Appic.GetEvents(ctx, start, scrapePageSize)
		if err != nil {
			return fmt.Errorf("get_events: %w", err)
		}
		events, skipped := reduce.Appic(result.Events)
		canon = canonicalBatch{
			events:           events,
			skipped:          len(skipped),
			malformedSkipped: countMalformed(skipped),
			newCursor:        start + uint64(len(result.Events)),
			totalEventCount:  result.TotalEventCount,
		}

	case c.Dfinity != nil:
		result, err := c.Dfinity.GetEvents(ctx, start, scrapePageSize)
		if err != nil {
			return fmt.Errorf("get_events: %w", err)
		}
		events, skipped := reduce.Dfinity(result.Events)
		canon = canonicalBatch{
			events:           events,
			skipped:          len(skipped),
			malformedSkipped: countMalformed(skipped),
			newCursor:        start + uint64(len(result.Events)),
			totalEventCount:  result.TotalEventCount,
		}

	default:
		return fmt.Errorf("minter client %s has neither Appic nor Dfinity client configured", c.Label)
	}

	if len(canon.events) == 0 && canon.newCursor == start && canon.totalEventCount == minterEntry.LastObservedEvent {
		return nil
	}

	return s.cell.Mutate(func(mutState *store.State) error {
		minterEntry, found := findMinter(mutState, c.Key)
		if !found {
			return fmt.Errorf("minter %s not registered in state", c.Label)
		}

		m := apply.Minter{
			ChainID:     c.Key.ChainID,
			Oprator:     c.Key.Oprator,
			EvmToIcpFee: minterEntry.EvmToIcpFee,
			IcpToEvmFee: minterEntry.IcpToEvmFee,
		}
		if err := apply.ApplyAll(mutState, m, canon.events); err != nil {
			return err
		}

		minterEntry.LastScrapedEvent = canon.newCursor
		minterEntry.LastObservedEvent = canon.totalEventCount
		mutState.RecordMinter(minterEntry)

		if canon.malformedSkipped > 0 {
			logger.Warn("scrape page contained malformed events; cursor advanced anyway", "minter", c.Label, "malformed", canon.malformedSkipped)
		}

		metricEventsApplied.Inc(int64(len(canon.events)))
		metricLastScrapedGauge.Update(int64(canon.newCursor))
		return nil
	})
}

type canonicalBatch struct {
	events           canonical.Events
	skipped          int
	malformedSkipped int
	newCursor        uint64
	totalEventCount  uint64
}

func countMalformed(skipped []reduce.Skipped) int {
	n := 0
	for _, sk := range skipped {
		if sk.Malformed {
			n++
		}
	}
	return n
}

func findMinter(s *store.State, key store.MinterKey) (store.Minter, bool) {
	for _, m := range s.GetMinters() {
		if store.MinterKeyOf(m) == key {
			return m, true
		}
	}
	return store.Minter{}, false
}

func (s *Scheduler) runReap(ctx context.Context) {
	key := guard.Key{Task: guard.TaskRemoveUnverifiedTx}
	if !s.guards.TryAcquire(key) {
		logger.Debug("reaper already in flight, skipping tick")
		return
	}
	defer s.guards.Release(key)

	if err := s.reapOnce(); err != nil {
		logger.Error("reap failed", "err", err)
	}
}

// reapOnce drops every unverified transfer whose record time is older
// than unverifiedTxTTL, measured against the current wall clock. A
// transfer that was pre-registered as PendingVerification but never
// confirmed Accepted within the TTL is assumed abandoned upstream.
func (s *Scheduler) reapOnce() error {
	return s.ReapUnverifiedAt(time.Now(), unverifiedTxTTL)
}

// ReapUnverifiedAt runs the unverified sweep with now and ttl supplied
// explicitly instead of read from the wall clock, so tests can exercise the
// TTL boundary deterministically.
func (s *Scheduler) ReapUnverifiedAt(now time.Time, ttl time.Duration) error {
	cutoff := uint64(now.Add(-ttl).Unix())

	return s.cell.Mutate(func(mutState *store.State) error {
		reaped := 0
		for _, u := range mutState.AllUnverifiedEvmToIcp() {
			if u.Time < cutoff {
				mutState.RemoveUnverifiedEvmToIcp(u.ID)
				reaped++
			}
		}
		for _, u := range mutState.AllUnverifiedIcpToEvm() {
			if u.Time < cutoff {
				mutState.RemoveUnverifiedIcpToEvm(u.ID)
				reaped++
			}
		}
		metricReapedGauge.Inc(int64(reaped))
		return nil
	})
}
