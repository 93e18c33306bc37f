package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"clinic-scheduling-backend/internal/domain/entity"
	"clinic-scheduling-backend/internal/domain/repository"
	"clinic-scheduling-backend/pkg/dateutil"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotFull is returned when a date+time+type slot has reached its
// concurrency ceiling.
var ErrSlotFull = errors.New("slot capacity is full")

// reserveSlotScript atomically claims one unit of a slot's capacity.
// The client sends the script once and EVALSHA afterwards.
//
// Logic:
// 1. INCR the slot counter
// 2. If the new value exceeds the ceiling -> DECR back (rollback) and return -1
// 3. Otherwise return the new occupancy
var reserveSlotScript = redis.NewScript(`
	local occupied = redis.call('INCR', KEYS[1])
	if occupied > tonumber(ARGV[1]) then
		redis.call('DECR', KEYS[1])
		return -1
	end
	return occupied
`)

// releaseSlotScript frees one unit, never going below zero.
var releaseSlotScript = redis.NewScript(`
	local occupied = tonumber(redis.call('GET', KEYS[1]) or '0')
	if occupied <= 0 then
		return 0
	end
	return redis.call('DECR', KEYS[1])
`)

const (
	// RedisSlotKeyPrefix namespaces the per-slot occupancy counters
	RedisSlotKeyPrefix = "attendance:slot:"

	// Batch size for startup sync pipeline writes
	syncBatchSize = 500

	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// SlotReservationService keeps one Redis counter per (date, time, type) slot
// so that two concurrent admissions cannot both claim the last opening. The
// database remains the source of truth: counters are rebuilt from it on
// startup and every reservation is compensated if the row insert fails.
type SlotReservationService struct {
	db             *gorm.DB
	redisClient    *redis.Client
	log            *logrus.Logger
	attendanceRepo repository.AttendanceRepository

	// Per-slot mutex for release/resync safety
	slotMu sync.Map // map[string]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewSlotReservationService creates the service and starts the background
// mutex cleanup goroutine. Call Stop() during graceful shutdown.
func NewSlotReservationService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, attendanceRepo repository.AttendanceRepository) *SlotReservationService {
	svc := &SlotReservationService{
		db:             db,
		redisClient:    redisClient,
		log:            log,
		attendanceRepo: attendanceRepo,
		stopChan:       make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop gracefully shuts down the service. Safe to call multiple times.
func (s *SlotReservationService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SlotReservationService stopped")
	}
}

// SlotKey builds the Redis key for one date+time+type slot
func SlotKey(date, timeStr string, typ entity.AttendanceType) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisSlotKeyPrefix, date, timeStr, typ)
}

// Reserve atomically claims one opening in the slot. Returns ErrSlotFull
// when the ceiling is already reached. No mutex is needed here: the Lua
// script executes atomically inside Redis.
func (s *SlotReservationService) Reserve(ctx context.Context, date, timeStr string, typ entity.AttendanceType, ceiling int) error {
	key := SlotKey(date, timeStr, typ)

	result, err := reserveSlotScript.Run(ctx, s.redisClient, []string{key}, ceiling).Int()
	if err != nil {
		s.log.Warnf("Failed Lua script Reserve for slot %s: %+v", key, err)
		return fmt.Errorf("lua reserve for slot %s: %w", key, err)
	}

	if result == -1 {
		return ErrSlotFull
	}

	// Counters expire the day after the slot's date
	if err := s.redisClient.Expire(ctx, key, s.calculateTTL(date)).Err(); err != nil {
		s.log.Warnf("Failed to set TTL for slot %s (non-fatal): %+v", key, err)
	}

	s.log.Debugf("Reserved slot %s: occupied=%d/%d", key, result, ceiling)
	return nil
}

// Release frees one opening in the slot. Called when a reserved attendance
// fails to persist, is cancelled, or is deleted while still scheduled.
// Never decrements below zero.
func (s *SlotReservationService) Release(ctx context.Context, date, timeStr string, typ entity.AttendanceType) error {
	mt := s.getSlotMutex(SlotKey(date, timeStr, typ))
	mt.mu.Lock()
	defer mt.mu.Unlock()

	key := SlotKey(date, timeStr, typ)
	if err := releaseSlotScript.Run(ctx, s.redisClient, []string{key}).Err(); err != nil {
		s.log.Warnf("Failed to release slot %s: %+v", key, err)
		return fmt.Errorf("release slot %s: %w", key, err)
	}

	s.log.Debugf("Released slot %s", key)
	return nil
}

// SyncOnStartup rebuilds every future slot counter from the database.
// Should be called before accepting traffic (startup/disaster recovery).
// Writes are batched into pipelines of syncBatchSize to bound memory.
func (s *SlotReservationService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting slot counter re-sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	counts, err := s.attendanceRepo.FindScheduledSlotCounts(ctx, s.db, dateutil.Today())
	if err != nil {
		s.log.Errorf("Failed to query slot counts: %+v", err)
		return fmt.Errorf("query slot counts: %w", err)
	}

	for start := 0; start < len(counts); start += syncBatchSize {
		end := start + syncBatchSize
		if end > len(counts) {
			end = len(counts)
		}

		pipe := s.redisClient.TxPipeline()
		for _, c := range counts[start:end] {
			key := SlotKey(c.ScheduledDate, c.ScheduledTime, c.Type)
			pipe.Set(ctx, key, c.Count, s.calculateTTL(c.ScheduledDate))
		}

		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at %d: %+v", start, err)
			return fmt.Errorf("pipeline exec at %d: %w", start, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Slot re-sync completed: %d slots synced in %v", len(counts), time.Since(startTime))
	return nil
}

// getSlotMutex returns the mutex for a specific slot key
func (s *SlotReservationService) getSlotMutex(key string) *mutexWithTimestamp {
	mt, _ := s.slotMu.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *SlotReservationService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes removes unused mutexes using TryLock for safety.
// The lastUsed check happens inside the lock so a concurrent user cannot
// refresh the timestamp between check and delete.
func (s *SlotReservationService) cleanupStaleMutexes() {
	cutoffTime := time.Now().Add(-mutexStaleThreshold).Unix()
	var cleaned int

	s.slotMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.slotMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale mutexes", cleaned)
	}
}

// calculateTTL returns a TTL ending 24 hours after the slot's date
func (s *SlotReservationService) calculateTTL(date string) time.Duration {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return 24 * time.Hour
	}

	ttl := time.Until(day.AddDate(0, 0, 1))
	if ttl <= 0 {
		// Past date - short TTL for cleanup
		return 1 * time.Minute
	}
	return ttl
}
