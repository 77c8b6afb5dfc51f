package storage

import (
	"strconv"
	"time"
)

// GetRobuxCount reads the shared robux balance. The value is stored as
// an integer string; anything unreadable counts as zero.
func GetRobuxCount(kv KV) int {
	raw, ok, err := kv.Get(KeyRobuxCount)
	if err != nil {
		warnf("read robux count: %v", err)
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetRobuxCount writes the shared robux balance and stamps the update
// time. Negative balances are clamped to zero.
func SetRobuxCount(kv KV, count int) {
	if count < 0 {
		count = 0
	}
	if err := kv.Set(KeyRobuxCount, []byte(strconv.Itoa(count))); err != nil {
		warnf("write robux count: %v", err)
		return
	}
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := kv.Set(KeyRobuxLastUpdate, []byte(stamp)); err != nil {
		warnf("write robux update stamp: %v", err)
	}
}

// LastRobuxUpdate returns when the balance last changed, or the zero
// time if never recorded.
func LastRobuxUpdate(kv KV) time.Time {
	raw, ok, err := kv.Get(KeyRobuxLastUpdate)
	if err != nil || !ok {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
