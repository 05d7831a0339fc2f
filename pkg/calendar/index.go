package calendar

import (
	"sort"
	"strings"
	"time"

	"studiodesk/pkg/model"
)

type TimedItem = model.TimedItem

// Index groups items by the DateKey of their start time. Each bucket is
// ordered by start time; items sharing a start keep their input order.
type Index[T TimedItem] map[string][]T

// BuildIndex groups items by day. Items without a start time are skipped.
// The index is rebuilt from scratch on every call.
func BuildIndex[T TimedItem](items []T) Index[T] {
	idx := make(Index[T])
	for _, item := range items {
		if isNil(item) || item.Start().IsZero() {
			continue
		}
		key := DateKey(item.Start())
		idx[key] = append(idx[key], item)
	}
	for _, bucket := range idx {
		sortByStart(bucket)
	}
	return idx
}

// ItemsOn returns the items starting on dateKey, or an empty slice.
func (idx Index[T]) ItemsOn(dateKey string) []T {
	if bucket, ok := idx[dateKey]; ok {
		return bucket
	}
	return []T{}
}

// CountInMonth counts the items whose date key starts with monthKey.
func (idx Index[T]) CountInMonth(monthKey string) int {
	count := 0
	for key, bucket := range idx {
		if strings.HasPrefix(key, monthKey) {
			count += len(bucket)
		}
	}
	return count
}

// Len is the number of indexed items. Items without a start are not counted.
func (idx Index[T]) Len() int {
	n := 0
	for _, bucket := range idx {
		n += len(bucket)
	}
	return n
}

// Kind names the category an Entry came from.
type Kind string

const (
	KindAvailability Kind = "availability"
	KindClass        Kind = "class"
	KindEvent        Kind = "event"
)

type Entry struct {
	Kind Kind      `json:"type"`
	Item TimedItem `json:"item"`
}

func (e Entry) Start() time.Time { return e.Item.Start() }
func (e Entry) End() time.Time   { return e.Item.End() }

// MergeDay merges one day's availability slots and classes into a single
// list ordered by start time. On equal starts availability comes first.
func MergeDay[A, C TimedItem](slots []A, classes []C) []Entry {
	out := make([]Entry, 0, len(slots)+len(classes))
	for _, s := range slots {
		out = append(out, Entry{Kind: KindAvailability, Item: s})
	}
	for _, c := range classes {
		out = append(out, Entry{Kind: KindClass, Item: c})
	}
	sortByStart(out)
	return out
}

// Entries tags items of a single category.
func Entries[T TimedItem](kind Kind, items []T) []Entry {
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		out = append(out, Entry{Kind: kind, Item: item})
	}
	return out
}

type startTimer interface {
	Start() time.Time
}

func sortByStart[T startTimer](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Start().Before(items[j].Start())
	})
}

func isNil(item TimedItem) bool {
	if item == nil {
		return true
	}
	switch v := item.(type) {
	case *model.AvailabilitySlot:
		return v == nil
	case *model.EventSchedule:
		return v == nil
	case *model.Reservation:
		return v == nil
	}
	return false
}
