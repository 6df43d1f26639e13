package entry

import (
	"cmp"
	"strings"
	"time"
)

// PageSize is the number of entries per page of an account listing
const PageSize = 10

// Status is the reconciliation state of an entry
type Status string

const (
	StatusNone        Status = ""
	StatusReconciling Status = "RECONCILING"
	StatusCleared     Status = "CLEARED"
	StatusReconciled  Status = "RECONCILED"
)

// Entry is a single transaction booked on an account.
//
// CategoryID may point at a plain category, at the split marker (then
// SubEntries carries the categorized parts) or at another account (then
// OtherID links the mirrored entry in that account). Links are kept by id.
type Entry struct {
	ID           int64      `json:"id"`
	AccountID    int64      `json:"account_id"`
	CategoryID   *int64     `json:"category_id,omitempty"`
	CategoryName string     `json:"category_name,omitempty"` // Read-only, filled by listings
	Date         *time.Time `json:"date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	Amount       int64      `json:"amount"` // Stored in cents/minor units
	Description  string     `json:"description,omitempty"`
	Memo         string     `json:"memo,omitempty"`
	Status       Status     `json:"status,omitempty"`
	OtherID      *int64     `json:"other_id,omitempty"`
	SplitEntryID *int64     `json:"split_entry_id,omitempty"`
	SubEntries   []*Entry   `json:"sub_entries,omitempty"`
	Balance      int64      `json:"balance"` // Derived on read, never stored
}

// IsTransfer reports whether the entry is linked to a mirror entry
func (e *Entry) IsTransfer() bool {
	return e.OtherID != nil
}

// IsSubEntry reports whether the entry is part of a split
func (e *Entry) IsSubEntry() bool {
	return e.SplitEntryID != nil
}

// Contains reports whether filter occurs, ignoring case, in one of the
// entry's text fields. An empty filter matches every entry.
func (e *Entry) Contains(filter string) bool {
	if filter == "" {
		return true
	}
	f := strings.ToLower(filter)
	for _, field := range []string{e.Description, e.Memo, e.CategoryName} {
		if strings.Contains(strings.ToLower(field), f) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy that shares no pointers with e
func (e *Entry) Clone() *Entry {
	c := *e
	c.CategoryID = clonePtr(e.CategoryID)
	c.Date = clonePtr(e.Date)
	c.OtherID = clonePtr(e.OtherID)
	c.SplitEntryID = clonePtr(e.SplitEntryID)
	if e.SubEntries != nil {
		c.SubEntries = make([]*Entry, len(e.SubEntries))
		for i, sub := range e.SubEntries {
			c.SubEntries[i] = sub.Clone()
		}
	}
	return &c
}

// Chronological orders entries by date with undated entries last, then by
// creation time and id. It is a comparison function for slices.SortFunc.
func Chronological(a, b *Entry) int {
	switch {
	case a.Date == nil && b.Date != nil:
		return 1
	case a.Date != nil && b.Date == nil:
		return -1
	case a.Date != nil && b.Date != nil:
		if c := a.Date.Compare(*b.Date); c != 0 {
			return c
		}
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Page returns the 1-based page of entries. A nil page selects the first
// one; pages out of range yield an empty slice.
func Page(entries []*Entry, page *int) []*Entry {
	p := 1
	if page != nil {
		p = *page
	}
	if p < 1 {
		return []*Entry{}
	}
	count := len(entries)
	if p-1 >= (count+PageSize-1)/PageSize {
		return []*Entry{}
	}
	from := (p - 1) * PageSize
	to := min(from+PageSize, count)
	return entries[from:to]
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
