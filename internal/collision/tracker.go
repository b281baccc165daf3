// Package collision tracks the xxHash64 secondary index tracelist keeps
// from source-identifier hash to TraceId, detecting the rare case where two
// distinct SIDs hash to the same 64-bit value.
package collision

import "github.com/mseedgo/miniseed/errs"

// Tracker maintains a hash-to-SID mapping and an ordered list of tracked
// SIDs, flagging whether a collision (two different SIDs, same hash) has
// ever been observed.
type Tracker struct {
	sids         map[uint64]string
	sidList      []string
	hasCollision bool
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		sids:    make(map[uint64]string),
		sidList: make([]string, 0),
	}
}

// TrackHash tracks hash alone, for callers that have not yet resolved the
// SID behind it. Returns ErrHashCollision if hash was already tracked.
func (t *Tracker) TrackHash(hash uint64) error {
	if _, exists := t.sids[hash]; exists {
		return errs.ErrHashCollision
	}

	t.sids[hash] = ""

	return nil
}

// TrackSID tracks sid under hash. Returns ErrMalformedSid for an empty sid,
// ErrSidAlreadyTracked if sid was already tracked under hash. A different
// sid landing on an already-tracked hash is not an error: hasCollision is
// set so the caller (tracelist) knows it must disambiguate by full SID
// comparison rather than trusting the hash alone.
func (t *Tracker) TrackSID(sid string, hash uint64) error {
	if sid == "" {
		return errs.ErrMalformedSid
	}

	if existing, exists := t.sids[hash]; exists {
		if existing == sid {
			return errs.ErrSidAlreadyTracked
		}

		t.hasCollision = true
	}

	t.sids[hash] = sid
	t.sidList = append(t.sidList, sid)

	return nil
}

// HasCollision reports whether any two tracked SIDs have ever shared a hash.
func (t *Tracker) HasCollision() bool { return t.hasCollision }

// SIDs returns the tracked SIDs in insertion order.
func (t *Tracker) SIDs() []string { return t.sidList }

// Count returns the number of tracked SIDs.
func (t *Tracker) Count() int { return len(t.sidList) }

// Reset clears all tracked state, preserving the underlying map/slice
// capacity for reuse.
func (t *Tracker) Reset() {
	for k := range t.sids {
		delete(t.sids, k)
	}
	t.sidList = t.sidList[:0]
	t.hasCollision = false
}
