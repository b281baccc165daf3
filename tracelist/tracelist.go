// Package tracelist implements the trace list (§4.H): an index that merges
// records sharing a source identifier into contiguous, tolerance-matched
// segments, backed by a skip list (p = 1/2, max height 8) ordered by
// (SID, publication-version bucket).
package tracelist

import (
	"math"

	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/internal/collision"
	"github.com/mseedgo/miniseed/internal/hash"
	"github.com/mseedgo/miniseed/nstime"
	"github.com/mseedgo/miniseed/record"
)

// Tolerance controls when a record is considered a continuation of an
// existing Segment rather than the start of a new one (§4.H step 2).
type Tolerance struct {
	// TimeFn returns the coverage tolerance, in seconds, for rec. The zero
	// value is replaced by DefaultTolerance's half-sample-interval rule.
	TimeFn func(rec *record.Record) float64
	// SampRateFn returns the relative sample-rate tolerance for rec
	// (fraction, not Hz). The zero value is replaced by 1e-4, mirroring
	// MS_ISRATETOLERABLE.
	SampRateFn func(rec *record.Record) float64
}

// DefaultTolerance returns the specification's default tolerance: half a
// sample interval for time, 1e-4 relative error for sample rate.
func DefaultTolerance() Tolerance {
	return Tolerance{
		TimeFn: func(rec *record.Record) float64 {
			if rec.SampleRate <= 0 {
				return 0
			}

			return 0.5 / rec.SampleRate
		},
		SampRateFn: func(*record.Record) float64 { return 1e-4 },
	}
}

func (t Tolerance) resolve() Tolerance {
	if t.TimeFn == nil || t.SampRateFn == nil {
		def := DefaultTolerance()
		if t.TimeFn == nil {
			t.TimeFn = def.TimeFn
		}
		if t.SampRateFn == nil {
			t.SampRateFn = def.SampRateFn
		}
	}

	return t
}

// SplitVersion selects how publication versions bucket into distinct
// TraceIds (§4.H step 1).
type SplitVersion int

const (
	// SplitNone groups every publication version of a SID into one
	// TraceId; PubVersionSummary tracks the highest version seen.
	SplitNone SplitVersion = 0
	// SplitByVersion gives each distinct publication version its own
	// TraceId.
	SplitByVersion SplitVersion = 1
	// SplitByBucket groups publication versions per a caller-supplied
	// BucketFn.
	SplitByBucket SplitVersion = 2
)

// BucketFn maps a publication version to a bucket number, used only when
// Split is SplitByBucket.
type BucketFn func(pubVersion uint8) int

// TraceID indexes all segments sharing one (SID, publication-version
// bucket) key.
type TraceID struct {
	SID               string
	PubVersion        uint8 // meaningful when the list's Split is SplitByVersion
	PubVersionSummary uint8 // highest version folded in, meaningful under SplitNone
	Bucket            int

	Earliest nstime.NsTime
	Latest   nstime.NsTime

	head *Segment // ascending start-time order
	tail *Segment
}

// Segments returns the TraceId's segments in ascending start-time order.
func (id *TraceID) Segments() []*Segment {
	var out []*Segment
	for s := id.head; s != nil; s = s.Next {
		out = append(out, s)
	}

	return out
}

// Unlink removes seg from id's segment chain, for use by pack.PackList once
// a segment has been fully drained of samples.
func (id *TraceID) Unlink(seg *Segment) {
	if seg.Prev != nil {
		seg.Prev.Next = seg.Next
	} else {
		id.head = seg.Next
	}
	if seg.Next != nil {
		seg.Next.Prev = seg.Prev
	} else {
		id.tail = seg.Prev
	}
	seg.Next, seg.Prev = nil, nil
}

// Segment is one contiguous, tolerance-matched run of samples.
type Segment struct {
	SampleRate  float64
	SampleType  record.SampleType
	StartTime   nstime.NsTime
	EndTime     nstime.NsTime
	SampleCount int64

	Records []RecordPtr

	// Samples is the segment's materialized decoded buffer, used by
	// pack.PackList to re-serialize the segment. It is populated either by
	// a caller's direct write or by UnpackRecordList's result; AddRecord
	// itself only tracks RecordPtr metadata and never decodes eagerly.
	Samples *record.DecodedSamples

	Next, Prev *Segment
}

// TraceList is the top-level index (§4.H).
type TraceList struct {
	tolerance Tolerance
	split     SplitVersion
	bucketFn  BucketFn
	autoHeal  bool

	index      *skipList
	hashIndex  map[uint64]*TraceID
	collisions *collision.Tracker
}

// Option configures a TraceList at construction.
type Option func(*TraceList)

// WithTolerance overrides the default coverage/rate tolerance functions.
func WithTolerance(t Tolerance) Option { return func(l *TraceList) { l.tolerance = t } }

// WithSplitVersion selects how publication versions bucket into TraceIds.
func WithSplitVersion(split SplitVersion, fn BucketFn) Option {
	return func(l *TraceList) { l.split = split; l.bucketFn = fn }
}

// WithAutoHeal enables merging two previously separate segments when an
// insertion bridges them within tolerance (§4.H step 3).
func WithAutoHeal(enabled bool) Option { return func(l *TraceList) { l.autoHeal = enabled } }

// New creates an empty TraceList.
func New(opts ...Option) *TraceList {
	l := &TraceList{
		tolerance:  DefaultTolerance(),
		split:      SplitNone,
		index:      newSkipList(),
		hashIndex:  make(map[uint64]*TraceID),
		collisions: collision.NewTracker(),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *TraceList) bucketOf(pubVersion uint8) int {
	switch l.split {
	case SplitByVersion:
		return int(pubVersion)
	case SplitByBucket:
		if l.bucketFn != nil {
			return l.bucketFn(pubVersion)
		}

		return 0
	default:
		return 0
	}
}

// AddRecord implements §4.H's add_record. When recordList is true, a
// RecordPtr for rec is appended to the matched or newly created segment.
func (l *TraceList) AddRecord(rec *record.Record, locator RecordLocator, recordList bool) (*TraceID, error) {
	if rec == nil {
		return nil, errs.ErrInvalidArgument
	}

	bucket := l.bucketOf(rec.PublicationVersion)
	key := bucketKey{sid: rec.SourceID, bucket: bucket}

	id := l.index.getOrInsert(key, func() *TraceID {
		return &TraceID{SID: rec.SourceID, Bucket: bucket, Earliest: rec.StartTime, Latest: rec.EndTime()}
	})
	if l.split == SplitByVersion {
		id.PubVersion = rec.PublicationVersion
	} else if rec.PublicationVersion > id.PubVersionSummary {
		id.PubVersionSummary = rec.PublicationVersion
	}

	h := hash.ID(rec.SourceID)
	if existing, ok := l.hashIndex[h]; ok && existing != id {
		_ = l.collisions.TrackSID(rec.SourceID, h)
	} else if !ok {
		l.hashIndex[h] = id
		_ = l.collisions.TrackSID(rec.SourceID, h)
	}

	l.insertIntoID(id, rec, locator, recordList)

	if rec.StartTime.IsSet() && (!id.Earliest.IsSet() || rec.StartTime < id.Earliest) {
		id.Earliest = rec.StartTime
	}
	if end := rec.EndTime(); end.IsSet() && (!id.Latest.IsSet() || end > id.Latest) {
		id.Latest = end
	}

	return id, nil
}

func (l *TraceList) insertIntoID(id *TraceID, rec *record.Record, locator RecordLocator, recordList bool) {
	tol := l.tolerance.resolve()

	for seg := id.head; seg != nil; seg = seg.Next {
		if appendMatch, prependMatch := matches(seg, rec, tol); appendMatch || prependMatch {
			if appendMatch {
				seg.EndTime = rec.EndTime()
				if recordList {
					seg.Records = append(seg.Records, newRecordPtr(rec, locator))
				}
			} else {
				seg.StartTime = rec.StartTime
				if recordList {
					seg.Records = append([]RecordPtr{newRecordPtr(rec, locator)}, seg.Records...)
				}
			}
			seg.SampleCount += rec.SampleCount

			if l.autoHeal {
				l.healAround(id, seg)
			}

			return
		}
	}

	l.insertNewSegment(id, rec, locator, recordList)
}

func newRecordPtr(rec *record.Record, locator RecordLocator) RecordPtr {
	header := rec.Clone()
	header.Decoded = nil
	header.Raw = nil

	return RecordPtr{
		Header:     header,
		Locator:    locator,
		DataOffset: 0,
		DataSize:   len(rec.DataPayload),
	}
}

// matches reports whether rec abuts or overlaps seg within tolerance, and
// on which side (§4.H step 2).
func matches(seg *Segment, rec *record.Record, tol Tolerance) (appendMatch, prependMatch bool) {
	rateTol := tol.SampRateFn(rec)
	if rec.SampleRate <= 0 || seg.SampleRate <= 0 {
		return false, false
	}
	if math.Abs(seg.SampleRate-rec.SampleRate)/rec.SampleRate > rateTol {
		return false, false
	}

	timeTolNs := nstime.NsTime(tol.TimeFn(rec) * 1e9)
	sampleIntervalNs := nstime.NsTime(1e9 / rec.SampleRate)

	recStart, recEnd := rec.StartTime, rec.EndTime()

	expectedNext := seg.EndTime + sampleIntervalNs
	diff := recStart - expectedNext
	if diff < 0 {
		diff = -diff
	}
	if diff <= timeTolNs || (recStart >= seg.StartTime && recStart <= seg.EndTime) {
		appendMatch = true
	}

	expectedPrev := seg.StartTime - sampleIntervalNs
	diff = recEnd - expectedPrev
	if diff < 0 {
		diff = -diff
	}
	if !appendMatch && (diff <= timeTolNs || (recEnd >= seg.StartTime && recEnd <= seg.EndTime)) {
		prependMatch = true
	}

	return appendMatch, prependMatch
}

func (l *TraceList) insertNewSegment(id *TraceID, rec *record.Record, locator RecordLocator, recordList bool) {
	seg := &Segment{
		SampleRate:  rec.SampleRate,
		SampleType:  record.SampleTypeOf(rec.Encoding),
		StartTime:   rec.StartTime,
		EndTime:     rec.EndTime(),
		SampleCount: rec.SampleCount,
	}
	if recordList {
		seg.Records = []RecordPtr{newRecordPtr(rec, locator)}
	}

	if id.head == nil {
		id.head, id.tail = seg, seg

		return
	}

	// Link in start-time order.
	if rec.StartTime <= id.head.StartTime {
		seg.Next = id.head
		id.head.Prev = seg
		id.head = seg

		return
	}

	cur := id.head
	for cur.Next != nil && cur.Next.StartTime < rec.StartTime {
		cur = cur.Next
	}

	seg.Next = cur.Next
	seg.Prev = cur
	if cur.Next != nil {
		cur.Next.Prev = seg
	} else {
		id.tail = seg
	}
	cur.Next = seg
}

// healAround merges seg with its linked-list neighbors when auto-heal is
// enabled and an insertion has bridged a gap within tolerance (§4.H step 3).
func (l *TraceList) healAround(id *TraceID, seg *Segment) {
	tol := l.tolerance.resolve()

	if next := seg.Next; next != nil && abuts(seg, next, tol) {
		mergeSegments(seg, next)
		if id.tail == next {
			id.tail = seg
		}
	}
	if prev := seg.Prev; prev != nil && abuts(prev, seg, tol) {
		mergeSegments(prev, seg)
		if id.tail == seg {
			id.tail = prev
		}
	}
}

func abuts(a, b *Segment, tol Tolerance) bool {
	if a.SampleRate <= 0 {
		return false
	}
	rateTol := tol.SampRateFn(&record.Record{SampleRate: a.SampleRate})
	if math.Abs(a.SampleRate-b.SampleRate)/a.SampleRate > rateTol {
		return false
	}

	sampleIntervalNs := nstime.NsTime(1e9 / a.SampleRate)
	timeTolNs := nstime.NsTime((0.5 / a.SampleRate) * 1e9)
	if tol.TimeFn != nil {
		timeTolNs = nstime.NsTime(tol.TimeFn(&record.Record{SampleRate: a.SampleRate}) * 1e9)
	}

	diff := b.StartTime - (a.EndTime + sampleIntervalNs)
	if diff < 0 {
		diff = -diff
	}

	return diff <= timeTolNs
}

func mergeSegments(a, b *Segment) {
	a.EndTime = b.EndTime
	a.SampleCount += b.SampleCount
	a.Records = append(a.Records, b.Records...)
	if a.Samples != nil && b.Samples != nil {
		appendDecoded(a.Samples, b.Samples)
	} else {
		a.Samples = nil
	}
	a.Next = b.Next
	if b.Next != nil {
		b.Next.Prev = a
	}
}

func appendDecoded(dst, src *record.DecodedSamples) {
	switch dst.Type {
	case record.SampleTypeInt32:
		dst.Int32 = append(dst.Int32, src.Int32...)
	case record.SampleTypeFloat32:
		dst.Float32 = append(dst.Float32, src.Float32...)
	case record.SampleTypeFloat64:
		dst.Float64 = append(dst.Float64, src.Float64...)
	case record.SampleTypeText:
		dst.Text += src.Text
	}
}

// Find looks up the TraceId for (sid, pubVersion) without inserting one.
// Under SplitNone (one TraceId per SID, the common case) it consults the
// secondary xxHash64 index first for O(1) average lookup, falling back to
// the skip list when the hash has never been tracked, has collided with
// another SID's hash, or the list splits by version/bucket (where a single
// SID maps to several TraceIds and the hash index only ever tracks one of
// them).
func (l *TraceList) Find(sid string, pubVersion uint8) (*TraceID, bool) {
	bucket := l.bucketOf(pubVersion)

	if l.split == SplitNone && !l.collisions.HasCollision() {
		if id, ok := l.hashIndex[hash.ID(sid)]; ok && id.SID == sid {
			return id, true
		}
	}

	return l.index.find(bucketKey{sid: sid, bucket: bucket})
}

// TraceIDs returns every TraceId in ascending (SID, bucket) order.
func (l *TraceList) TraceIDs() []*TraceID { return l.index.ascending() }

// Split reports the publication-version bucketing strategy l was
// constructed with.
func (l *TraceList) Split() SplitVersion { return l.split }

// HasHashCollision reports whether two distinct SIDs in this list have
// collided in the xxHash64 secondary index.
func (l *TraceList) HasHashCollision() bool { return l.collisions.HasCollision() }
