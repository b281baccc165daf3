package tracelist

import "math/rand/v2"

// maxHeight bounds a node's forward-pointer slice; height is drawn from a
// geometric distribution with p = 1/2 (§4.H).
const maxHeight = 8

// bucketKey orders TraceId nodes first by source identifier, then by the
// publication-version bucket (§4.H's "ascending (SID, pubversion)"
// traversal order).
type bucketKey struct {
	sid    string
	bucket int
}

func (a bucketKey) less(b bucketKey) bool {
	if a.sid != b.sid {
		return a.sid < b.sid
	}

	return a.bucket < b.bucket
}

func (a bucketKey) equal(b bucketKey) bool { return a.sid == b.sid && a.bucket == b.bucket }

type node struct {
	key     bucketKey
	id      *TraceID
	forward []*node
}

// skipList is an ordered map keyed by bucketKey, used as TraceList's index
// of TraceId nodes.
type skipList struct {
	head *node
}

func newSkipList() *skipList {
	return &skipList{head: &node{forward: make([]*node, maxHeight)}}
}

func randomHeight() int {
	h := 1
	for h < maxHeight && rand.IntN(2) == 0 {
		h++
	}

	return h
}

// getOrInsert returns the TraceID for key, constructing one via newID and
// linking it into the list if it does not already exist.
func (s *skipList) getOrInsert(key bucketKey, newID func() *TraceID) *TraceID {
	var update [maxHeight]*node
	cur := s.head

	for level := maxHeight - 1; level >= 0; level-- {
		for cur.forward[level] != nil && cur.forward[level].key.less(key) {
			cur = cur.forward[level]
		}
		update[level] = cur
	}

	if next := cur.forward[0]; next != nil && next.key.equal(key) {
		return next.id
	}

	n := &node{key: key, id: newID(), forward: make([]*node, randomHeight())}
	for level := range n.forward {
		n.forward[level] = update[level].forward[level]
		update[level].forward[level] = n
	}

	return n.id
}

// find returns the TraceID for key without inserting one.
func (s *skipList) find(key bucketKey) (*TraceID, bool) {
	cur := s.head
	for level := maxHeight - 1; level >= 0; level-- {
		for cur.forward[level] != nil && cur.forward[level].key.less(key) {
			cur = cur.forward[level]
		}
	}

	if next := cur.forward[0]; next != nil && next.key.equal(key) {
		return next.id, true
	}

	return nil, false
}

// ascending returns every TraceID in skip-list level-0 order.
func (s *skipList) ascending() []*TraceID {
	var out []*TraceID
	for cur := s.head.forward[0]; cur != nil; cur = cur.forward[0] {
		out = append(out, cur.id)
	}

	return out
}
