package fill

// node is a flood-front entry; equal elevations pop in insertion order.
type node struct {
	z   float64
	seq int
	cid int
}

func (a node) less(b node) bool {
	if a.z != b.z {
		return a.z < b.z
	}
	return a.seq < b.seq
}

// queue is a binary min-heap over (z, seq, cid).
type queue struct {
	h   []node
	seq int
}

func newQueue(capacity int) *queue {
	return &queue{h: make([]node, 0, capacity)}
}

func (q *queue) len() int { return len(q.h) }

func (q *queue) push(z float64, cid int) {
	q.h = append(q.h, node{z, q.seq, cid})
	q.seq++
	i := len(q.h) - 1
	for i > 0 {
		p := (i - 1) / 2
		if !q.h[i].less(q.h[p]) {
			break
		}
		q.h[i], q.h[p] = q.h[p], q.h[i]
		i = p
	}
}

func (q *queue) pop() node {
	top := q.h[0]
	n := len(q.h) - 1
	q.h[0] = q.h[n]
	q.h = q.h[:n]
	i := 0
	for {
		l, m := 2*i+1, i
		if l < n && q.h[l].less(q.h[m]) {
			m = l
		}
		if r := l + 1; r < n && q.h[r].less(q.h[m]) {
			m = r
		}
		if m == i {
			break
		}
		q.h[i], q.h[m] = q.h[m], q.h[i]
		i = m
	}
	return top
}
