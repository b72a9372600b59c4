package autofixture

import (
	"math"
	"math/rand/v2"
	"reflect"
)

// numberSequence hands out unique pseudo-random numbers no larger than
// limit, first from [1,255], then [256,32767], then [32768,2147483647], each
// range clipped to limit. After the last usable range it starts over.
type numberSequence struct {
	rnd   *rand.Rand
	limit int64
	stage int
	pool  []int64
	used  map[int64]struct{}
}

var numberRanges = [...][2]int64{
	{1, 255},
	{256, 32767},
	{32768, 2147483647},
}

// poolLimit is the largest range that is shuffled up front; larger ranges
// draw at random and remember what they gave out.
const poolLimit = 1 << 16

func newNumberSequence(rnd *rand.Rand, limit int64) *numberSequence {
	return &numberSequence{rnd: rnd, limit: limit}
}

func (s *numberSequence) next() int64 {
	for {
		lo, hi := numberRanges[s.stage][0], min(numberRanges[s.stage][1], s.limit)
		if lo > hi {
			s.advance()
			continue
		}
		size := hi - lo + 1
		if size <= poolLimit {
			if s.pool == nil {
				s.pool = make([]int64, 0, size)
				for _, i := range s.rnd.Perm(int(size)) {
					s.pool = append(s.pool, lo+int64(i))
				}
			}
			if len(s.pool) > 0 {
				n := s.pool[len(s.pool)-1]
				s.pool = s.pool[:len(s.pool)-1]
				if len(s.pool) == 0 {
					s.advance()
				}
				return n
			}
			s.advance()
			continue
		}

		if s.used == nil {
			s.used = make(map[int64]struct{})
		}
		if int64(len(s.used)) >= size {
			s.advance()
			continue
		}
		for {
			n := lo + s.rnd.Int64N(size)
			if _, ok := s.used[n]; !ok {
				s.used[n] = struct{}{}
				return n
			}
		}
	}
}

func (s *numberSequence) advance() {
	s.stage = (s.stage + 1) % len(numberRanges)
	s.pool = nil
	s.used = nil
}

// numbers keeps one sequence per kind limit, so kinds that hold the same
// values draw from one sequence and never repeat each other.
type numbers struct {
	rnd  *rand.Rand
	seqs map[int64]*numberSequence
}

func newNumbers(rnd *rand.Rand) *numbers {
	return &numbers{rnd: rnd, seqs: make(map[int64]*numberSequence)}
}

// nextFor returns the next number that kind can hold.
func (n *numbers) nextFor(kind reflect.Kind) int64 {
	limit := kindLimit(kind)
	seq, ok := n.seqs[limit]
	if !ok {
		seq = newNumberSequence(n.rnd, limit)
		n.seqs[limit] = seq
	}
	return seq.next()
}

func kindLimit(kind reflect.Kind) int64 {
	switch kind {
	case reflect.Int8:
		return math.MaxInt8
	case reflect.Uint8:
		return math.MaxUint8
	case reflect.Int16:
		return math.MaxInt16
	case reflect.Uint16:
		return math.MaxUint16
	default:
		return math.MaxInt32
	}
}
