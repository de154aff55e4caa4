package rank

import "github.com/hillbig/rsdic"

// RSDic delegates to a compressed rank/select dictionary built over a|b.
type RSDic struct {
	dic  *rsdic.RSDic
	ones int
}

func (r *RSDic) Build(a, b *BitVector) {
	r.dic = rsdic.New()
	or := Or(a, b)
	for i := 0; i < or.Len(); i++ {
		r.dic.PushBack(or.Get(i))
	}
	r.ones = or.Ones()
}

func (r *RSDic) Rank(i int, a, b *BitVector) int {
	if uint64(i) >= r.dic.Num() {
		return r.ones
	}
	return int(r.dic.Rank(uint64(i), true))
}

func (r *RSDic) ByteSize() int {
	if r.dic == nil {
		return 0
	}
	return r.dic.AllocSize()
}
