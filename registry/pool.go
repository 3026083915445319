/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"math/rand/v2"
)

// idPool hands out ids from the universe [0, max] in FIFO order. The
// initial order is a uniform random permutation; returned ids join the back
// of the queue, so the most recently freed id is reused last.
type idPool struct {
	queue []int
	head  int
}

// compactThreshold is the number of consumed slots tolerated before the
// backing slice is compacted.
const compactThreshold = 1024

func newIDPool(max int, rnd *rand.Rand) *idPool {
	ids := make([]int, max+1)
	for i := range ids {
		ids[i] = i
	}
	swap := func(i, j int) { ids[i], ids[j] = ids[j], ids[i] }
	if rnd != nil {
		rnd.Shuffle(len(ids), swap)
	} else {
		rand.Shuffle(len(ids), swap)
	}
	return &idPool{queue: ids}
}

// Len returns the number of ids available.
func (p *idPool) Len() int { return len(p.queue) - p.head }

// take dequeues the next id.
func (p *idPool) take() (int, bool) {
	if p.Len() == 0 {
		return 0, false
	}
	id := p.queue[p.head]
	p.head++
	if p.head >= compactThreshold && p.head*2 >= len(p.queue) {
		n := copy(p.queue, p.queue[p.head:])
		p.queue = p.queue[:n]
		p.head = 0
	}
	return id, true
}

// put enqueues a freed id.
func (p *idPool) put(id int) {
	p.queue = append(p.queue, id)
}
