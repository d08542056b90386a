package renderer_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/vango-dev/rendr/pkg/dom"
	"github.com/vango-dev/rendr/pkg/reactive"
	"github.com/vango-dev/rendr/pkg/renderer"
	. "github.com/vango-dev/rendr/pkg/vdom"
)

func benchList(keys []int) *VNode {
	return Ul(Range(keys, func(_ int, k int) (any, *VNode) {
		return k, Li(Content(strconv.Itoa(k)))
	}))
}

func BenchmarkLIS(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		seq := rand.New(rand.NewSource(1)).Perm(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = renderer.LIS(seq)
			}
		})
	}
}

func BenchmarkMount(b *testing.B) {
	keys := rand.New(rand.NewSource(1)).Perm(1000)
	for i := 0; i < b.N; i++ {
		doc := dom.NewDocument()
		r := renderer.New(reactive.New(), doc.Host())
		r.Render(benchList(keys), doc.Body())
	}
}

func BenchmarkKeyedPatch(b *testing.B) {
	base := make([]int, 1000)
	for i := range base {
		base[i] = i
	}
	reversed := make([]int, len(base))
	for i, k := range base {
		reversed[len(base)-1-i] = k
	}
	shuffled := rand.New(rand.NewSource(1)).Perm(len(base))
	swapped := append([]int(nil), base...)
	swapped[1], swapped[998] = swapped[998], swapped[1]

	cases := []struct {
		name string
		next []int
	}{
		{"reverse", reversed},
		{"shuffle", shuffled},
		{"swap", swapped},
		{"append", append(append([]int(nil), base...), 1000, 1001)},
		{"remove first", base[1:]},
	}

	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			doc := dom.NewDocument()
			r := renderer.New(reactive.New(), doc.Host())
			for i := 0; i < b.N; i++ {
				r.Render(benchList(base), doc.Body())
				r.Render(benchList(c.next), doc.Body())
			}
		})
	}
}
