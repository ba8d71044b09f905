package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// IterSeq2Collect gathers a key/value iterator into a map.
// Later keys replace earlier ones.
func IterSeq2Collect[K comparable, V any](seq iter.Seq2[K, V]) (collected map[K]V) {
	collected = make(map[K]V)
	for key, value := range seq {
		collected[key] = value
	}

	return
}
