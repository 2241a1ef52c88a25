package internaldefs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuckets(t *testing.T) {
	got := CumulativeBuckets(NormalizeBuckets([]uint64{1, 2, 3}))
	want := [8]uint64{1, 3, 6, 6, 6, 6, 6, 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cumulative buckets mismatch (-want +got):\n%s", diff)
	}

	if len(HistogramBounds) != len(HistogramBoundSuffix) {
		t.Fatalf("bounds and suffixes differ in length")
	}
}
