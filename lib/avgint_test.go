package lib

import "testing"

func TestAverageInt64(t *testing.T) {
	av := &AverageInt64{}
	if x := av.Mean(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if y := av.Variance(); y != 0 {
		t.Errorf("expected %v, got %v", 0, y)
	} else if z := av.SD(); z != 0 {
		t.Errorf("expected %v, got %v", 0, z)
	}

	for _, sample := range []int64{64, 32, 128, 32, 64} {
		av.Add(sample)
	}
	if x := av.Samples(); x != 5 {
		t.Errorf("expected %v, got %v", 5, x)
	} else if y := av.Min(); y != 32 {
		t.Errorf("expected %v, got %v", 32, y)
	} else if z := av.Max(); z != 128 {
		t.Errorf("expected %v, got %v", 128, z)
	} else if m := av.Mean(); m != 64 {
		t.Errorf("expected %v, got %v", 64, m)
	}
	if x := av.Variance(); x <= 0 {
		t.Errorf("expected positive variance, got %v", x)
	} else if y := av.SD(); y <= 0 {
		t.Errorf("expected positive deviation, got %v", y)
	}

	stats := av.Stats()
	for _, key := range []string{"samples", "min", "max", "mean"} {
		if _, ok := stats[key]; ok == false {
			t.Errorf("missing %q in stats", key)
		}
	}
}

func BenchmarkAvgintAdd(b *testing.B) {
	av := &AverageInt64{}
	for i := 0; i < b.N; i++ {
		av.Add(int64(i))
	}
}
