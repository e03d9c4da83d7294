// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package geometry

import "testing"

// TestDecodeEncodeBijection checks that decode(encode(core,base)) equals
// (core,base) for all valid (core,base), and no other index is produced.
func TestDecodeEncodeBijection(t *testing.T) {
	seen := make(map[Index]bool, VariantCount)
	for core := Core(0); core < coreCount; core++ {
		for base := Base(0); base < baseCount; base++ {
			idx := Encode(core, base)
			if idx < 0 || int(idx) >= VariantCount {
				t.Fatalf("Encode(%v,%v) = %d out of range", core, base, idx)
			}
			if seen[idx] {
				t.Fatalf("Encode(%v,%v) = %d collides with a previous pair", core, base, idx)
			}
			seen[idx] = true

			gotCore, gotBase := Decode(idx)
			if gotCore != core || gotBase != base {
				t.Fatalf("Decode(Encode(%v,%v)) = (%v,%v), want (%v,%v)", core, base, gotCore, gotBase, core, base)
			}
		}
	}
	if len(seen) != VariantCount {
		t.Fatalf("got %d distinct indices, want %d", len(seen), VariantCount)
	}
}

func TestClampRoundsAndClamps(t *testing.T) {
	cases := []struct {
		in   float32
		want Index
	}{
		{-5, 0},
		{0.4, 0},
		{0.6, 1},
		{23.4, 23},
		{99, 23},
	}
	for _, c := range cases {
		if got := Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestAllHasEveryVariant(t *testing.T) {
	all := All()
	if len(all) != VariantCount {
		t.Fatalf("All() returned %d entries, want %d", len(all), VariantCount)
	}
	for i, v := range all {
		if int(v.Index) != i {
			t.Errorf("All()[%d].Index = %d, want %d", i, v.Index, i)
		}
	}
}

func TestCallExprCoversAllVariants(t *testing.T) {
	for i := 0; i < VariantCount; i++ {
		g, w := CallExpr(Index(i))
		if g == "" || w == "" {
			t.Errorf("CallExpr(%d) returned empty source", i)
		}
	}
}
