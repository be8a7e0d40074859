package matrix

import (
	"errors"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	src := strings.NewReader(`3 2
0 0 -434
2 1 120

1 0 7
`)
	m, err := Load(src)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Height != 3 || m.Width != 2 {
		t.Fatalf("dimensions mismatch: %dx%d", m.Height, m.Width)
	}
	cases := []struct {
		r, l uint16
		cost int16
	}{
		{0, 0, -434},
		{2, 1, 120},
		{1, 0, 7},
		{0, 1, 0},
		{2, 0, 0},
	}
	for _, c := range cases {
		if got := m.Cost(c.r, c.l); got != c.cost {
			t.Fatalf("cost(%d,%d) should be %d, is %d", c.r, c.l, c.cost, got)
		}
	}
}

func TestRowMajorLayout(t *testing.T) {
	m := New(2, 5)
	m.Set(1, 3, 42)
	if m.Costs[1*5+3] != 42 {
		t.Fatalf("cost stored at wrong offset: %v", m.Costs)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name, src, msg string
	}{
		{"short header", "3\n", "line 1"},
		{"bad height", "x 2\n", "line 1"},
		{"short line", "2 2\n0 0 1\n1 1\n", "line 3"},
		{"bad cost", "2 2\n\n0 1 abc\n", "line 3"},
		{"cost overflow", "2 2\n0 1 40000\n", "line 2"},
		{"out of range", "2 2\n2 0 1\n", "outside"},
	}
	for _, c := range cases {
		_, err := Load(strings.NewReader(c.src))
		if err == nil || !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("%s: expected error mentioning %q, got %v", c.name, c.msg, err)
		}
	}
	if _, err := Load(strings.NewReader("\n\n")); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("expected ErrNoHeader, got %v", err)
	}
}
