package lltab

import "testing"

func TestSpanExtend(t *testing.T) {
	a := Span{3, 5}
	b := Span{1, 4}
	if x := a.Extend(b); x != (Span{1, 5}) {
		t.Errorf("expected (1…5), got %s", x)
	}
	if x := (Span{}).Extend(a); x != a {
		t.Errorf("expected null span to adopt other, got %s", x)
	}
	if a.Len() != 2 {
		t.Errorf("expected length 2, got %d", a.Len())
	}
}
