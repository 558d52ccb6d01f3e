package geoindex

import (
	"math/rand"
	"testing"
)

func TestCheckBoxBothCorners(t *testing.T) {
	// A box with an out-of-range lower latitude must fail even though the
	// upper latitude is fine, and vice versa -- regression for the sibling
	// defect that checked the lower corner's latitude twice.
	bad := BBox{MinLon: -1, MaxLon: 1, MinLat: -91, MaxLat: 1}
	if CheckBox(bad) {
		t.Fatalf("expected invalid box (lower lat out of range) to fail CheckBox")
	}
	bad2 := BBox{MinLon: -1, MaxLon: 1, MinLat: -1, MaxLat: 91}
	if CheckBox(bad2) {
		t.Fatalf("expected invalid box (upper lat out of range) to fail CheckBox")
	}
	good := BBox{MinLon: -1, MaxLon: 1, MinLat: -1, MaxLat: 1}
	if !CheckBox(good) {
		t.Fatalf("expected valid box to pass CheckBox")
	}
}

func TestPointInBoxBasic(t *testing.T) {
	box := BBox{MinLon: -2, MaxLon: 2, MinLat: -2, MaxLat: 2}
	for _, p := range []Point{
		{ID: "1", Lon: 0, Lat: 0},
		{ID: "2", Lon: 0, Lat: 1},
		{ID: "3", Lon: 1, Lat: 0},
		{ID: "4", Lon: 1, Lat: 1},
	} {
		if !PointInBox(box, p) {
			t.Errorf("expected %+v inside %+v", p, box)
		}
	}
	for _, p := range []Point{
		{ID: "5", Lon: 0, Lat: 30},
		{ID: "6", Lon: 30, Lat: 0},
	} {
		if PointInBox(box, p) {
			t.Errorf("expected %+v outside %+v", p, box)
		}
	}
}

func TestPointInBoxAntimeridian(t *testing.T) {
	box := BBox{MinLon: 178, MaxLon: -178, MinLat: -2, MaxLat: 2}
	inside := []Point{
		{ID: "1", Lon: -180, Lat: 0},
		{ID: "2", Lon: 179, Lat: 0},
		{ID: "3", Lon: -179, Lat: 0},
		{ID: "4", Lon: 180, Lat: 0},
		{ID: "5", Lon: -179, Lat: 1},
		{ID: "6", Lon: 179, Lat: 1},
	}
	for _, p := range inside {
		if !PointInBox(box, p) {
			t.Errorf("expected %+v inside antimeridian box %+v", p, box)
		}
	}
	outside := []Point{
		{ID: "7", Lon: 30, Lat: 0},
		{ID: "8", Lon: -40, Lat: 0},
	}
	for _, p := range outside {
		if PointInBox(box, p) {
			t.Errorf("expected %+v outside antimeridian box %+v", p, box)
		}
	}
}

func TestRelateFixedScenarios(t *testing.T) {
	a := BBox{MinLon: -2, MaxLon: 2, MinLat: -2, MaxLat: 2}

	t.Run("contains", func(t *testing.T) {
		b := BBox{MinLon: -1, MaxLon: 1, MinLat: -1, MaxLat: 1}
		if got := Relate(a, b); got != Contains {
			t.Errorf("Relate(a,b) = %v, want Contains", got)
		}
		if got := Relate(b, a); got != Within {
			t.Errorf("Relate(b,a) = %v, want Within", got)
		}
	})

	t.Run("intersects", func(t *testing.T) {
		b := BBox{MinLon: 0, MaxLon: 3, MinLat: 0, MaxLat: 3}
		if got := Relate(a, b); got != Intersects {
			t.Errorf("Relate(a,b) = %v, want Intersects", got)
		}
		if got := Relate(b, a); got != Intersects {
			t.Errorf("Relate(b,a) = %v, want Intersects", got)
		}
	})

	t.Run("disjoint", func(t *testing.T) {
		b := BBox{MinLon: 12, MaxLon: 13, MinLat: 11, MaxLat: 12}
		if got := Relate(a, b); got != Disjoint {
			t.Errorf("Relate(a,b) = %v, want Disjoint", got)
		}
		if got := Relate(b, a); got != Disjoint {
			t.Errorf("Relate(b,a) = %v, want Disjoint", got)
		}
	})
}

func TestRelateInvolution(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		a := randomBBox(rnd)
		b := randomBBox(rnd)
		ab := Relate(a, b)
		ba := Relate(b, a)
		switch ab {
		case Contains:
			if ba != Within {
				t.Fatalf("Relate(a,b)=Contains but Relate(b,a)=%v (a=%+v b=%+v)", ba, a, b)
			}
		case Within:
			if ba != Contains {
				t.Fatalf("Relate(a,b)=Within but Relate(b,a)=%v (a=%+v b=%+v)", ba, a, b)
			}
		case Disjoint:
			if ba != Disjoint {
				t.Fatalf("Relate(a,b)=Disjoint but Relate(b,a)=%v (a=%+v b=%+v)", ba, a, b)
			}
		case Intersects:
			if ba != Intersects {
				t.Fatalf("Relate(a,b)=Intersects but Relate(b,a)=%v (a=%+v b=%+v)", ba, a, b)
			}
		}
	}
}

func randomBBox(rnd *rand.Rand) BBox {
	minLon := rnd.Float64()*360 - 180
	maxLon := rnd.Float64()*360 - 180
	minLat := rnd.Float64()*180 - 90
	maxLat := rnd.Float64()*180 - 90
	if minLat > maxLat {
		minLat, maxLat = maxLat, minLat
	}
	return BBox{MinLon: minLon, MaxLon: maxLon, MinLat: minLat, MaxLat: maxLat}
}
