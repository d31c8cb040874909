package effects

import (
	"errors"
	"testing"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/texture"
)

func mustNew(t *testing.T, name string, w, h int) fx.Effect {
	t.Helper()
	e, _, err := New(name, fx.Options{Seed: 7})
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	if err := e.Setup(w, h); err != nil {
		t.Fatalf("%s.Setup(%d, %d): %v", name, w, h, err)
	}
	return e
}

func TestEveryEffectAnyViewport(t *testing.T) {
	sizes := []struct{ w, h int }{
		{1, 1},
		{7, 5},
		{64, 48},
		{160, 100},
	}
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			e, _, err := New(name, fx.Options{Seed: 1})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			for _, sz := range sizes {
				if err := e.Setup(sz.w, sz.h); err != nil {
					t.Fatalf("Setup(%d, %d): %v", sz.w, sz.h, err)
				}
				for range 3 {
					e.Step()
				}
				fb := e.Frame()
				if fb.Width != sz.w || fb.Height != sz.h {
					t.Errorf("frame = %dx%d, want %dx%d", fb.Width, fb.Height, sz.w, sz.h)
				}
				if len(fb.Pix) != sz.w*sz.h {
					t.Errorf("len(Pix) = %d, want %d", len(fb.Pix), sz.w*sz.h)
				}
			}
		})
	}
}

func TestSetupRejectsEmptyViewport(t *testing.T) {
	for _, name := range Names() {
		e, _, err := New(name, fx.Options{})
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if err := e.Setup(0, 10); !errors.Is(err, fx.ErrViewport) {
			t.Errorf("%s.Setup(0, 10) = %v, want ErrViewport", name, err)
		}
		if err := e.Setup(10, -1); !errors.Is(err, fx.ErrViewport) {
			t.Errorf("%s.Setup(10, -1) = %v, want ErrViewport", name, err)
		}
	}
}

func TestRegistry(t *testing.T) {
	names := Names()
	if len(names) != 34 {
		t.Errorf("len(Names()) = %d, want 34", len(names))
	}
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate effect %q", n)
		}
		seen[n] = true
		info, ok := Lookup(n)
		if !ok || info.Name != n {
			t.Errorf("Lookup(%q) = %+v, %v", n, info, ok)
		}
		if info.Interval <= 0 || info.Width <= 0 || info.Height <= 0 {
			t.Errorf("%s: incomplete info %+v", n, info)
		}
	}
	if len(All()) != len(names) {
		t.Errorf("len(All()) = %d, want %d", len(All()), len(names))
	}

	if _, _, err := New("nope", fx.Options{}); !errors.Is(err, fx.ErrUnknownEffect) {
		t.Errorf("New(nope) = %v, want ErrUnknownEffect", err)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) found an effect")
	}
}

func TestAssetsAreBuiltin(t *testing.T) {
	for _, info := range All() {
		for _, a := range info.Assets {
			if _, err := texture.Builtin(a); err != nil {
				t.Errorf("%s: asset %q: %v", info.Name, a, err)
			}
		}
	}
}

func TestSameSeedSameFrames(t *testing.T) {
	for _, name := range []string{"plasma", "fire", "explosion", "starfield", "sinescroll"} {
		a := mustNew(t, name, 64, 48)
		b := mustNew(t, name, 64, 48)
		for i := 0; i < 10; i++ {
			a.Step()
			b.Step()
			if !a.Frame().Equal(b.Frame()) {
				t.Fatalf("%s: frames differ at step %d", name, i)
			}
		}
	}
}

func TestStarfieldRespawnsLeavingStars(t *testing.T) {
	s := mustNew(t, "starfield", 64, 48).(*Starfield)

	// every star off to the right except the three under test
	for i := range s.stars {
		s.stars[i] = star{x: 1e7, z: 500, speed: 2, grey: 99}
	}
	s.stars[0] = star{x: 1e7, y: 0, z: 50, speed: 2, grey: 200} // leaves the screen
	s.stars[1] = star{x: 10, y: 10, z: 1, speed: 3, grey: 200}  // passes the viewer
	s.stars[2] = star{x: 0, y: 0, z: 400, speed: 2, grey: 200}  // stays centred

	s.Step()

	const spread = 10 * 3072
	for i, wantZ := range []int{1, 2} {
		st := s.stars[i]
		if st.z != wantZ || st.grey != uint8(wantZ>>2) {
			t.Errorf("star %d: z %d grey %d, want respawned at z %d", i, st.z, st.grey, wantZ)
		}
		if st.x < -spread || st.x >= spread || st.y < -spread || st.y >= spread {
			t.Errorf("star %d respawned at (%v, %v), outside the spawn volume", i, st.x, st.y)
		}
		if st.speed < 2 || st.speed > 3 {
			t.Errorf("star %d speed %d", i, st.speed)
		}
	}
	for i := 3; i < starCount; i++ {
		if s.stars[i].z != i+1 {
			t.Fatalf("star %d not respawned in the same step: z %d", i, s.stars[i].z)
		}
	}

	if st := s.stars[2]; st.z != 398 || st.grey != 200 {
		t.Errorf("visible star moved to z %d grey %d, want 398 200", st.z, st.grey)
	}
	lit := 0
	for _, c := range s.Frame().Pix {
		if c != 0 {
			lit++
		}
	}
	if lit != 1 || s.Frame().At(32, 24) != 0xC8C8C8 {
		t.Errorf("%d pixels lit, centre %06x; want only the centred star", lit, s.Frame().At(32, 24))
	}
}

func TestFireCoolsUpwards(t *testing.T) {
	f := mustNew(t, "fire", 64, 48).(*Fire)
	for range 100 {
		f.Step()
	}
	heat := f.Heat()
	mean := func(y int) int {
		sum := 0
		for x := 0; x < heat.Width; x++ {
			sum += int(heat.At(x, y))
		}
		return sum / heat.Width
	}
	top, bottom := mean(0), mean(heat.Height-1)
	if top >= bottom {
		t.Errorf("top row mean %d >= bottom row mean %d", top, bottom)
	}
}

func TestExplosionParticles(t *testing.T) {
	e := mustNew(t, "explosion", 160, 100).(*Explosion)
	if got := e.Live(); got != explosionParticles {
		t.Fatalf("Live() after Setup = %d, want %d", got, explosionParticles)
	}
	for range 50 {
		e.Step()
		if got := e.Live(); got < 0 || got > explosionParticles {
			t.Fatalf("Live() = %d out of range", got)
		}
	}
}

func TestRotoZoomIdentity(t *testing.T) {
	r := mustNew(t, "rotozoom", 64, 48).(*RotoZoom)
	r.draw(4096, 0, 4096)
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			if got, want := r.Frame().At(x, y), r.tile.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %06x, want %06x", x, y, got, want)
			}
		}
	}
}

func TestTwirlStartsUntwisted(t *testing.T) {
	tw := mustNew(t, "twirl", 64, 48).(*Twirl)
	tw.Step()
	if !tw.Frame().Equal(tw.src) {
		t.Error("first frame differs from the source picture")
	}
}

func TestBlockSizeSwings(t *testing.T) {
	b := mustNew(t, "block", 64, 48).(*Block)
	b.Step()
	if !b.Frame().Equal(b.src) {
		t.Error("first frame differs from the source picture")
	}

	limit := 64 / 4
	maxSize := 0
	for range 100 {
		b.Step()
		if b.size < 1 || b.size > limit {
			t.Fatalf("size = %d, want in [1, %d]", b.size, limit)
		}
		maxSize = max(maxSize, b.size)
	}
	if maxSize != limit {
		t.Errorf("largest size = %d, want %d", maxSize, limit)
	}
}

func TestLensLeavesBackground(t *testing.T) {
	l := mustNew(t, "lens", 200, 200).(*Lens)
	x0, y0 := l.Position()
	l.Step()
	fb := l.Frame()
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if x >= x0 && x < x0+lensSide && y >= y0 && y < y0+lensSide {
				continue
			}
			if got, want := fb.At(x, y), l.back.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %06x, want background %06x", x, y, got, want)
			}
		}
	}
	if x, y := l.Position(); x != x0+1 || y != y0+1 {
		t.Errorf("Position() = (%d,%d), want (%d,%d)", x, y, x0+1, y0+1)
	}
}

func TestRippleStillWater(t *testing.T) {
	r := mustNew(t, "ripple", 64, 48).(*Ripple)
	r.Rain = 0
	r.Step()
	if !r.Frame().Equal(r.tex) {
		t.Error("still water does not reproduce the background")
	}

	r.Disturb(32, 24)
	r.Step()
	moving := 0
	for _, v := range r.heights {
		if v != 0 {
			moving++
		}
	}
	if moving == 0 {
		t.Error("Disturb left the surface flat")
	}
}

func TestWaveKinds(t *testing.T) {
	v := mustNew(t, "wave", 160, 100).(*Wave)
	tests := []struct {
		set, want int
	}{
		{0, 0},
		{3, 3},
		{4, 0},
		{5, 1},
		{-1, 3},
	}
	for _, tt := range tests {
		v.SetKind(tt.set)
		if got := v.Kind(); got != tt.want {
			t.Errorf("SetKind(%d): Kind() = %d, want %d", tt.set, got, tt.want)
		}
		v.Step()
	}
}

func TestUnlimitedBallsCount(t *testing.T) {
	u := mustNew(t, "unlimitedballs", 160, 100).(*UnlimitedBalls)
	u.Step()
	if got := u.Sprites(); got != ballPages {
		t.Errorf("Sprites() = %d, want %d", got, ballPages)
	}
	u.SetShape(4)
	if got := u.Shape(); got != 1 {
		t.Errorf("Shape() = %d, want 1", got)
	}
	if got := u.Sprites(); got != 0 {
		t.Errorf("Sprites() after SetShape = %d, want 0", got)
	}
}

func TestVoxelSteering(t *testing.T) {
	v := mustNew(t, "voxel", 64, 40).(*Voxel)
	if !v.Autopilot {
		t.Fatal("autopilot off after Setup")
	}
	_, _, _, h0 := v.Camera()
	v.Step()
	if _, _, _, h := v.Camera(); h != h0+1 {
		t.Errorf("heading = %d, want %d", h, h0+1)
	}

	_, _, z0, _ := v.Camera()
	v.Steer(0, 0, 1)
	if v.Autopilot {
		t.Error("Steer left the autopilot on")
	}
	if _, _, z, _ := v.Camera(); z != z0+8 {
		t.Errorf("altitude = %d, want %d", z, z0+8)
	}
}

func TestSineWavePresetsAdvance(t *testing.T) {
	s := mustNew(t, "sinewave", 64, 48).(*SineWave)
	for range 512/6 + 1 {
		s.Step()
	}
	if got := s.Preset(); got != 1 {
		t.Errorf("Preset() = %d, want 1", got)
	}
}

func TestScrollerText(t *testing.T) {
	e, _, err := New("simplescroll", fx.Options{Text: "one\ntwo"})
	if err != nil {
		t.Fatal(err)
	}
	s := e.(*SimpleScroll)
	if len(s.lines) != 2 {
		t.Errorf("lines = %q, want 2 lines", s.lines)
	}
}
