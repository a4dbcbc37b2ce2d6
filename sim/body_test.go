package sim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewSystemValidation(t *testing.T) {
	tests := []struct {
		name    string
		bodies  []Body
		wantErr bool
	}{
		{
			name: "valid sun and planet",
			bodies: []Body{
				{Name: "sun", Role: RoleSun},
				{Name: "earth", Role: RolePlanet, OrbitRadius: 2.5},
			},
			wantErr: false,
		},
		{
			name: "moon with explicit parent",
			bodies: []Body{
				{Name: "sun", Role: RoleSun},
				{Name: "earth", Role: RolePlanet},
				{Name: "moon", Role: RoleMoon, Parent: "earth"},
			},
			wantErr: false,
		},
		{
			name: "unknown parent",
			bodies: []Body{
				{Name: "sun", Role: RoleSun},
				{Name: "moon", Role: RoleMoon, Parent: "earth"},
			},
			wantErr: true,
		},
		{
			name: "parent after child",
			bodies: []Body{
				{Name: "sun", Role: RoleSun},
				{Name: "moon", Role: RoleMoon, Parent: "earth"},
				{Name: "earth", Role: RolePlanet},
			},
			wantErr: true,
		},
		{
			name: "duplicate name",
			bodies: []Body{
				{Name: "sun", Role: RoleSun},
				{Name: "earth", Role: RolePlanet},
				{Name: "earth", Role: RolePlanet},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSystem(tt.bodies)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSystem() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultSystemComposition(t *testing.T) {
	s := DefaultSystem()
	if got := len(s.Bodies()); got != 10 {
		t.Fatalf("expected 10 bodies, got %d", got)
	}
	if s.Bodies()[0].Role != RoleSun {
		t.Errorf("expected first body to be the sun, got role %v", s.Bodies()[0].Role)
	}
	if idx := s.IndexOf("earth"); idx < 0 {
		t.Errorf("expected earth in the system")
	}
	if idx := s.IndexOf("pluto"); idx != -1 {
		t.Errorf("expected -1 for unknown body, got %d", idx)
	}
}

func TestCyclableExcludesSunAndMoon(t *testing.T) {
	s := DefaultSystem()
	cyclable := s.Cyclable()
	if len(cyclable) != 8 {
		t.Fatalf("expected 8 cyclable planets, got %d", len(cyclable))
	}
	for _, idx := range cyclable {
		role := s.Bodies()[idx].Role
		if role != RolePlanet {
			t.Errorf("cyclable body %q has role %v, want planet", s.Bodies()[idx].Name, role)
		}
	}
}

func TestAtIsDeterministic(t *testing.T) {
	s := DefaultSystem()
	a := s.At(1234.5678, nil)
	b := s.At(1234.5678, nil)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("body %q state differs between identical evaluations: %+v vs %+v", s.Bodies()[i].Name, a[i], b[i])
		}
	}
}

func TestAtSunStaysAtOrigin(t *testing.T) {
	s := DefaultSystem()
	for _, elapsed := range []float64{0, 1, 100, 9999.25} {
		states := s.At(elapsed, nil)
		if pos := states[0].Position; pos != (mgl32.Vec3{}) {
			t.Errorf("sun moved to %v at t=%v", pos, elapsed)
		}
	}
}

func TestAtMoonOrbitsEarth(t *testing.T) {
	s := DefaultSystem()
	earth := s.IndexOf("earth")
	moon := s.IndexOf("moon")
	moonRadius := s.Bodies()[moon].OrbitRadius

	for _, elapsed := range []float64{0, 0.5, 3.7, 42.0} {
		states := s.At(elapsed, nil)
		d := states[moon].Position.Sub(states[earth].Position).Len()
		if math.Abs(float64(d-moonRadius)) > 1e-4 {
			t.Errorf("t=%v: moon distance from earth = %v, want %v", elapsed, d, moonRadius)
		}
		if states[moon].Position.Y() != states[earth].Position.Y() {
			t.Errorf("t=%v: moon left earth's orbital plane", elapsed)
		}
	}
}

func TestAtOrbitRadiusHeld(t *testing.T) {
	s := DefaultSystem()
	states := s.At(17.31, nil)
	for i, b := range s.Bodies() {
		if b.Role != RolePlanet {
			continue
		}
		r := states[i].Position.Len()
		if math.Abs(float64(r-b.OrbitRadius)) > 1e-3 {
			t.Errorf("%s: distance from sun = %v, want %v", b.Name, r, b.OrbitRadius)
		}
	}
}

func TestAtPeriodClosure(t *testing.T) {
	s := DefaultSystem()
	earth := s.IndexOf("earth")
	period := 2 * math.Pi / float64(s.Bodies()[earth].OrbitSpeed)

	at0 := s.At(0, nil)[earth].Position
	at1 := s.At(period, nil)[earth].Position
	if at1.Sub(at0).Len() > 1e-4 {
		t.Errorf("earth did not return to start after one period: %v vs %v", at0, at1)
	}
}

func TestAtReusesOutputSlice(t *testing.T) {
	s := DefaultSystem()
	buf := make([]BodyState, 0, len(s.Bodies()))
	out := s.At(5.0, buf)
	if &out[0] != &buf[:1][0] {
		t.Errorf("expected At to reuse the provided backing array")
	}
}
