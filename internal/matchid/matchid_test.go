package matchid

import (
	rand "math/rand/v2"
	"testing"
)

type pcgSource struct {
	rng *rand.Rand
}

func (s pcgSource) Intn(n int) int {
	return s.rng.IntN(n)
}

func TestGenerate(t *testing.T) {
	id := Generate()

	if len(id) != 26 {
		t.Errorf("expected 26 characters, got %d", len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated ID failed validation: %v", err)
	}
	if id[0] > '7' {
		t.Errorf("first character %c exceeds maximum '7'", id[0])
	}
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		if ids[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewGenerator(pcgSource{rand.New(rand.NewPCG(42, 0))}).Generate()
	b := NewGenerator(pcgSource{rand.New(rand.NewPCG(42, 0))}).Generate()

	if a != b {
		t.Errorf("same seed should give the same id: %s vs %s", a, b)
	}
	if err := Validate(a); err != nil {
		t.Errorf("deterministic ID failed validation: %v", err)
	}

	c := NewGenerator(pcgSource{rand.New(rand.NewPCG(43, 0))}).Generate()
	if a == c {
		t.Error("different seeds should give different ids")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"valid", Generate(), true},
		{"too short", "0123456789", false},
		{"too long", Generate() + "0", false},
		{"first char too large", "z" + Generate()[1:], false},
		{"invalid character", Generate()[:25] + "u", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.ok && err != nil {
				t.Errorf("Validate(%q): %v", tt.id, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("Validate(%q) should fail", tt.id)
			}
		})
	}
}
