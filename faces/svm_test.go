package faces

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func twoClassSVM(t *testing.T) *SVM {
	t.Helper()
	m := &SVM{
		Classes:        []string{"alice", "bob"},
		Kernel:         KernelLinear,
		NSupport:       []int{1, 1},
		SupportVectors: [][]float64{{1, 0}, {0, 1}},
		SVCoef:         [][]float64{{1, -1}},
		Rho:            []float64{0},
		ProbA:          []float64{-2},
		ProbB:          []float64{0},
	}
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	return m
}

func threeClassSVM(t *testing.T) *SVM {
	t.Helper()
	m := &SVM{
		Classes:        []string{"a", "b", "c"},
		Kernel:         KernelLinear,
		NSupport:       []int{1, 1, 1},
		SupportVectors: [][]float64{{1, 0}, {0, 1}, {-1, -1}},
		SVCoef:         [][]float64{{1, -1, -1}, {1, 1, -1}},
		Rho:            []float64{0, 0, 0},
		ProbA:          []float64{-2, -2, -2},
		ProbB:          []float64{0, 0, 0},
	}
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSVMTwoClass(t *testing.T) {
	m := twoClassSVM(t)
	got, err := m.Predict(Descriptor{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	want := 1 / (1 + math.Exp(-2))
	if got.Identity != "alice" || math.Abs(got.Confidence-want) > 1e-9 {
		t.Errorf("Predict() = %+v, want alice %.4f", got, want)
	}
	got, _ = m.Predict(Descriptor{0, 3})
	if got.Identity != "bob" {
		t.Errorf("Predict() = %+v, want bob", got)
	}
}

func TestSVMThreeClass(t *testing.T) {
	m := threeClassSVM(t)
	tests := []struct {
		x    Descriptor
		want string
	}{
		{Descriptor{2, 0}, "a"},
		{Descriptor{0, 2}, "b"},
		{Descriptor{-2, -2}, "c"},
	}
	for _, tt := range tests {
		probs, err := m.Probabilities(tt.x)
		if err != nil {
			t.Fatal(err)
		}
		sum := 0.0
		for _, p := range probs {
			if p < 0 || p > 1 {
				t.Errorf("probability %v out of range", p)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("probabilities %v sum to %v", probs, sum)
		}
		got, _ := m.Predict(tt.x)
		if got.Identity != tt.want {
			t.Errorf("Predict(%v) = %+v, want %s", tt.x, got, tt.want)
		}
	}
}

func TestSVMDescriptorShape(t *testing.T) {
	m := twoClassSVM(t)
	if _, err := m.Predict(Descriptor{1, 2, 3}); !errors.Is(err, ErrDescriptorShape) {
		t.Errorf("Predict() error = %v, want ErrDescriptorShape", err)
	}
}

func TestSVMInitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *SVM)
	}{
		{"one class", func(m *SVM) { m.Classes = m.Classes[:1] }},
		{"kernel", func(m *SVM) { m.Kernel = "laplacian" }},
		{"n_support", func(m *SVM) { m.NSupport = []int{1} }},
		{"support vector count", func(m *SVM) { m.NSupport = []int{2, 1} }},
		{"ragged vectors", func(m *SVM) { m.SupportVectors[1] = []float64{1} }},
		{"coef rows", func(m *SVM) { m.SVCoef = append(m.SVCoef, []float64{0, 0}) }},
		{"probability pairs", func(m *SVM) { m.ProbA = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := twoClassSVM(t)
			tt.mutate(m)
			if err := m.Init(); err == nil {
				t.Error("Init() should fail")
			}
		})
	}
}

func TestLoadSVM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svm.json")
	artifact := `{"classes":["1","2"],"kernel":"rbf","gamma":0.5,"n_support":[1,1],
		"support_vectors":[[0,0],[1,1]],"sv_coef":[[1,-1]],"rho":[0],"prob_a":[-1.5],"prob_b":[0.1]}`
	if err := os.WriteFile(path, []byte(artifact), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := LoadSVM(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Dim() != 2 {
		t.Errorf("Dim() = %d", m.Dim())
	}
	got, err := m.Predict(Descriptor{0, 0.1})
	if err != nil || got.Identity != "1" {
		t.Errorf("Predict() = %+v, %v", got, err)
	}
	if _, err = LoadSVM(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadSVM() on a missing file should fail")
	}
	if err = os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err = LoadSVM(path); err == nil {
		t.Error("LoadSVM() on a corrupt file should fail")
	}
}
