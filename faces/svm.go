package faces

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// Kernel names follow libsvm
type Kernel string

const (
	KernelLinear  Kernel = "linear"
	KernelRBF     Kernel = "rbf"
	KernelPoly    Kernel = "poly"
	KernelSigmoid Kernel = "sigmoid"
)

const minPairwiseProb = 1e-7

// Classifier maps a descriptor to an identity with its probability
type Classifier interface {
	Predict(d Descriptor) (Match, error)
}

// SVM is a one-vs-one multi-class support vector classifier with Platt-calibrated
// probabilities. Fields follow the libsvm model layout: SVCoef has len(Classes)-1 rows,
// one column per support vector; Rho, ProbA and ProbB have one entry per class pair
// in (0,1), (0,2) ... (1,2) ... order.
type SVM struct {
	Classes        []string    `json:"classes"`
	Kernel         Kernel      `json:"kernel"`
	Gamma          float64     `json:"gamma"`
	Coef0          float64     `json:"coef0"`
	Degree         int         `json:"degree"`
	NSupport       []int       `json:"n_support"`
	SupportVectors [][]float64 `json:"support_vectors"`
	SVCoef         [][]float64 `json:"sv_coef"`
	Rho            []float64   `json:"rho"`
	ProbA          []float64   `json:"prob_a"`
	ProbB          []float64   `json:"prob_b"`

	start []int
}

// LoadSVM reads a JSON classifier artifact
func LoadSVM(path string) (*SVM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classifier %s: %w", path, err)
	}
	m := &SVM{}
	if err = json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse classifier %s: %w", path, err)
	}
	if err = m.Init(); err != nil {
		return nil, fmt.Errorf("classifier %s: %w", path, err)
	}
	return m, nil
}

// Init validates the model and precomputes the support vector offsets of every class.
// Must be called once before Predict when the model is not built by LoadSVM.
func (m *SVM) Init() error {
	k := len(m.Classes)
	if k < 2 {
		return errors.New("at least two classes are required")
	}
	switch m.Kernel {
	case KernelLinear, KernelRBF, KernelPoly, KernelSigmoid:
	default:
		return fmt.Errorf("unsupported kernel %q", m.Kernel)
	}
	if len(m.NSupport) != k {
		return fmt.Errorf("n_support has %d entries, expected %d", len(m.NSupport), k)
	}
	total := 0
	m.start = make([]int, k)
	for i, n := range m.NSupport {
		m.start[i] = total
		total += n
	}
	if len(m.SupportVectors) != total || total == 0 {
		return fmt.Errorf("expected %d support vectors, got %d", total, len(m.SupportVectors))
	}
	dim := len(m.SupportVectors[0])
	for _, sv := range m.SupportVectors {
		if len(sv) != dim {
			return errors.New("support vectors have different lengths")
		}
	}
	if len(m.SVCoef) != k-1 {
		return fmt.Errorf("sv_coef has %d rows, expected %d", len(m.SVCoef), k-1)
	}
	for _, row := range m.SVCoef {
		if len(row) != total {
			return errors.New("sv_coef rows must have one entry per support vector")
		}
	}
	pairs := k * (k - 1) / 2
	if len(m.Rho) != pairs || len(m.ProbA) != pairs || len(m.ProbB) != pairs {
		return fmt.Errorf("rho, prob_a and prob_b need %d entries", pairs)
	}
	return nil
}

// Dim is the expected descriptor length
func (m *SVM) Dim() int {
	return len(m.SupportVectors[0])
}

// Predict returns the most probable class and its probability
func (m *SVM) Predict(d Descriptor) (Match, error) {
	probs, err := m.Probabilities(d)
	if err != nil {
		return Match{}, err
	}
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return Match{Identity: m.Classes[best], Confidence: clamp01(probs[best])}, nil
}

// Probabilities returns one probability per class, in Classes order
func (m *SVM) Probabilities(d Descriptor) ([]float64, error) {
	if len(d) != m.Dim() {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrDescriptorShape, len(d), m.Dim())
	}
	k := len(m.Classes)
	dec := m.decisionValues(d)
	pairwise := make([][]float64, k)
	for i := range pairwise {
		pairwise[i] = make([]float64, k)
	}
	p := 0
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			r := sigmoidPredict(dec[p], m.ProbA[p], m.ProbB[p])
			r = math.Min(math.Max(r, minPairwiseProb), 1-minPairwiseProb)
			pairwise[i][j] = r
			pairwise[j][i] = 1 - r
			p++
		}
	}
	if k == 2 {
		return []float64{pairwise[0][1], pairwise[1][0]}, nil
	}
	return coupleProbabilities(pairwise), nil
}

func (m *SVM) decisionValues(x Descriptor) []float64 {
	kv := make([]float64, len(m.SupportVectors))
	for i, sv := range m.SupportVectors {
		kv[i] = m.kernel(x, sv)
	}
	k := len(m.Classes)
	dec := make([]float64, 0, k*(k-1)/2)
	p := 0
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			si, sj := m.start[i], m.start[j]
			coef1, coef2 := m.SVCoef[j-1], m.SVCoef[i]
			sum := 0.0
			for n := 0; n < m.NSupport[i]; n++ {
				sum += coef1[si+n] * kv[si+n]
			}
			for n := 0; n < m.NSupport[j]; n++ {
				sum += coef2[sj+n] * kv[sj+n]
			}
			dec = append(dec, sum-m.Rho[p])
			p++
		}
	}
	return dec
}

func (m *SVM) kernel(a, b []float64) float64 {
	switch m.Kernel {
	case KernelRBF:
		sum := 0.0
		for i := range a {
			d := a[i] - b[i]
			sum += d * d
		}
		return math.Exp(-m.Gamma * sum)
	case KernelPoly:
		return math.Pow(m.Gamma*dot(a, b)+m.Coef0, float64(m.Degree))
	case KernelSigmoid:
		return math.Tanh(m.Gamma*dot(a, b) + m.Coef0)
	}
	return dot(a, b)
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// sigmoidPredict evaluates the Platt sigmoid 1/(1+exp(A*f+B)) without overflow
func sigmoidPredict(dec, a, b float64) float64 {
	fApB := dec*a + b
	if fApB >= 0 {
		return math.Exp(-fApB) / (1 + math.Exp(-fApB))
	}
	return 1 / (1 + math.Exp(fApB))
}

// coupleProbabilities turns pairwise probabilities r[i][j] = P(i | i or j) into class
// probabilities (Wu, Lin and Weng 2004, second method).
func coupleProbabilities(r [][]float64) []float64 {
	k := len(r)
	maxIter := max(100, k)
	eps := 0.005 / float64(k)
	p := make([]float64, k)
	qp := make([]float64, k)
	q := make([][]float64, k)
	for t := range q {
		q[t] = make([]float64, k)
	}
	for t := 0; t < k; t++ {
		p[t] = 1 / float64(k)
		for j := 0; j < t; j++ {
			q[t][t] += r[j][t] * r[j][t]
			q[t][j] = q[j][t]
		}
		for j := t + 1; j < k; j++ {
			q[t][t] += r[j][t] * r[j][t]
			q[t][j] = -r[j][t] * r[t][j]
		}
	}
	for iter := 0; iter < maxIter; iter++ {
		pqp := 0.0
		for t := 0; t < k; t++ {
			qp[t] = 0
			for j := 0; j < k; j++ {
				qp[t] += q[t][j] * p[j]
			}
			pqp += p[t] * qp[t]
		}
		maxErr := 0.0
		for t := 0; t < k; t++ {
			maxErr = math.Max(maxErr, math.Abs(qp[t]-pqp))
		}
		if maxErr < eps {
			break
		}
		for t := 0; t < k; t++ {
			diff := (-qp[t] + pqp) / q[t][t]
			p[t] += diff
			pqp = (pqp + diff*(diff*q[t][t]+2*qp[t])) / (1 + diff) / (1 + diff)
			for j := 0; j < k; j++ {
				qp[j] = (qp[j] + diff*q[t][j]) / (1 + diff)
				p[j] /= 1 + diff
			}
		}
	}
	return p
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
