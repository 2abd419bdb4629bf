package classifier

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// node представляет узел дерева решений. Лист хранит распределение классов.
type node struct {
	Feature   int       `json:"f"`
	Threshold float64   `json:"t"`
	Left      *node     `json:"l,omitempty"`
	Right     *node     `json:"r,omitempty"`
	Dist      []float64 `json:"d,omitempty"`
}

func (n *node) leaf() bool {
	return n.Left == nil || n.Right == nil
}

// distribution спускается по дереву до листа.
func (n *node) distribution(x []float64) []float64 {
	cur := n
	for !cur.leaf() {
		if x[cur.Feature] <= cur.Threshold {
			cur = cur.Left
		} else {
			cur = cur.Right
		}
	}
	return cur.Dist
}

// validate проверяет дерево, прочитанное извне: индексы признаков внутренних узлов
// и длину распределений в листьях.
func (n *node) validate(classes int) error {
	if n == nil {
		return fmt.Errorf("missing node")
	}
	if n.leaf() {
		if len(n.Dist) != classes {
			return fmt.Errorf("leaf has %d class probabilities, want %d", len(n.Dist), classes)
		}
		return nil
	}
	if n.Feature < 0 || n.Feature >= NumFeatures {
		return fmt.Errorf("feature index %d out of range [0, %d)", n.Feature, NumFeatures)
	}
	if math.IsNaN(n.Threshold) {
		return fmt.Errorf("threshold is NaN")
	}
	if err := n.Left.validate(classes); err != nil {
		return err
	}
	return n.Right.validate(classes)
}

type treeBuilder struct {
	x           [][]float64
	y           []int
	classes     int
	maxFeatures int
	rng         *rand.Rand
}

func (b *treeBuilder) build(rows []int) *node {
	counts := b.countClasses(rows)
	if len(rows) < 2 || pure(counts) {
		return b.leafNode(counts, len(rows))
	}

	feature, threshold, ok := b.bestSplit(rows, counts)
	if !ok {
		return b.leafNode(counts, len(rows))
	}

	var left, right []int
	for _, r := range rows {
		if b.x[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	return &node{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(left),
		Right:     b.build(right),
	}
}

// bestSplit ищет разбиение с минимальной взвешенной примесью Джини.
// Просматривается не меньше maxFeatures случайных признаков; поиск продолжается,
// пока не найдено хотя бы одно допустимое разбиение.
func (b *treeBuilder) bestSplit(rows []int, total []int) (int, float64, bool) {
	features := b.rng.Perm(len(b.x[0]))

	bestFeature, bestThreshold := -1, 0.0
	bestScore := gini(total, len(rows))
	found := false

	sorted := make([]int, len(rows))
	for visited, f := range features {
		if visited >= b.maxFeatures && found {
			break
		}

		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool { return b.x[sorted[i]][f] < b.x[sorted[j]][f] })

		left := make([]int, b.classes)
		right := append([]int(nil), total...)
		for i := 0; i < len(sorted)-1; i++ {
			c := b.y[sorted[i]]
			left[c]++
			right[c]--

			cur, next := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if cur == next {
				continue
			}
			nl, nr := i+1, len(sorted)-i-1
			score := (float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)) / float64(len(sorted))
			if score < bestScore || !found {
				bestScore = score
				bestFeature = f
				bestThreshold = cur + (next-cur)/2
				if bestThreshold >= next {
					bestThreshold = cur
				}
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func (b *treeBuilder) countClasses(rows []int) []int {
	counts := make([]int, b.classes)
	for _, r := range rows {
		counts[b.y[r]]++
	}
	return counts
}

func (b *treeBuilder) leafNode(counts []int, n int) *node {
	dist := make([]float64, len(counts))
	if n == 0 {
		return &node{Dist: dist}
	}
	for i, c := range counts {
		dist[i] = float64(c) / float64(n)
	}
	return &node{Dist: dist}
}

func pure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		g -= p * p
	}
	return g
}
