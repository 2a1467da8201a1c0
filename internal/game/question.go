package game

import (
	"fmt"
	"math/rand"
)

// Question is one arithmetic round. Options always holds four distinct
// positive values, shuffled, with exactly one equal to Answer.
type Question struct {
	Prompt  string
	Answer  int
	Options [4]int
}

const optionCount = 4

// GenerateQuestion builds a question for the given grade. Difficulty tiers:
// grades 1-3 add/subtract in [1,20], grades 4-6 multiply/divide in [1,12]
// (division is built from divisor x quotient so it always divides evenly),
// grade 7 and up mixes add/subtract/multiply over a larger range. An active
// premium shrinks operand ranges by 0.7 without changing the operation set.
// The RNG is injected so generation is reproducible under test.
func GenerateQuestion(rng *rand.Rand, grade int, premiumActive bool) Question {
	var prompt string
	var answer int

	switch {
	case grade <= 3:
		limit := premiumScale(20, premiumActive)
		a := rng.Intn(limit) + 1
		b := rng.Intn(limit) + 1
		if rng.Intn(2) == 0 {
			answer = a + b
			prompt = fmt.Sprintf("%d + %d = ?", a, b)
		} else {
			// Equal operands would answer 0, which the all-positive
			// option set cannot represent.
			for a == b {
				b = rng.Intn(limit) + 1
			}
			if a < b {
				a, b = b, a
			}
			answer = a - b
			prompt = fmt.Sprintf("%d - %d = ?", a, b)
		}
	case grade <= 6:
		limit := premiumScale(12, premiumActive)
		a := rng.Intn(limit) + 1
		b := rng.Intn(limit) + 1
		if rng.Intn(2) == 0 {
			answer = a * b
			prompt = fmt.Sprintf("%d × %d = ?", a, b)
		} else {
			answer = a
			prompt = fmt.Sprintf("%d ÷ %d = ?", a*b, b)
		}
	default:
		hi := premiumScale(100, premiumActive)
		lo := premiumScale(10, premiumActive)
		a := rng.Intn(hi) + lo
		b := rng.Intn(premiumScale(10, premiumActive)) + 2
		switch rng.Intn(3) {
		case 0:
			answer = a + b
			prompt = fmt.Sprintf("%d + %d = ?", a, b)
		case 1:
			for b >= a {
				b = rng.Intn(premiumScale(10, premiumActive)) + 2
			}
			answer = a - b
			prompt = fmt.Sprintf("%d - %d = ?", a, b)
		default:
			answer = a * b
			prompt = fmt.Sprintf("%d × %d = ?", a, b)
		}
	}

	return Question{
		Prompt:  prompt,
		Answer:  answer,
		Options: buildOptions(rng, answer),
	}
}

// premiumScale shrinks an operand bound when premium is active.
func premiumScale(n int, premiumActive bool) int {
	if !premiumActive {
		return n
	}
	scaled := int(float64(n) * 0.7)
	if scaled < 1 {
		return 1
	}
	return scaled
}

// buildOptions surrounds the answer with three distinct positive distractors
// drawn from answer + [-5,5), then shuffles. The draw window always contains
// at least three valid distractors for any positive answer, so the loop
// terminates.
func buildOptions(rng *rand.Rand, answer int) [4]int {
	picked := map[int]bool{answer: true}
	opts := []int{answer}
	for len(opts) < optionCount {
		candidate := answer + rng.Intn(10) - 5
		if candidate <= 0 || picked[candidate] {
			continue
		}
		picked[candidate] = true
		opts = append(opts, candidate)
	}
	rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	var out [4]int
	copy(out[:], opts)
	return out
}

// Contains reports whether v is one of the question's options.
func (q Question) Contains(v int) bool {
	for _, o := range q.Options {
		if o == v {
			return true
		}
	}
	return false
}
