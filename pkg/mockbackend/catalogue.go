package mockbackend

import (
	"sort"
	"sync"

	"github.com/rhuss/codepad/pkg/api"
)

// Catalogue is an in-memory, read-mostly problem set.
type Catalogue struct {
	mu       sync.RWMutex
	problems map[int]api.Problem
	cases    map[int][]api.TestCase
}

// NewCatalogue creates an empty catalogue.
func NewCatalogue() *Catalogue {
	return &Catalogue{
		problems: make(map[int]api.Problem),
		cases:    make(map[int][]api.TestCase),
	}
}

// Add stores a problem and its test cases, replacing any with the same ID.
// Test case IDs and problem IDs on the cases are filled in.
func (c *Catalogue) Add(p api.Problem, cases []api.TestCase) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]api.TestCase, len(cases))
	for i, tc := range cases {
		tc.ProblemID = p.ID
		if tc.ID == 0 {
			tc.ID = i + 1
		}
		stored[i] = tc
	}
	c.problems[p.ID] = p
	c.cases[p.ID] = stored
}

// Problems returns all problems ordered by ID.
func (c *Catalogue) Problems() []api.Problem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]api.Problem, 0, len(c.problems))
	for _, p := range c.problems {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Problem returns a problem with its sample cases only.
func (c *Catalogue) Problem(id int) (api.ProblemDetail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.problems[id]
	if !ok {
		return api.ProblemDetail{}, false
	}
	samples := []api.TestCase{}
	for _, tc := range c.cases[id] {
		if tc.IsSample {
			samples = append(samples, tc)
		}
	}
	return api.ProblemDetail{Problem: p, SampleCases: samples}, true
}

// TestCases returns every test case of a problem, hidden ones included.
func (c *Catalogue) TestCases(id int) []api.TestCase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]api.TestCase(nil), c.cases[id]...)
}

// SampleCatalogue returns the built-in problems: Two Sum and Echo.
func SampleCatalogue() *Catalogue {
	c := NewCatalogue()
	c.Add(api.Problem{
		ID:    1,
		Title: "Two Sum",
		Description: "Given an array of integers nums and an integer target, return indices " +
			"of the two numbers such that they add up to target.\n\n" +
			"You may assume that each input would have exactly one solution, and you may " +
			"not use the same element twice.",
		InputFormat:  "First line: n (array size) and target\nSecond line: n space-separated integers",
		OutputFormat: "Two space-separated integers representing the indices (0-indexed)",
		Constraints:  "2 <= n <= 10^4\n-10^9 <= nums[i] <= 10^9\n-10^9 <= target <= 10^9",
		TimeLimitMs:  1000,
		MemoryLimit:  256,
		Difficulty:   "Easy",
		CreatedAt:    "2024-01-01 00:00:00",
	}, []api.TestCase{
		{InputData: "4 9\n2 7 11 15", ExpectedOutput: "0 1", IsSample: true},
		{InputData: "3 6\n3 2 4", ExpectedOutput: "1 2"},
		{InputData: "2 6\n3 3", ExpectedOutput: "0 1"},
		{InputData: "5 8\n1 2 3 4 5", ExpectedOutput: "2 4"},
	})
	c.Add(api.Problem{
		ID:           2,
		Title:        "Echo",
		Description:  "Read one line from standard input and print it unchanged.",
		InputFormat:  "A single line of text",
		OutputFormat: "The same line",
		Constraints:  "1 <= length <= 1000",
		TimeLimitMs:  1000,
		MemoryLimit:  64,
		Difficulty:   "Easy",
		CreatedAt:    "2024-01-02 00:00:00",
	}, []api.TestCase{
		{InputData: "hello", ExpectedOutput: "hello", IsSample: true},
		{InputData: "codepad", ExpectedOutput: "codepad"},
		{InputData: "42", ExpectedOutput: "42"},
	})
	return c
}
