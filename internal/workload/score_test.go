package workload

import "testing"

func TestScoreWorkloadComponents(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		name           string
		tickets, tasks int
		weight         int
		hours          float64
		want           int
	}{
		{"zero inputs", 0, 0, 0, 0, 0},
		{"single ticket", 1, 0, 1, 0, 4},                // items 2 + sla 1.5 -> round(3.5)=4
		{"item cap", 100, 100, 0, 0, 50},                // item score capped at 50
		{"sla cap", 0, 0, 1000, 0, 30},                  // sla score capped at 30
		{"hours cap", 0, 0, 0, 1000, 20},                // hours score capped at 20
		{"all caps", 100, 0, 1000, 1000, 100},           // 50+30+20
		{"spec scenario one", 1, 1, 8, 32, 32},          // 4+12+16
		{"spec scenario twelve tickets", 12, 0, 12, 0, 42}, // 24+18
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreWorkload(tc.tickets, tc.tasks, tc.weight, tc.hours, policy)
			if got != tc.want {
				t.Fatalf("score = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScoreWorkloadBounded(t *testing.T) {
	policy := DefaultPolicy()
	for _, tickets := range []int{0, 1, 10, 1000} {
		for _, weight := range []int{0, 5, 500} {
			for _, hours := range []float64{0, 12, 9999} {
				score := ScoreWorkload(tickets, 0, weight, hours, policy)
				if score < 0 || score > 100 {
					t.Fatalf("score %d out of [0,100] for tickets=%d weight=%d hours=%v", score, tickets, weight, hours)
				}
			}
		}
	}
}

func TestScoreWorkloadMonotonic(t *testing.T) {
	policy := DefaultPolicy()

	prev := -1
	for items := 0; items <= 60; items++ {
		score := ScoreWorkload(items, 0, 10, 10, policy)
		if score < prev {
			t.Fatalf("score decreased at %d items: %d -> %d", items, prev, score)
		}
		prev = score
	}

	prev = -1
	for weight := 0; weight <= 40; weight++ {
		score := ScoreWorkload(3, 3, weight, 10, policy)
		if score < prev {
			t.Fatalf("score decreased at weight %d: %d -> %d", weight, prev, score)
		}
		prev = score
	}

	prev = -1
	for hours := 0.0; hours <= 60; hours++ {
		score := ScoreWorkload(3, 3, 10, hours, policy)
		if score < prev {
			t.Fatalf("score decreased at hours %v: %d -> %d", hours, prev, score)
		}
		prev = score
	}
}

func TestLevelForScoreThresholds(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		score int
		want  Level
	}{
		{0, LevelLow},
		{29, LevelLow},
		{30, LevelMedium},
		{59, LevelMedium},
		{60, LevelHigh},
		{79, LevelHigh},
		{80, LevelOverloaded},
		{100, LevelOverloaded},
	}
	for _, tc := range cases {
		if got := LevelForScore(tc.score, policy); got != tc.want {
			t.Fatalf("level for %d = %q, want %q", tc.score, got, tc.want)
		}
	}
}
