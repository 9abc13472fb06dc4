package ruleset

import "testing"

// BenchmarkMatchMessage benchmarks the message rule on a typical line.
func BenchmarkMatchMessage(b *testing.B) {
	rs := Default()
	line := "[12:34] <@alice:#chan> hello there everyone"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rs.MatchMessage(line)
	}
}

// BenchmarkMatchAction benchmarks the action rule on a typical line.
func BenchmarkMatchAction(b *testing.B) {
	rs := Default()
	line := "[12:34] * bob waves to everyone"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rs.MatchAction(line)
	}
}

// BenchmarkMatchMessage_NoMatch benchmarks the message rule on a server
// notice that matches nothing.
func BenchmarkMatchMessage_NoMatch(b *testing.B) {
	rs := Default()
	line := "--- Log opened Mon Jan 15 12:00:00 2024"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rs.MatchMessage(line)
	}
}

// BenchmarkNew benchmarks rule set construction.
func BenchmarkNew(b *testing.B) {
	cfg := Config{
		Subpatterns: map[string]string{
			SubNick: `[-\w]+`,
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := New(cfg); err != nil {
			b.Fatal(err)
		}
	}
}
