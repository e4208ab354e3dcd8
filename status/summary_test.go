package status

import (
	"encoding/json"
	"testing"
)

func up(name string, required bool) CheckResult {
	return CheckResult{
		Service:   Descriptor{Name: name, URL: "http://" + name + ":8000", Required: required},
		Reachable: true,
	}
}

func down(name string, required bool) CheckResult {
	return CheckResult{
		Service: Descriptor{Name: name, URL: "http://" + name + ":8000", Required: required},
		Error:   "timeout",
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		results []CheckResult
		want    Summary
	}{
		{
			name: "empty",
			want: Summary{},
		},
		{
			name:    "all required up",
			results: []CheckResult{up("router", true), up("db", true)},
			want:    Summary{Required: Tally{OK: 2, Total: 2}},
		},
		{
			name:    "mixed classes",
			results: []CheckResult{up("router", true), down("db", true), up("cache", false)},
			want: Summary{
				Required: Tally{OK: 1, Total: 2},
				Optional: Tally{OK: 1, Total: 1},
			},
		},
		{
			name:    "all down",
			results: []CheckResult{down("router", true), down("cache", false)},
			want: Summary{
				Required: Tally{OK: 0, Total: 1},
				Optional: Tally{OK: 0, Total: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.results); got != tt.want {
				t.Errorf("Summarize() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummaryDegraded(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    bool
	}{
		{
			name:    "all required up",
			summary: Summary{Required: Tally{OK: 2, Total: 2}},
			want:    false,
		},
		{
			name:    "required missing",
			summary: Summary{Required: Tally{OK: 1, Total: 2}},
			want:    true,
		},
		{
			name:    "optional down does not degrade",
			summary: Summary{Required: Tally{OK: 1, Total: 1}, Optional: Tally{OK: 0, Total: 3}},
			want:    false,
		},
		{
			name:    "empty catalog",
			summary: Summary{},
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.Degraded(); got != tt.want {
				t.Errorf("Degraded() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummaryJSONShape(t *testing.T) {
	s := Summarize([]CheckResult{up("router", true), down("db", true), down("cache", false)})

	raw, err := json.Marshal(s)
	if nil != err {
		t.Fatalf("unable to marshal summary: %v", err)
	}

	want := `{"required":{"ok":1,"total":2},"optional":{"ok":0,"total":1}}`
	if string(raw) != want {
		t.Errorf("summary shape got = %s, want %s", raw, want)
	}
}
