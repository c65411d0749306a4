package wipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportWith(succeeded, failed int) *Report {
	r := NewReport("test-run")
	for i := 0; i < succeeded; i++ {
		r.Add(FileResult{Path: "ok.jpg", Outcome: Ok()})
	}
	for i := 0; i < failed; i++ {
		r.Add(FileResult{Path: "bad.jpg", Outcome: Failed("unknown file type")})
	}
	return r
}

func TestReportCounters(t *testing.T) {
	t.Parallel()

	r := NewReport("run-1")
	r.Add(FileResult{Path: "a.jpg", Outcome: Ok()})
	r.Add(FileResult{Path: "b.jpg", Outcome: Failed("file does not exist")})
	r.Add(FileResult{Path: "c.jpg", Outcome: Ok()})

	assert.Equal(t, 2, r.Succeeded)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 3, r.Total())
	assert.Len(t, r.Results, r.Total())
}

func TestReportVerdict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		succeeded int
		failed    int
		want      Verdict
	}{
		{"AllSucceeded", 3, 0, VerdictAllSucceeded},
		{"SingleSuccess", 1, 0, VerdictAllSucceeded},
		{"Partial", 2, 1, VerdictPartial},
		{"AllFailed", 0, 3, VerdictAllFailed},
		{"Empty", 0, 0, VerdictAllFailed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reportWith(tt.succeeded, tt.failed).Verdict())
		})
	}
}

func TestReportSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		succeeded int
		failed    int
		want      string
	}{
		{"SingleFile", 1, 0, "Metadata removed from 1 file"},
		{"AllFiles", 3, 0, "Metadata removed from all 3 files"},
		{"Partial", 2, 1, "Metadata removed from 2 of 3 files (1 failed)"},
		{"AllFailed", 0, 2, "Failed to remove metadata from all 2 files"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reportWith(tt.succeeded, tt.failed).Summary())
		})
	}
}

func TestReportFailedResults(t *testing.T) {
	t.Parallel()

	r := NewReport("run-2")
	r.Add(FileResult{Path: "a.jpg", Outcome: Ok()})
	r.Add(FileResult{Path: "b.jpg", Outcome: Failed("is a directory")})
	r.Add(FileResult{Path: "c.jpg", Outcome: Failed("file does not exist")})

	failed := r.FailedResults()
	require.Len(t, failed, 2)
	assert.Equal(t, "b.jpg", failed[0].Path)
	assert.Equal(t, "c.jpg", failed[1].Path)

	assert.Empty(t, reportWith(2, 0).FailedResults())
}
