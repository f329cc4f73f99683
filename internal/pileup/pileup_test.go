package pileup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writePileup(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pileup")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func TestReader_TwoSamples(t *testing.T) {
	path := writePileup(t,
		"2L\t100\tA\t3\t..,\tIII\t2\t.T\tII\n"+
			"2L\t101\tC\t1\t,\tI\t0\t*\t*\n")

	r, err := NewReader(path, nil)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	rec, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record, got nil")
	}
	if rec.Chrom != "2L" || rec.Pos != 100 || rec.Ref != 'A' {
		t.Errorf("unexpected record: %+v", rec)
	}
	if len(rec.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(rec.Samples))
	}
	if rec.Samples[0].Depth != 3 || rec.Samples[0].Bases != "..," {
		t.Errorf("unexpected sample 0: %+v", rec.Samples[0])
	}

	rec, err = r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rec.Pos != 101 {
		t.Errorf("expected pos 101, got %d", rec.Pos)
	}

	rec, err = r.Read()
	if err != nil {
		t.Fatalf("Read at EOF: %v", err)
	}
	if rec != nil {
		t.Error("expected no more records")
	}
}

func TestReader_Mask(t *testing.T) {
	path := writePileup(t, "2L\t100\tA\t3\t..,\tIII\t2\t.T\tII\t1\tG\tI\n")

	r, err := NewReader(path, []bool{true, false, true})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	rec, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(rec.Samples) != 2 {
		t.Fatalf("expected 2 retained samples, got %d", len(rec.Samples))
	}
	if rec.Samples[0].Bases != "..," || rec.Samples[1].Bases != "G" {
		t.Errorf("mask retained wrong samples: %+v", rec.Samples)
	}
}

func TestReader_MaskLengthMismatch(t *testing.T) {
	path := writePileup(t, "2L\t100\tA\t3\t..,\tIII\n")

	r, err := NewReader(path, []bool{true, false})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	if _, err := r.Read(); err == nil {
		t.Error("expected error for mask length mismatch")
	}
}

func TestReader_MalformedLine(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few columns", "2L\t100\tA\t3\n"},
		{"bad position", "2L\tx\tA\t3\t.\tI\n"},
		{"bad depth", "2L\t100\tA\tx\t.\tI\n"},
		{"long ref", "2L\t100\tAC\t3\t.\tI\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(writePileup(t, tt.line), nil)
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			defer r.Close()
			if _, err := r.Read(); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestCounts(t *testing.T) {
	tests := []struct {
		name  string
		ref   byte
		bases string
		want  string // compact spec: A,C,G,T,N,Del
	}{
		{"matches", 'A', "..,,", "4,0,0,0,0,0"},
		{"mismatches", 'A', ".TtG", "1,0,1,2,0,0"},
		{"deletion", 'C', ".*.", "0,2,0,0,0,1"},
		{"read start with qual", 'G', "^I..", "0,0,2,0,0,0"},
		{"read end", 'G', ".$.", "0,0,2,0,0,0"},
		{"insertion skipped", 'A', ".+2AG.", "2,0,0,0,0,0"},
		{"deletion skipped", 'A', ".-10AAAAAAAAAA.", "2,0,0,0,0,0"},
		{"unknown as N", 'A', ".K", "1,0,0,0,1,0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Counts(tt.ref, tt.bases)
			got := fmt.Sprintf("%d,%d,%d,%d,%d,%d", c.A, c.C, c.G, c.T, c.N, c.Del)
			if got != tt.want {
				t.Errorf("Counts(%q, %q) = %s, want %s", tt.ref, tt.bases, got, tt.want)
			}
		})
	}
}

func TestRecord_Variant(t *testing.T) {
	rec := &Record{
		Chrom: "2L",
		Pos:   100,
		Ref:   'A',
		Samples: []Sample{
			{Depth: 3, Bases: "..T"},
			{Depth: 2, Bases: "GG"},
		},
	}

	v := rec.Variant()
	if v.Chrom != "2L" || v.Pos != 100 || v.Ref != 'A' {
		t.Errorf("unexpected variant: %+v", v)
	}
	if len(v.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(v.Samples))
	}
	if v.Samples[0].A != 2 || v.Samples[0].T != 1 {
		t.Errorf("unexpected sample 0 counts: %+v", v.Samples[0])
	}
	if v.Samples[1].G != 2 {
		t.Errorf("unexpected sample 1 counts: %+v", v.Samples[1])
	}
}
