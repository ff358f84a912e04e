package domain_test

import (
	"testing"

	"go.trai.ch/weft/internal/core/domain"
)

func TestRegion_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Region
		want bool
	}{
		{"identical", domain.Region{Start: 0, End: 64}, domain.Region{Start: 0, End: 64}, true},
		{"partial", domain.Region{Start: 0, End: 64}, domain.Region{Start: 32, End: 96}, true},
		{"contained", domain.Region{Start: 0, End: 100}, domain.Region{Start: 10, End: 20}, true},
		{"adjacent", domain.Region{Start: 0, End: 64}, domain.Region{Start: 64, End: 128}, false},
		{"disjoint", domain.Region{Start: 0, End: 64}, domain.Region{Start: 128, End: 192}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps is not symmetric")
			}
		})
	}
}

func TestRegion_Intersect(t *testing.T) {
	a := domain.Region{Start: 0, End: 100}
	b := domain.Region{Start: 50, End: 150}

	got := a.Intersect(b)
	if want := (domain.Region{Start: 50, End: 100}); got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	c := domain.Region{Start: 200, End: 300}
	if !a.Intersect(c).Empty() {
		t.Error("disjoint intersect should be empty")
	}
}

func TestAccessMode_Properties(t *testing.T) {
	tests := []struct {
		mode                  domain.AccessMode
		reads, writes, pooled bool
	}{
		{domain.AccessInput, true, false, false},
		{domain.AccessOutput, false, true, false},
		{domain.AccessInout, true, true, false},
		{domain.AccessConcurrent, true, true, true},
		{domain.AccessCommutative, true, true, true},
		{domain.AccessAny, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if tt.mode.Reads() != tt.reads {
				t.Errorf("Reads = %v, want %v", tt.mode.Reads(), tt.reads)
			}
			if tt.mode.Writes() != tt.writes {
				t.Errorf("Writes = %v, want %v", tt.mode.Writes(), tt.writes)
			}
			if tt.mode.Pooled() != tt.pooled {
				t.Errorf("Pooled = %v, want %v", tt.mode.Pooled(), tt.pooled)
			}
		})
	}
}

func TestAccess_Validate(t *testing.T) {
	if err := domain.NewAccess(0x1000, 64, domain.AccessInput).Validate(); err != nil {
		t.Errorf("valid access rejected: %v", err)
	}
	if err := domain.NewAccess(0, 64, domain.AccessInput).Validate(); err == nil {
		t.Error("null base with non-zero length must be invalid")
	}
	if err := domain.NewAccess(0x1000, 0, domain.AccessInput).Validate(); err == nil {
		t.Error("zero-length access must be invalid")
	}
}

func TestEdge_Classification(t *testing.T) {
	e := domain.Edge{Kind: domain.EdgeDependency, Dep: domain.DepTrue}
	if !e.IsTrueDependency() || e.IsOutputDependency() {
		t.Error("True edge misclassified")
	}

	e = domain.Edge{Kind: domain.EdgeDependency, Dep: domain.DepOutCommutative}
	if !e.IsOutputDependency() || e.IsTrueDependency() {
		t.Error("OutCommutative edge misclassified")
	}

	e = domain.Edge{Kind: domain.EdgeSynchronization, Dep: domain.DepNull}
	if e.IsDependency() || e.IsTrueDependency() {
		t.Error("synchronization edge misclassified as dependency")
	}
}

func TestDumpVocabulary(t *testing.T) {
	// The serialized names feed the downstream graph tooling and must not
	// drift.
	if domain.DepTrue.String() != "True" ||
		domain.DepAnti.String() != "Anti" ||
		domain.DepOutput.String() != "Output" ||
		domain.DepInConcurrent.String() != "InConcurrent" ||
		domain.DepOutCommutative.String() != "OutCommutative" {
		t.Error("dependency type names drifted from the dump format")
	}
	if domain.EdgeNesting.String() != "Nesting" ||
		domain.EdgeSynchronization.String() != "Synchronization" ||
		domain.EdgeDependency.String() != "Dependency" {
		t.Error("edge kind names drifted from the dump format")
	}
	if domain.NodeRoot.String() != "Root" ||
		domain.NodeTaskwait.String() != "Taskwait" ||
		domain.NodeCommutative.String() != "Commutative" {
		t.Error("node type names drifted from the dump format")
	}
}
