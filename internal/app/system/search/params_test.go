package search

import (
	"net/http/httptest"
	"testing"
)

func TestParseParams(t *testing.T) {
	allowed := []string{"name", "status"}
	tests := []struct {
		target string
		want   Params
	}{
		{"/inventory/c1", Params{Sort: "name", Order: Asc}},
		{"/inventory/c1?q=dell&sort=status&order=desc", Params{Q: "dell", Sort: "status", Order: Desc}},
		{"/inventory/c1?sort=password&order=sideways", Params{Sort: "name", Order: Asc}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got := ParseParams(httptest.NewRequest("GET", tt.target, nil), allowed, "name")
			if got != tt.want {
				t.Errorf("ParseParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApplyAndNextOrder(t *testing.T) {
	rows := []Record{
		{"name": "Zeta", "dept": "Ops"},
		{"name": "alpha", "dept": "Eng"},
		{"name": "Beta", "dept": "Eng"},
	}
	p := Params{Q: "eng", Sort: "name", Order: Asc}
	got := Apply(rows, p, []string{"dept"})
	if len(got) != 2 || got[0]["name"] != "alpha" || got[1]["name"] != "Beta" {
		t.Errorf("Apply() = %v", got)
	}

	if p.NextOrder("name") != Desc {
		t.Error("active ascending column should flip to desc")
	}
	if p.NextOrder("dept") != Asc {
		t.Error("other column should start asc")
	}
}
