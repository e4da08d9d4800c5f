package formutil

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestSetBaseAndError(t *testing.T) {
	var b Base
	SetBase(&b, httptest.NewRequest("GET", "/categories/new", nil), "New Category", "/categories")
	if b.Title != "New Category" {
		t.Errorf("Title = %q", b.Title)
	}
	if b.HasError() {
		t.Error("fresh Base should have no error")
	}
	b.SetError("Name <b>is</b> required.")
	if string(b.Error) != "Name &lt;b&gt;is&lt;/b&gt; required." {
		t.Errorf("Error = %q", b.Error)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Engineering", []string{"Engineering"}},
		{"Engineering, Research ,,engineering", []string{"Engineering", "Research"}},
		{"Platform\r\nData\n", []string{"Platform", "Data"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SplitList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
