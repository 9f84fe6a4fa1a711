package natsadapter

import "testing"

func TestRouteSubject(t *testing.T) {
	tests := []struct {
		day     string
		want    string
		wantErr bool
	}{
		{"", "campus.route.>", false},
		{"  ", "campus.route.>", false},
		{"Monday", "campus.route.planned.monday", false},
		{"SATURDAY", "campus.route.planned.saturday", false},
		{"someday", "", true},
	}
	for _, tt := range tests {
		got, err := RouteSubject(tt.day)
		if (err != nil) != tt.wantErr {
			t.Errorf("RouteSubject(%q): unexpected error state: %v", tt.day, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RouteSubject(%q) = %q, want %q", tt.day, got, tt.want)
		}
	}
}
