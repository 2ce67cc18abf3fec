package main

import (
	"flag"
	"testing"
)

func TestBundleStripModules(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"default inlines", nil, true},
		{"explicit on", []string{"-strip-modules"}, true},
		{"explicit off", []string{"-strip-modules=false"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("jspress", flag.ContinueOnError)
			strip := fs.Bool("strip-modules", false, "")
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			if got := bundleStripModules(fs, *strip); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
