package main

import (
	"bytes"
	"testing"
)

func TestTagsSplitCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default separator", []string{" a ,, b ,c "}, "a\nb\nc\n"},
		{"space separator", []string{"a b  c", "--separator", " "}, "a\nb\nc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTagsSplitCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}
