package handler

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{``, 0},
		{`null`, 0},
		{`500`, 500},
		{`"200"`, 200},
		{`" 75 "`, 75},
		{`100.5`, 100},
		{`99.99`, 99},
		{`1e3`, 1000},
		{`-2.7`, -2},
		{`"100.5"`, 100},
		{`9223372036854775807`, 9223372036854775807},
	}
	for _, tc := range cases {
		got, err := parseAmount(json.RawMessage(tc.raw))
		if err != nil {
			t.Fatalf("parseAmount(%s): expected no error, got %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parseAmount(%s): expected %d, got %d", tc.raw, tc.want, got)
		}
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, raw := range []string{`"ten"`, `"1.5.2"`, `true`, `{}`, `1e30`, `9223372036854775808`} {
		if _, err := parseAmount(json.RawMessage(raw)); err == nil {
			t.Fatalf("parseAmount(%s): expected error", raw)
		}
	}
}
