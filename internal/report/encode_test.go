// SPDX-License-Identifier: MPL-2.0

package report

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

type opaque struct{ name string }

func (o opaque) String() string { return "<" + o.name + ">" }

func TestMarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "null", in: nil, want: `null`},
		{name: "bool", in: true, want: `true`},
		{name: "int", in: int64(-42), want: `-42`},
		{name: "big int", in: json.Number("123456789012345678901234567890"), want: `123456789012345678901234567890`},
		{name: "float", in: 1.5, want: `1.5`},
		{name: "integral float", in: 3.0, want: `3.0`},
		{name: "small float", in: 1.5e-7, want: `1.5e-07`},
		{name: "large float", in: 1e16, want: `1e+16`},
		{name: "string", in: "a\"b\\c\n", want: `"a\"b\\c\n"`},
		{name: "html is not escaped", in: "<a href='x'>&</a>", want: `"<a href='x'>&</a>"`},
		{name: "non-ascii escaped", in: "café", want: `"caf\u00e9"`},
		{name: "astral escaped", in: "😀", want: `"\ud83d\ude00"`},
		{name: "control escaped", in: "\x01", want: `"\u0001"`},
		{name: "list", in: []any{int64(1), "two", nil}, want: `[1, "two", null]`},
		{name: "empty list", in: []any{}, want: `[]`},
		{name: "ordered map", in: OrderedMap{{Key: "b", Value: int64(1)}, {Key: "a", Value: int64(2)}}, want: `{"b": 1, "a": 2}`},
		{name: "scalar keys", in: OrderedMap{
			{Key: int64(1), Value: "x"},
			{Key: true, Value: "y"},
			{Key: nil, Value: "z"},
			{Key: 2.5, Value: "w"},
		}, want: `{"1": "x", "true": "y", "null": "z", "2.5": "w"}`},
		{name: "go map sorted", in: map[string]any{"z": int64(1), "a": int64(2)}, want: `{"a": 2, "z": 1}`},
		{name: "opaque leaf", in: OrderedMap{{Key: "sheet", Value: opaque{"Sheet1"}}}, want: `{"sheet": "<Sheet1>"}`},
		{name: "time leaf", in: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), want: `"2024-03-01 09:30:00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMarshal_Unencodable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
	}{
		{name: "nan", in: math.NaN()},
		{name: "inf in list", in: []any{math.Inf(1)}},
		{name: "list key", in: OrderedMap{{Key: []any{int64(1)}, Value: int64(1)}}},
		{name: "nested bad key", in: OrderedMap{{Key: "ok", Value: OrderedMap{{Key: opaque{"k"}, Value: nil}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Marshal(tt.in)
			if !errors.Is(err, ErrUnencodable) {
				t.Errorf("expected ErrUnencodable, got %v", err)
			}
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	in := OrderedMap{
		{Key: "name", Value: "Budget.xlsx"},
		{Key: "rows", Value: []any{[]any{int64(1), 2.5, "é"}, []any{nil, true, ""}}},
		{Key: "nested", Value: OrderedMap{{Key: "k", Value: "v"}}},
	}

	data, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output %s is not valid JSON: %v", data, err)
	}

	rows := got["rows"].([]any)
	first := rows[0].([]any)
	if first[0] != 1.0 || first[1] != 2.5 || first[2] != "é" {
		t.Errorf("rows[0] = %v", first)
	}
	if got["nested"].(map[string]any)["k"] != "v" {
		t.Errorf("nested = %v", got["nested"])
	}
}

func TestMarshalIndent(t *testing.T) {
	t.Parallel()

	in := OrderedMap{
		{Key: "open", Value: []any{OrderedMap{{Key: "Name", Value: "A"}, {Key: "FullName", Value: nil}}}},
		{Key: "none", Value: []any{}},
	}

	got, err := MarshalIndent(in, "  ")
	if err != nil {
		t.Fatal(err)
	}

	want := `{
  "open": [
    {
      "Name": "A",
      "FullName": null
    }
  ],
  "none": []
}`
	if string(got) != want {
		t.Errorf("MarshalIndent() =\n%s\nwant\n%s", got, want)
	}
}
