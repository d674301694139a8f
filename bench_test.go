// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfix_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jfix"
)

func benchInput() []byte {
	var sb strings.Builder
	sb.WriteString(`{"records": [`)
	for i := 0; i < 2000; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"id": %d, "name": "record %d", "tags": ["x", "y"], "ok": true}`, i, i)
	}
	sb.WriteString(`]}`)
	return []byte(sb.String())
}

func BenchmarkVerifier(b *testing.B) {
	input := benchInput()
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("StdValid", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if !json.Valid(input) {
				b.Fatal("Input reported invalid")
			}
		}
	})

	b.Run("Verifier", func(b *testing.B) {
		v := jfix.NewVerifier()
		for i := 0; i < b.N; i++ {
			v.Reset()
			for _, c := range input {
				if err := v.Update(c); err != nil {
					b.Fatalf("Update failed: %v", err)
				}
			}
			if v.Status() != jfix.Valid {
				b.Fatal("Input did not verify")
			}
		}
	})

	b.Run("Builder", func(b *testing.B) {
		bld := jfix.NewBuilder(&jfix.BuildOptions{InitialCapacity: len(input)})
		for i := 0; i < b.N; i++ {
			bld.Reset()
			if err := bld.Update(input); err != nil {
				b.Fatalf("Update failed: %v", err)
			}
		}
	})
}
