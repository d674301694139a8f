// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfix_test

import (
	"fmt"
	"log"

	"github.com/creachadair/jfix"
)

func ExampleVerifier() {
	v := jfix.NewVerifier()
	for _, c := range []byte(`{ "name": "annie", "value": 1 }`) {
		if err := v.Update(c); err != nil {
			log.Fatalf("Invalid input: %v", err)
		}
	}
	fmt.Println(v.Status())
	// Output: valid
}

func ExampleBuilder() {
	b := jfix.NewBuilder(nil)
	b.UpdateString(`{"name": "annie", "age": 14, "parents": {"mother": null, "bro`)
	b.UpdateString(`ken`)

	s, err := b.CompletedString()
	if err != nil {
		log.Fatalf("Completion failed: %v", err)
	}
	fmt.Println(s)
	// Output: {"name": "annie", "age": 14, "parents": {"mother": null}}
}

func ExampleVerifier_Complete() {
	v := jfix.NewVerifier()
	for _, c := range []byte(`{"a":1,"b":{"c":2`) {
		if err := v.Update(c); err != nil {
			log.Fatalf("Invalid input: %v", err)
		}
	}
	n, closers := v.Complete()
	fmt.Printf("%d bytes of valid prefix, closed by: ", n)
	for c := range closers {
		fmt.Printf("%c", c)
	}
	fmt.Println()
	// Output: 17 bytes of valid prefix, closed by: }}
}
