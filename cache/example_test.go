package cache_test

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/rxcache/cache"
	"github.com/jonwraymond/rxcache/pattern"
)

func ExampleNew() {
	c, err := cache.New(2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_, _ = c.Compile("[01]2")
	_, _ = c.Compile("[21]0")
	_, _ = c.Compile("[21]3")

	fmt.Println("Len:", c.Len())
	fmt.Println("Keys:", c.Keys())
	// Output:
	// Len: 2
	// Keys: [[21]0 [21]3]
}

func ExamplePatternCache_Configure() {
	c, _ := cache.New(8)

	re, err := c.Configure(`hello \w+`, func(o *pattern.Options) {
		o.CaseInsensitive = true
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(re.FindString("HELLO World"))
	// Output:
	// HELLO World
}

func ExamplePatternCache_Compile_error() {
	c, _ := cache.New(8)

	_, err := c.Compile("(ab")
	var compileErr *cache.CompileError
	fmt.Println(errors.As(err, &compileErr), errors.Is(err, pattern.ErrSyntax))
	fmt.Println("Len:", c.Len())
	// Output:
	// true true
	// Len: 0
}

func ExamplePatternCache_Save() {
	c, _ := cache.New(8)

	prebuilt := pattern.MustCompile(`\d{4}`)
	_, _ = c.Save(prebuilt)

	re, _ := c.Compile(`\d{4}`)
	fmt.Println(re == prebuilt)
	// Output:
	// true
}

func ExampleShared_Handle() {
	s, _ := cache.NewShared(16)

	h, err := s.Handle(`(\w+)@(\w+)\.com`)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(h.ReplaceAllString("ann@example.com", "$2:$1"))
	// Output:
	// example:ann
}
