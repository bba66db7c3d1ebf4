package locator_test

import (
	"fmt"

	"github.com/junioryono/locator"
)

func Example() {
	r := locator.New()
	defer r.Close()

	locator.RegisterFactory(r, func(n int) (int, error) {
		return n * 2, nil
	}, locator.Name("double"))

	six, _, _ := locator.Resolve[int](r, locator.Name("double"), locator.WithParameter(3))
	eight, _, _ := locator.Resolve[int](r, locator.Name("double"), locator.WithParameter(4))
	fmt.Println(six, eight)

	// Output: 6 8
}

func ExampleRegistry_Register() {
	r := locator.New()

	key := r.Register(locator.NewKey("Int", "answer", nil), func(any) (any, error) {
		return 42, nil
	}, locator.Cached, nil)

	v, ok, err := r.Resolve(key, "ignored")
	fmt.Println(key, v, ok, err)

	// Output: Int[name=answer, container=default] 42 true <nil>
}

func ExampleRegistry_Resolve_oneTime() {
	r := locator.New()

	key := r.Register(locator.NewKey("Token", nil, nil), func(any) (any, error) {
		return "secret", nil
	}, locator.OneTime, nil)

	v, ok, _ := r.Resolve(key, nil)
	fmt.Println(v, ok)

	v, ok, _ = r.Resolve(key, nil)
	fmt.Println(v, ok)

	// Output:
	// secret true
	// <nil> false
}

func ExampleRegistry_Filter() {
	r := locator.New()
	locator.RegisterInstance(r, "test-dsn", locator.Name("dsn"), locator.InContainer("test"))
	locator.RegisterInstance(r, "prod-dsn", locator.Name("dsn"), locator.InContainer("prod"))

	for _, key := range r.Filter(locator.InContainer("test")) {
		fmt.Println(key)
	}

	dsn, _, _ := locator.Resolve[string](r, locator.Name("dsn"), locator.InContainer("prod"))
	fmt.Println(dsn)

	// Output:
	// string[name=dsn, container=test]
	// prod-dsn
}

func ExampleNewModule() {
	storage := locator.NewModule("storage",
		locator.AddInstance("postgres://localhost/app", locator.Name("dsn")),
		locator.AddInstance(5, locator.Name("pool_size")),
	)

	r := locator.New()
	if err := r.Install(storage); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(r.Len(), locator.MustResolve[int](r, locator.Name("pool_size")))

	// Output: 2 5
}
