package locator

// ModuleOption represents a registration action within a module.
type ModuleOption func(*Registry) error

// NewModule creates a new module with the given name and builders.
// Modules are a way to group related registrations together.
//
// Example:
//
//	var StorageModule = locator.NewModule("storage",
//	    locator.AddInstance(cfg),
//	    locator.AddFunc(NewDatabaseConnection, locator.WithLifecycle(locator.Cached)),
//	    locator.AddFactory(NewUserRepository),
//	)
//
//	var AppModule = locator.NewModule("app",
//	    StorageModule,
//	    locator.AddFunc(NewMailer, locator.Name("smtp"), locator.InContainer("prod")),
//	)
//
//	if err := r.Install(AppModule); err != nil {
//	    log.Fatal(err)
//	}
func NewModule(name string, builders ...ModuleOption) ModuleOption {
	return func(r *Registry) error {
		// Execute all builders in order
		for _, builder := range builders {
			if builder == nil {
				continue
			}

			if err := builder(r); err != nil {
				return ModuleError{Module: name, Cause: err}
			}
		}

		return nil
	}
}

// Install applies modules to the registry in order, stopping at the first
// error. Registrations made before the failure are kept.
func (r *Registry) Install(modules ...ModuleOption) error {
	for _, module := range modules {
		if module == nil {
			continue
		}

		if err := module(r); err != nil {
			return err
		}
	}

	return nil
}

// Add creates a ModuleOption that registers factory under key.
func Add(key Key, factory Factory, lifecycle Lifecycle, metadata Metadata) ModuleOption {
	return func(r *Registry) error {
		r.Register(key, factory, lifecycle, metadata)
		return nil
	}
}

// AddFactory creates a ModuleOption for RegisterFactory.
func AddFactory[P, T any](factory func(P) (T, error), opts ...RegisterOption) ModuleOption {
	return func(r *Registry) error {
		RegisterFactory(r, factory, opts...)
		return nil
	}
}

// AddFunc creates a ModuleOption for RegisterFunc.
func AddFunc[T any](factory func() (T, error), opts ...RegisterOption) ModuleOption {
	return func(r *Registry) error {
		RegisterFunc(r, factory, opts...)
		return nil
	}
}

// AddInstance creates a ModuleOption for RegisterInstance.
func AddInstance[T any](instance T, opts ...RegisterOption) ModuleOption {
	return func(r *Registry) error {
		RegisterInstance(r, instance, opts...)
		return nil
	}
}
