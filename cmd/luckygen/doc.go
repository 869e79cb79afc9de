// Command luckygen generates registration code for di.Registry.
//
// Registering a provider by hand means resolving each dependency, checking its
// error, and calling the constructor:
//
//	di.Provide(r, func(r *di.Registry) (*Service, error) {
//		store, err := di.Invoke[Store](r)
//		if err != nil {
//			return nil, err
//		}
//		...
//		return NewService(store, prefix), nil
//	})
//
// luckygen writes that boilerplate from a short spec so the composition root
// only lists what depends on what.
//
// Spec format (YAML or JSON)
//
//	package: greeting
//	func: RegisterProviders        # optional, default RegisterProviders
//	imports:                       # optional, copied into the generated file
//	  - path: github.com/acme/app/config
//	providers:
//	  - type: Store
//	    constructor: NewMemoryStore
//	    deps:
//	      - type: config.Config
//	  - type: "*Service"
//	    constructor: NewService
//	    returnsError: true
//	    deps:
//	      - type: Store
//	      - type: string
//	        name: hello-prefix
//
// Each dep is resolved with di.Invoke in declaration order and passed as a
// positional argument to the constructor. A provider without a name is
// registered under di.DefaultName.
//
// Typical go:generate usage
//
//	//go:generate go run github.com/sghaida/luckydep/cmd/luckygen -spec ./providers.yaml -out ./providers.gen.go
//
// Exit codes: 0 on success, 2 on usage errors, 1 when the spec cannot be read,
// validated, or rendered into valid Go.
package main
