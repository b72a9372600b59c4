// Package autofixture generates test data for Go tests and lets a test freeze
// one value so that the same instance shows up everywhere a compatible type
// is requested in the generated object graph.
//
// # Overview
//
// The package is organised around a few concepts:
//
//  1. Fixture: the specimen engine for one test invocation. It builds values
//     from types and remembers pinned instances.
//  2. Pins: a type pinned to an instance always resolves to that instance,
//     whether requested directly or as a field or constructor argument.
//  3. Matching: which other types share a frozen instance.
//  4. Parameters and declarations: the values a test needs, with
//     customizations such as Frozen attached to them.
//
// # Basic Usage
//
//	f, err := autofixture.NewDefault()
//	if err != nil {
//	    t.Fatal(err)
//	}
//
//	person, err := autofixture.Create[*Person](f)
//
// Structs get every exported field filled, strings carry the field name and a
// UUID, numbers are unique within a fixture, and collections have three
// elements.
//
// # Constructors and Relays
//
// Interfaces need a way to be built:
//
//	f.Register(NewConsumer)                          // func(Service) *Consumer
//	autofixture.Relay[Service, *ConcreteService](f)  // Service -> *ConcreteService
//
// A mocking library plugs in through NewWithSubstitutes.
//
// # Freezing
//
//	svc, err := autofixture.Freeze[*ConcreteService](f, autofixture.ImplementedInterfaces)
//	consumer, err := autofixture.Create[*Consumer](f)
//	// consumer.Service == svc
//
// The matching modes are:
//
//	ExactType              only the frozen type
//	ImplementedInterfaces  plus every known interface it implements
//	DirectBaseType         plus its first embedded struct
//	BaseType               plus the whole chain of first embedded structs
//	MemberOfFamily         interfaces and base chain together
//
// Go types do not declare the interfaces they implement, so interfaces are
// matched against the ones the fixture knows: those reachable from the
// parameters being generated, those met while resolving, and those passed
// to RegisterInterface. The empty interface never matches.
//
// A base type is the first exported embedded struct. For a pointer target
// the base is pinned as a pointer to the embedded part of the frozen
// instance, so both share memory.
//
// # Parameters
//
// Generate resolves a list of parameters in two passes. Declarations are
// applied first, lowest priority first and in declaration order for equal
// priorities; then each parameter is resolved in order:
//
//	values, err := autofixture.Generate(f, []autofixture.Parameter{
//	    autofixture.Param[Service]("service", autofixture.Frozen(autofixture.ExactType)),
//	    autofixture.Param[*Consumer]("consumer"),
//	})
//
// The autodata package derives parameters from struct fields and tags.
//
// # Defaults
//
// Register adds process-wide customizations or builders, typically from an
// init function. They are published once, the first time NewDefault runs.
//
// # Extensions
//
// Extensions wrap resolve, pin and customize operations:
//
//	f := autofixture.New(
//	    autofixture.WithExtension(extensions.NewLoggingExtension(logger)),
//	)
//
// # Thread Safety
//
// A Fixture must not be used from several goroutines. Parallel tests create
// one fixture each; nothing is shared between fixtures except the published
// defaults, which are read-only.
package autofixture
