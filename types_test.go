package autofixture

type Greeter interface {
	Greet() string
}

type Namer interface {
	Name() string
}

type Auditor interface {
	Audit() string
}

type Root struct {
	ID int
}

type BaseClass struct {
	Root
	Label string
}

func (b *BaseClass) Name() string { return b.Label }

type DerivedClass struct {
	BaseClass
	Extra string
}

func (d *DerivedClass) Greet() string { return "hello " + d.Label }

type OtherClass struct {
	Label string
}

func (o *OtherClass) Name() string { return o.Label }

type Service interface {
	Do() string
}

type ConcreteService struct {
	Endpoint string
}

func (s *ConcreteService) Do() string { return s.Endpoint }

type Consumer struct {
	Service Service
}

func NewConsumer(s Service) *Consumer {
	return &Consumer{Service: s}
}

type Holder struct {
	Greeter Greeter
	Namer   Namer
}

type Node struct {
	Value int
	Next  *Node
}
