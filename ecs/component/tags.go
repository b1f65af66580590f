package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Name lets systems find an entity without holding its handle.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
