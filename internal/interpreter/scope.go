package interpreter

// Scope maps names to values. Only the global scope and one scope per
// function call exist; blocks share the scope they appear in.
type Scope struct {
	values map[string]Value
	parent *Scope
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		values: make(map[string]Value),
		parent: parent,
	}
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

// Declare binds name in this scope, replacing any earlier binding here.
func (s *Scope) Declare(name string, value Value) {
	s.values[name] = value
}

// Assign updates the nearest binding of name. It reports false when no
// scope in the chain declares name.
func (s *Scope) Assign(name string, value Value) bool {
	for scope := s; scope != nil; scope = scope.parent {
		if _, ok := scope.values[name]; ok {
			scope.values[name] = value
			return true
		}
	}

	return false
}

func (s *Scope) Lookup(name string) (Value, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if value, ok := scope.values[name]; ok {
			return value, true
		}
	}

	return nil, false
}
