package analyzer

// ScopeID is a handle into a Scopes arena.
type ScopeID int

const NoScope ScopeID = -1

type scope struct {
	name    string
	level   int
	parent  ScopeID
	symbols map[string]Symbol
	order   []string
}

// Scopes is an arena of symbol tables. Scopes open and close in strict LIFO
// order, so the current scope is always the last record and closing it
// drops it from the arena.
type Scopes struct {
	arena   []scope
	current ScopeID
}

func NewScopes() *Scopes {
	return &Scopes{current: NoScope}
}

// Push opens a scope nested in the current one and makes it current.
func (s *Scopes) Push(name string) ScopeID {
	level := 1
	if s.current != NoScope {
		level = s.arena[s.current].level + 1
	}
	s.arena = append(s.arena, scope{
		name:    name,
		level:   level,
		parent:  s.current,
		symbols: make(map[string]Symbol),
	})
	s.current = ScopeID(len(s.arena) - 1)
	return s.current
}

// Pop closes the current scope, restores its parent and returns a summary of
// what the closed scope held.
func (s *Scopes) Pop() ScopeSummary {
	closed := s.arena[s.current]
	summary := summarize(closed, s.nameOf(closed.parent))
	s.arena = s.arena[:s.current]
	s.current = closed.parent
	return summary
}

func (s *Scopes) Current() ScopeID {
	return s.current
}

func (s *Scopes) Name(id ScopeID) string {
	return s.nameOf(id)
}

func (s *Scopes) Level(id ScopeID) int {
	if id == NoScope {
		return 0
	}
	return s.arena[id].level
}

func (s *Scopes) nameOf(id ScopeID) string {
	if id == NoScope {
		return ""
	}
	return s.arena[id].name
}

// Insert adds sym to scope id. It reports false, leaving the scope
// untouched, if the name is already defined at that level.
func (s *Scopes) Insert(id ScopeID, sym Symbol) bool {
	sc := &s.arena[id]
	if _, exists := sc.symbols[sym.Name()]; exists {
		return false
	}
	sc.symbols[sym.Name()] = sym
	sc.order = append(sc.order, sym.Name())
	return true
}

// Lookup searches the current scope and then each enclosing scope.
func (s *Scopes) Lookup(name string) (Symbol, bool) {
	for id := s.current; id != NoScope; id = s.arena[id].parent {
		if sym, ok := s.arena[id].symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal checks only the current scope.
func (s *Scopes) LookupLocal(name string) (Symbol, bool) {
	if s.current == NoScope {
		return nil, false
	}
	sym, ok := s.arena[s.current].symbols[name]
	return sym, ok
}

type SymbolSummary struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
	Decl string `json:"decl" yaml:"decl"`
}

type ScopeSummary struct {
	Name    string          `json:"name" yaml:"name"`
	Level   int             `json:"level" yaml:"level"`
	Parent  string          `json:"parent,omitempty" yaml:"parent,omitempty"`
	Symbols []SymbolSummary `json:"symbols" yaml:"symbols"`
}

func summarize(sc scope, parent string) ScopeSummary {
	out := ScopeSummary{Name: sc.name, Level: sc.level, Parent: parent}
	for _, name := range sc.order {
		sym := sc.symbols[name]
		out.Symbols = append(out.Symbols, SymbolSummary{Name: name, Kind: symbolKind(sym), Decl: sym.String()})
	}
	return out
}
