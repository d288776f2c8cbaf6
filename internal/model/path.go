package model

// Version is the aejsx release, checked against GitHub tags by --update.
const Version = "0.4.0"

// Mode selects the output shape of a transformation run.
type Mode int

const (
	// Flat turns every export into a direct property of the result object.
	Flat Mode = iota
	// Wrapped exposes one accessor method returning an object of the exports.
	Wrapped
)

func (m Mode) String() string {
	if m == Wrapped {
		return "wrapped"
	}
	return "flat"
}

// ReservedGlobals are supplied by the expression engine at call time and may
// not be redeclared in Wrapped output.
var ReservedGlobals = []string{"thisComp", "thisLayer", "thisProperty"}

// Options configure one run over a bundle.
type Options struct {
	Mode      Mode
	Accessor  string   // accessor method name in Wrapped mode
	Format    bool     // run the formatter over Wrapped output
	Reserved  []string // extra reserved globals
	KeepGoing bool     // continue the batch after a failed unit
}

// DefaultOptions returns Flat mode with the "get" accessor.
func DefaultOptions() Options {
	return Options{
		Mode:     Flat,
		Accessor: "get",
	}
}

// IsReserved reports whether name is a reserved global under o.
func (o Options) IsReserved(name string) bool {
	for _, r := range ReservedGlobals {
		if r == name {
			return true
		}
	}
	for _, r := range o.Reserved {
		if r == name {
			return true
		}
	}
	return false
}

// Export is one exposed binding. Exported differs from Local only for
// `export { local as exported }`.
type Export struct {
	Local    string `json:"local"`
	Exported string `json:"exported"`
}

// ExportSet is an insertion-ordered set of exports, unique by local name.
type ExportSet struct {
	list  []Export
	index map[string]int
}

// Add appends e unless its local name is already present. It reports
// whether e was added.
func (s *ExportSet) Add(e Export) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[e.Local]; ok {
		return false
	}
	if e.Exported == "" {
		e.Exported = e.Local
	}
	s.index[e.Local] = len(s.list)
	s.list = append(s.list, e)
	return true
}

// Lookup returns the export bound to a local name.
func (s *ExportSet) Lookup(local string) (Export, bool) {
	i, ok := s.index[local]
	if !ok {
		return Export{}, false
	}
	return s.list[i], true
}

// Len is the number of exports.
func (s *ExportSet) Len() int {
	return len(s.list)
}

// List returns the exports in declaration order.
func (s *ExportSet) List() []Export {
	out := make([]Export, len(s.list))
	copy(out, s.list)
	return out
}

// Names returns the exported names in declaration order.
func (s *ExportSet) Names() []string {
	out := make([]string, len(s.list))
	for i, e := range s.list {
		out[i] = e.Exported
	}
	return out
}

// Unit is one file of an already bundled build.
type Unit struct {
	File string
	Code string
}

// State tracks how far a unit got through the pipeline.
type State int

const (
	Pending State = iota
	Parsed
	ExportsDiscovered
	Rewritten
	Assembled
	Done
)

var stateNames = [...]string{"pending", "parsed", "exports-discovered", "rewritten", "assembled", "done"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Result is the outcome of transforming one unit.
type Result struct {
	File     string   `json:"file"`
	Mode     string   `json:"mode"`
	Original string   `json:"-"`
	Code     string   `json:"code,omitempty"`
	Exports  []Export `json:"exports"`
	Removed  int      `json:"removed"` // statements dropped
	Edits    int      `json:"edits"`   // queued editor operations
	State    State    `json:"-"`
	Err      error    `json:"-"`
	ErrMsg   string   `json:"error,omitempty"`
}

// OK reports whether the unit transformed successfully.
func (r Result) OK() bool {
	return r.Err == nil && r.State == Done
}
