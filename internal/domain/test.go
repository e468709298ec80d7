package domain

// CaseInfo describes a registered case without running it
type CaseInfo struct {
	Name   string // case name
	Suite  string // suite the case was registered in
	Source string // source description
	Arity  int    // parameters taken by the test function
	Tuples []Tuple
	Err    error // construction error
}
