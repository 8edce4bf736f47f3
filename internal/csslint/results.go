package csslint

// ResultSet maps file paths to their lint results, preserving the order in
// which files were processed.
type ResultSet struct {
	order   []string
	results map[string]Result
}

// NewResultSet creates an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{results: make(map[string]Result)}
}

// Put records the result for path. Re-inserting a path replaces its result
// and keeps its original position.
func (s *ResultSet) Put(path string, result Result) {
	if _, exists := s.results[path]; !exists {
		s.order = append(s.order, path)
	}
	s.results[path] = result
}

// Get returns the result recorded for path.
func (s *ResultSet) Get(path string) (Result, bool) {
	r, ok := s.results[path]
	return r, ok
}

// Files returns the file paths in processing order.
func (s *ResultSet) Files() []string {
	files := make([]string, len(s.order))
	copy(files, s.order)
	return files
}

// Len returns the number of files in the set.
func (s *ResultSet) Len() int {
	return len(s.order)
}

// Each calls fn for every file in processing order.
func (s *ResultSet) Each(fn func(path string, result Result) error) error {
	for _, path := range s.order {
		if err := fn(path, s.results[path]); err != nil {
			return err
		}
	}
	return nil
}

// Totals returns the total number of errors and warnings across all files.
func (s *ResultSet) Totals() (errors, warnings int) {
	for _, path := range s.order {
		r := s.results[path]
		errors += r.Count(SeverityError)
		warnings += r.Count(SeverityWarning)
	}
	return errors, warnings
}
