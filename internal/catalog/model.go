package catalog

import "time"

// Parameter is one named, typed argument of the target function.
type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// BoilerplateSnippet is the starter code of a problem for one language.
type BoilerplateSnippet struct {
	ID          int64      `json:"id" yaml:"id"`
	ProblemID   int64      `json:"problem_id" yaml:"problemID"`
	CodeSnippet string     `json:"code_snippet" yaml:"code"`
	Language    string     `json:"language" yaml:"language"`
	Extension   string     `json:"extension" yaml:"extension"`
	CreatedAt   time.Time  `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"-"`
	DeletedAt   *time.Time `json:"deleted_at" yaml:"-"`
}

// Problem is a read-only catalog record.
type Problem struct {
	ID               int64                `json:"id" yaml:"id"`
	Title            string               `json:"title" yaml:"title"`
	Description      string               `json:"description" yaml:"description"`
	Difficulty       string               `json:"difficulty" yaml:"difficulty"`
	FunctionName     string               `json:"function_name" yaml:"functionName"`
	Parameters       []Parameter          `json:"parameters" yaml:"parameters"`
	PublicTestCases  string               `json:"public_test_cases" yaml:"publicTestCases"`
	PrivateTestCases string               `json:"private_test_cases" yaml:"privateTestCases"`
	CreatedAt        time.Time            `json:"created_at" yaml:"-"`
	UpdatedAt        time.Time            `json:"updated_at" yaml:"-"`
	DeletedAt        *time.Time           `json:"deleted_at" yaml:"-"`
	Snippets         []BoilerplateSnippet `json:"boilerPlateSnippets" yaml:"snippets"`
}

// Deleted reports whether the problem was soft-deleted.
func (p Problem) Deleted() bool {
	return p.DeletedAt != nil
}

// Deleted reports whether the snippet was soft-deleted.
func (s BoilerplateSnippet) Deleted() bool {
	return s.DeletedAt != nil
}

// Signature renders the target function as name(param: type, ...).
func (p Problem) Signature() string {
	if p.FunctionName == "" {
		return ""
	}
	sig := p.FunctionName + "("
	for i, param := range p.Parameters {
		if i > 0 {
			sig += ", "
		}
		sig += param.Name
		if param.Type != "" {
			sig += ": " + param.Type
		}
	}
	return sig + ")"
}
