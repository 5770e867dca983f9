package properties

// Property is a resolved value together with the source that supplied it.
type Property struct {
	Key    string
	Value  string
	Source string
}
