package host

// Target identifies the script type a declaration belongs to.
type Target interface {
	ClassName() string
}

// ClassRef is a Target known only by its class name.
type ClassRef string

func (c ClassRef) ClassName() string { return string(c) }
